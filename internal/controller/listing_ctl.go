package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"auction_dev_v1_202608/internal/api/dto"
	"auction_dev_v1_202608/internal/service"
)

// ==================== 控制器 ====================

// ListingController 商品/草稿控制器
//
// /listings/:id 路由是复用的：参数为数字时按商品 ID 处理，
// 否则按草稿的用户标识处理。
type ListingController struct {
	listingService *service.ListingService
	draftService   *service.DraftService
	submitService  *service.SubmitService
}

func NewListingController(
	listingService *service.ListingService,
	draftService *service.DraftService,
	submitService *service.SubmitService,
) *ListingController {
	return &ListingController{
		listingService: listingService,
		draftService:   draftService,
		submitService:  submitService,
	}
}

// ==================== API 方法 ====================

// ListListings 获取商品列表
// @Summary 获取全部商品（带分类名称）
// @Tags Listing
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /listings [get]
func (ctrl *ListingController) ListListings(c *gin.Context) {
	ctx := c.Request.Context()
	listings, err := ctrl.listingService.ListListings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	if len(listings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "暂无商品记录",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    listings,
	})
}

// GetListingOrDraft 获取单个商品或草稿
// @Summary 数字参数按商品ID查询，其余按草稿用户标识查询
// @Tags Listing
// @Param id path string true "商品ID或用户标识"
// @Success 200 {object} map[string]interface{}
// @Router /listings/{id} [get]
func (ctrl *ListingController) GetListingOrDraft(c *gin.Context) {
	param := c.Param("id")
	ctx := c.Request.Context()

	if listingID, err := strconv.ParseInt(param, 10, 64); err == nil {
		listing, err := ctrl.listingService.GetListing(ctx, listingID)
		if err != nil {
			if errors.Is(err, service.ErrListingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"code":    404,
					"message": err.Error(),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "查询失败: " + err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":    0,
			"message": "success",
			"data":    listing,
		})
		return
	}

	// 非数字参数：返回该用户的草稿行（零行或一行）
	raw, found, err := ctrl.draftService.GetDraft(ctx, param)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	rows := []dto.DraftResponse{}
	if found {
		rows = append(rows, dto.DraftResponse{UserID: param, Draft: raw})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    rows,
	})
}

// GetListingForEdit 获取商品的四分区编辑形态
// @Summary 把已提交商品还原成表单分区形态，用于再编辑
// @Tags Listing
// @Param id path int true "商品ID"
// @Param userId query string false "编辑会话的用户标识"
// @Success 200 {object} map[string]interface{}
// @Router /listings/{id}/edit [get]
func (ctrl *ListingController) GetListingForEdit(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || listingID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的商品ID",
		})
		return
	}

	ctx := c.Request.Context()
	draft, err := ctrl.listingService.GetForEdit(ctx, listingID, c.Query("userId"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    404,
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    draft,
	})
}

// CreateListing 提交新商品
// @Summary 校验并提交四分区表单，生成正式商品记录
// @Tags Listing
// @Accept json
// @Produce json
// @Param body body dto.ListingEnvelope true "四分区表单"
// @Success 201 {object} map[string]interface{}
// @Router /listings [post]
func (ctrl *ListingController) CreateListing(c *gin.Context) {
	var req dto.ListingEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	result, err := ctrl.submitService.Submit(ctx, req.Listing, 0)
	if err != nil {
		ctrl.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}

// UpdateListing 更新已提交商品
// @Summary 校验并整行覆盖指定商品
// @Tags Listing
// @Accept json
// @Produce json
// @Param listingId path int true "商品ID"
// @Param body body dto.ListingEnvelope true "四分区表单"
// @Success 200 {object} map[string]interface{}
// @Router /listings/{listingId} [put]
func (ctrl *ListingController) UpdateListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("listingId"), 10, 64)
	if err != nil || listingID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的商品ID",
		})
		return
	}

	var req dto.ListingEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	result, err := ctrl.submitService.Submit(ctx, req.Listing, listingID)
	if err != nil {
		ctrl.renderSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    result,
	})
}

// SaveDraft 保存草稿
// @Summary 按用户标识覆盖保存四分区草稿
// @Tags Draft
// @Accept json
// @Produce json
// @Param userId path string true "用户标识（非数字）"
// @Param body body dto.ListingEnvelope true "四分区表单"
// @Success 200 {object} map[string]interface{}
// @Router /listings/{userId} [post]
func (ctrl *ListingController) SaveDraft(c *gin.Context) {
	userID := c.Param("userId")
	if _, err := strconv.ParseInt(userID, 10, 64); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的用户标识",
		})
		return
	}

	var req dto.ListingEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.draftService.SaveDraft(ctx, userID, req.Listing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "草稿保存失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    true,
	})
}

// DeleteDraft 删除草稿
// @Summary 删除指定用户的草稿记录
// @Tags Draft
// @Param userId path string true "用户标识"
// @Success 200 {object} map[string]interface{}
// @Router /listings/draft/{userId} [delete]
func (ctrl *ListingController) DeleteDraft(c *gin.Context) {
	userID := c.Param("userId")

	ctx := c.Request.Context()
	if err := ctrl.draftService.DeleteDraft(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "草稿删除失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// renderSubmitError 提交失败的统一出口
// 校验失败返回 400 并带聚合后的规则文本，其余按存储错误返回 500
func (ctrl *ListingController) renderSubmitError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": verr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    500,
		"message": "提交失败: " + err.Error(),
	})
}
