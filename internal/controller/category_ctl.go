package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"auction_dev_v1_202608/internal/service"
)

// CategoryController 分类控制器
type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// GetCategories 获取分类列表
// @Summary 按父分类查询分类（parentId=0 为顶级分类）
// @Tags Category
// @Produce json
// @Param parentId query int false "父分类ID" default(0)
// @Param active query bool false "仅查启用分类" default(true)
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	parentID, err := strconv.ParseInt(c.DefaultQuery("parentId", "0"), 10, 64)
	if err != nil || parentID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的父分类ID",
		})
		return
	}

	active, err := strconv.ParseBool(c.DefaultQuery("active", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的 active 参数",
		})
		return
	}

	ctx := c.Request.Context()
	categories, err := ctrl.categoryService.ListByParent(ctx, parentID, active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": "查询失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    categories,
	})
}
