package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"auction_dev_v1_202608/internal/api/dto"
	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/service"
)

// ==================== HTTP 客户端 ====================

// Client 服务端 API 的 Resty 客户端
//
// 实现 service.DraftStore 和 service.Submitter，
// 表单会话可以不改一行代码从进程内服务切到远端服务。
type Client struct {
	http *resty.Client
}

var (
	_ service.DraftStore = (*Client)(nil)
	_ service.Submitter  = (*Client)(nil)
)

// NewClient 创建客户端
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: c}
}

// envelope 服务端统一响应壳
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ==================== 分类 ====================

// GetCategories 查询分类列表（parentID=0 为顶级）
func (c *Client) GetCategories(ctx context.Context, parentID int64, active bool) ([]model.Category, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("parentId", strconv.FormatInt(parentID, 10)).
		SetQueryParam("active", strconv.FormatBool(active)).
		Get("/categories")
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}

	var categories []model.Category
	if err := decode(resp, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ==================== 商品 ====================

// GetListings 查询全部商品
// 服务端对空列表返回 404，这里吸收成空切片
func (c *Client) GetListings(ctx context.Context) ([]dto.ListingResponse, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/listings")
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return []dto.ListingResponse{}, nil
	}

	var listings []dto.ListingResponse
	if err := decode(resp, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetListing 按 ID 查询单个商品
func (c *Client) GetListing(ctx context.Context, id int64) (*dto.ListingResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/listings/" + strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	var listing dto.ListingResponse
	if err := decode(resp, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingForEdit 获取商品的四分区编辑形态
func (c *Client) GetListingForEdit(ctx context.Context, id int64, userID string) (*model.DraftListing, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		Get("/listings/" + strconv.FormatInt(id, 10) + "/edit")
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	var draft model.DraftListing
	if err := decode(resp, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// ==================== service.Submitter 实现 ====================

// Submit 提交表单
// listingID 为 0 时新建，否则整行覆盖更新
func (c *Client) Submit(ctx context.Context, d *model.DraftListing, listingID int64) (*service.SubmitResult, error) {
	req := c.http.R().
		SetContext(ctx).
		SetBody(dto.ListingEnvelope{Listing: d})

	var resp *resty.Response
	var err error
	if listingID > 0 {
		resp, err = req.Put("/listings/" + strconv.FormatInt(listingID, 10))
	} else {
		resp, err = req.Post("/listings")
	}
	if err != nil {
		return nil, fmt.Errorf("提交失败: %w", err)
	}

	var result service.SubmitResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ==================== service.DraftStore 实现 ====================

// GetDraft 查询草稿
// 服务端返回零行或一行，零行按"没有草稿"处理
func (c *Client) GetDraft(ctx context.Context, userID string) ([]byte, bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/listings/" + userID)
	if err != nil {
		return nil, false, fmt.Errorf("查询草稿失败: %w", err)
	}

	var rows []dto.DraftResponse
	if err := decode(resp, &rows); err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0].Draft, true, nil
}

// SaveDraft 覆盖保存草稿
func (c *Client) SaveDraft(ctx context.Context, userID string, d *model.DraftListing) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.ListingEnvelope{Listing: d}).
		Post("/listings/" + userID)
	if err != nil {
		return fmt.Errorf("保存草稿失败: %w", err)
	}
	return decode(resp, nil)
}

// DeleteDraft 删除草稿
func (c *Client) DeleteDraft(ctx context.Context, userID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/listings/draft/" + userID)
	if err != nil {
		return fmt.Errorf("删除草稿失败: %w", err)
	}
	return decode(resp, nil)
}

// ==================== 响应解壳 ====================

// decode 拆统一响应壳，把 data 解到 out（out 为 nil 时只检查状态）
// 非 2xx 时把服务端 message 透传成错误
func decode(resp *resty.Response, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("响应解析失败 (HTTP %d): %w", resp.StatusCode(), err)
	}

	if resp.IsError() || env.Code != 0 {
		if env.Message != "" {
			return fmt.Errorf("%s", env.Message)
		}
		return fmt.Errorf("请求失败 (HTTP %d)", resp.StatusCode())
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("响应数据解析失败: %w", err)
	}
	return nil
}
