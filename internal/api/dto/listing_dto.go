package dto

import (
	"encoding/json"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 响应 ====================

// ListingResponse 商品的扁平线格式
// categoryId 是父分类（反查所得），subCategoryId 是存储列原值
type ListingResponse struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	SubTitle            string  `json:"subTitle"`
	CategoryID          int64   `json:"categoryId"`
	SubCategoryID       int64   `json:"subCategoryId"`
	EndDate             string  `json:"endDate"`
	Description         string  `json:"description"`
	Condition           bool    `json:"condition"`
	ListingPrice        float64 `json:"listingPrice"`
	ReservePrice        float64 `json:"reservePrice"`
	CreditCardPayment   bool    `json:"creditCardPayment"`
	BankTransferPayment bool    `json:"bankTransferPayment"`
	BitcoinPayment      bool    `json:"bitcoinPayment"`
	PickUp              bool    `json:"pickUp"`
	ShippingOption      string  `json:"shippingOption"`
	Category            string  `json:"category"`
}

// DraftResponse 草稿查询结果行
type DraftResponse struct {
	UserID string          `json:"user_id"`
	Draft  json.RawMessage `json:"draft"`
}

// ==================== 请求 ====================

// ListingEnvelope 创建/更新商品与保存草稿共用的请求体
// 线格式统一是 { "listing": <四分区结构> }
type ListingEnvelope struct {
	Listing *model.DraftListing `json:"listing" binding:"required"`
}
