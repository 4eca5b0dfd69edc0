package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ==================== 草稿分区结构 ====================
// 草稿按四个表单分区组织，字段与提交后的扁平结构逻辑一致。
// 价格在分区结构里保持字符串（表单输入原样），
// 只在提交换形时统一转成数字，见 service.ConverterService。

// TitleCategory 标题/分类分区
type TitleCategory struct {
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	CategoryID    int64  `json:"categoryId"`
	SubCategoryID int64  `json:"subCategoryId"`
	SubTitle      string `json:"subTitle"`
	EndDate       string `json:"endDate"`
}

// ItemDetails 商品详情分区
type ItemDetails struct {
	Description string `json:"description"`
	Condition   bool   `json:"condition"`
}

// PricePayment 价格/付款分区
type PricePayment struct {
	ListingPrice        string `json:"listingPrice"`
	ReservePrice        string `json:"reservePrice"`
	CreditCardPayment   bool   `json:"creditCardPayment"`
	BankTransferPayment bool   `json:"bankTransferPayment"`
	BitcoinPayment      bool   `json:"bitcoinPayment"`
}

// Shipping 配送分区
type Shipping struct {
	PickUp         bool   `json:"pickUp"`
	ShippingOption string `json:"shippingOption"`
}

// DraftListing 四分区草稿
type DraftListing struct {
	TitleCategory TitleCategory `json:"titleCategory"`
	ItemDetails   ItemDetails   `json:"itemDetails"`
	PricePayment  PricePayment  `json:"pricePayment"`
	Shipping      Shipping      `json:"shipping"`
}

// NewDraftListing 按表单默认值初始化草稿
// 默认结束日期为明天，配送方式 post，允许自提
func NewDraftListing(userID string) *DraftListing {
	return &DraftListing{
		TitleCategory: TitleCategory{
			UserID:  userID,
			EndDate: time.Now().AddDate(0, 0, 1).Format(DateLayout),
		},
		Shipping: Shipping{
			PickUp:         true,
			ShippingOption: ShippingOptionPost,
		},
	}
}

// Encode 序列化为 JSON 列值
func (d *DraftListing) Encode() (datatypes.JSON, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("草稿序列化失败: %w", err)
	}
	return datatypes.JSON(data), nil
}

// ==================== 数据库模型 ====================

// ListingDraft 用户草稿行
//
// 每个用户最多一条（user_id 主键），再次保存即整体覆盖。
// user_id 是调用方自报的不透明字符串，不做真实性校验。
type ListingDraft struct {
	UserID    string         `gorm:"primaryKey;column:user_id;size:64" json:"user_id"`
	UpdatedAt time.Time      `gorm:"index" json:"-"`
	Draft     datatypes.JSON `gorm:"type:json;not null" json:"draft"`
}

func (*ListingDraft) TableName() string {
	return "listings_draft"
}

// Decode 解析草稿 JSON 列
func (r *ListingDraft) Decode() (*DraftListing, error) {
	var d DraftListing
	if err := json.Unmarshal(r.Draft, &d); err != nil {
		return nil, fmt.Errorf("草稿解析失败: %w", err)
	}
	return &d, nil
}
