package model

import (
	"time"
)

// ==================== 常量 ====================

const (
	// 配送方式
	ShippingOptionCourier = "courier"
	ShippingOptionPost    = "post"

	// 日期列的存储格式（日历日期，不含时区）
	DateLayout = "2006-01-02"
)

// ==================== 数据库模型 ====================

// Listing 已提交的拍卖商品（扁平存储结构）
//
// 注意：category_id 列存储的是【二级分类】ID，
// 父分类不冗余存储，展示时通过分类树反查。
type Listing struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt           time.Time `gorm:"index" json:"-"`
	UpdatedAt           time.Time `gorm:"index" json:"-"`
	Title               string    `gorm:"size:80;not null;comment:标题" json:"title"`
	SubTitle            string    `gorm:"column:sub_title;size:50;comment:副标题" json:"subTitle"`
	CategoryID          int64     `gorm:"column:category_id;index;not null;comment:二级分类ID" json:"categoryId"`
	EndDate             string    `gorm:"column:end_date;size:10;not null;comment:结束日期" json:"endDate"`
	Description         string    `gorm:"column:listing_description;type:text;comment:商品描述" json:"description"`
	ConditionNew        bool      `gorm:"column:condition_new;comment:是否全新" json:"condition"`
	ListingPrice        float64   `gorm:"column:listing_price;comment:一口价" json:"listingPrice"`
	ReservePrice        float64   `gorm:"column:reserve_price;comment:底价" json:"reservePrice"`
	CreditCardPayment   bool      `gorm:"column:credit_card_payment" json:"creditCardPayment"`
	BankTransferPayment bool      `gorm:"column:bank_transfer_payment" json:"bankTransferPayment"`
	BitcoinPayment      bool      `gorm:"column:bitcoin_payment" json:"bitcoinPayment"`
	PickUp              bool      `gorm:"column:pick_up" json:"pickUp"`
	ShippingOption      string    `gorm:"column:shipping_option;size:16;default:post" json:"shippingOption"`

	// 建表时声明 category_id 外键，非法分类 ID 在库层被拒
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (*Listing) TableName() string {
	return "listings"
}

// ==================== 辅助方法 ====================

// HasPaymentMethod 是否至少选择了一种付款方式
func (l *Listing) HasPaymentMethod() bool {
	return l.CreditCardPayment || l.BankTransferPayment || l.BitcoinPayment
}
