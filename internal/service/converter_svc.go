package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 换形服务 ====================

// ConverterService 草稿（四分区嵌套）与商品（扁平存储）之间的双向换形
//
// 价格的权威规则：分区结构里保持表单原样的字符串，
// 扁平结构内部统一为数字，字符串 -> 数字的转换只发生在这一层。
type ConverterService struct {
	categories *CategoryService
}

// NewConverterService 创建换形服务
func NewConverterService(categories *CategoryService) *ConverterService {
	return &ConverterService{categories: categories}
}

// ==================== 草稿 -> 商品（提交方向） ====================

// FlattenDraft 把四分区草稿压平成待存储的商品行
//
// category_id 列存二级分类 ID；没有二级分类（顶级分类无子类）时
// 退化存顶级分类 ID。价格字符串在这里完成数字转换，
// 转不动视为本地状态损坏，直接报错。
func (s *ConverterService) FlattenDraft(d *model.DraftListing) (*model.Listing, error) {
	if d == nil {
		return nil, fmt.Errorf("草稿为空，无法换形")
	}

	listingPrice, err := parsePrice(d.PricePayment.ListingPrice, false)
	if err != nil {
		return nil, fmt.Errorf("一口价非法: %w", err)
	}
	reservePrice, err := parsePrice(d.PricePayment.ReservePrice, true)
	if err != nil {
		return nil, fmt.Errorf("底价非法: %w", err)
	}

	categoryID := d.TitleCategory.SubCategoryID
	if categoryID == 0 {
		categoryID = d.TitleCategory.CategoryID
	}

	return &model.Listing{
		Title:               d.TitleCategory.Title,
		SubTitle:            d.TitleCategory.SubTitle,
		CategoryID:          categoryID,
		EndDate:             d.TitleCategory.EndDate,
		Description:         d.ItemDetails.Description,
		ConditionNew:        d.ItemDetails.Condition,
		ListingPrice:        listingPrice,
		ReservePrice:        reservePrice,
		CreditCardPayment:   d.PricePayment.CreditCardPayment,
		BankTransferPayment: d.PricePayment.BankTransferPayment,
		BitcoinPayment:      d.PricePayment.BitcoinPayment,
		PickUp:              d.Shipping.PickUp,
		ShippingOption:      d.Shipping.ShippingOption,
	}, nil
}

// ==================== 商品 -> 草稿（回编辑方向） ====================

// PartitionListing 把扁平商品行还原成四分区草稿
//
// 父分类 ID 通过分类树反查（存储里只有二级分类 ID）。
func (s *ConverterService) PartitionListing(ctx context.Context, l *model.Listing, userID string) (*model.DraftListing, error) {
	if l == nil {
		return nil, fmt.Errorf("商品为空，无法换形")
	}

	parentID, err := s.categories.ParentOf(ctx, l.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("反查父分类失败: %w", err)
	}

	categoryID := l.CategoryID
	subCategoryID := int64(0)
	if parentID != 0 {
		categoryID = parentID
		subCategoryID = l.CategoryID
	}

	return &model.DraftListing{
		TitleCategory: model.TitleCategory{
			UserID:        userID,
			Title:         l.Title,
			SubTitle:      l.SubTitle,
			CategoryID:    categoryID,
			SubCategoryID: subCategoryID,
			EndDate:       l.EndDate,
		},
		ItemDetails: model.ItemDetails{
			Description: l.Description,
			Condition:   l.ConditionNew,
		},
		PricePayment: model.PricePayment{
			ListingPrice:        formatPrice(l.ListingPrice),
			ReservePrice:        formatPrice(l.ReservePrice),
			CreditCardPayment:   l.CreditCardPayment,
			BankTransferPayment: l.BankTransferPayment,
			BitcoinPayment:      l.BitcoinPayment,
		},
		Shipping: model.Shipping{
			PickUp:         l.PickUp,
			ShippingOption: l.ShippingOption,
		},
	}, nil
}

// ==================== 价格转换 ====================

// parsePrice 表单价格字符串 -> 数字
// optional 为 true 时空串视为 0（底价可不填）
func parsePrice(raw string, optional bool) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if optional {
			return 0, nil
		}
		return 0, fmt.Errorf("价格不能为空")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("价格不是数字: %q", raw)
	}
	return price, nil
}

// formatPrice 数字 -> 表单价格字符串，0 还原为空串
// 用最短保值表示，往返换形不改变价格数值
func formatPrice(price float64) string {
	if price == 0 {
		return ""
	}
	return strconv.FormatFloat(price, 'f', -1, 64)
}
