package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 校验规则常量 ====================

const (
	titleMinLen       = 3
	titleMaxLen       = 80
	subTitleMaxLen    = 50
	descriptionMinLen = 10
	descriptionMaxLen = 500

	// 结束日期窗口：从明天起 14 天（闭区间 [明天, 今天+14]）
	endDateWindowDays = 14
)

// ==================== 错误类型 ====================

// FieldError 单条规则违规，Field 对应表单字段
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 提交校验失败，聚合所有违规
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// ==================== 校验服务 ====================

// ValidationService 提交门禁
//
// 只挡最终提交，草稿保存永远不走这里（草稿允许任意残缺数据）。
type ValidationService struct {
	categories *CategoryService

	// 测试注入用
	now func() time.Time
}

// NewValidationService 创建校验服务
func NewValidationService(categories *CategoryService) *ValidationService {
	return &ValidationService{
		categories: categories,
		now:        time.Now,
	}
}

// ValidateListing 校验草稿是否可提交，全部规则必须通过
// 返回 nil 表示通过；否则返回聚合后的 *ValidationError
func (s *ValidationService) ValidateListing(ctx context.Context, d *model.DraftListing) error {
	var fields []FieldError

	add := func(field, message string) {
		fields = append(fields, FieldError{Field: field, Message: message})
	}

	// 标题 / 副标题
	if n := len([]rune(d.TitleCategory.Title)); n < titleMinLen || n > titleMaxLen {
		add("title", "标题长度需在 3 到 80 个字符之间")
	}
	if n := len([]rune(d.TitleCategory.SubTitle)); n > subTitleMaxLen {
		add("subTitle", "副标题不能超过 50 个字符")
	}

	// 描述
	if n := len([]rune(d.ItemDetails.Description)); n < descriptionMinLen || n > descriptionMaxLen {
		add("description", "描述长度需在 10 到 500 个字符之间")
	}

	// 结束日期
	if !s.validEndDate(d.TitleCategory.EndDate) {
		add("endDate", "结束日期必须在明天起两周以内")
	}

	// 分类
	if d.TitleCategory.CategoryID == 0 {
		add("categoryId", "请选择商品分类")
	} else if s.categories != nil {
		hasChildren, err := s.categories.HasChildren(ctx, d.TitleCategory.CategoryID)
		if err == nil && hasChildren && d.TitleCategory.SubCategoryID == 0 {
			add("subCategoryId", "请选择二级分类")
		}
	}

	// 价格
	if !validPrice(d.PricePayment.ListingPrice, false) {
		add("listingPrice", "一口价必须是大于 0 的数字")
	}
	if !validPrice(d.PricePayment.ReservePrice, true) {
		add("reservePrice", "底价必须是不小于 0 的数字")
	}

	// 付款方式
	if !d.PricePayment.CreditCardPayment &&
		!d.PricePayment.BankTransferPayment &&
		!d.PricePayment.BitcoinPayment {
		add("payment", "至少选择一种付款方式")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validEndDate 结束日期是否落在 [明天, 今天+14] 闭区间内
// 只比较日历日期，不看时分秒
func (s *ValidationService) validEndDate(raw string) bool {
	date, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return false
	}

	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	earliest := today.AddDate(0, 0, 1)
	latest := today.AddDate(0, 0, endDateWindowDays)

	return !date.Before(earliest) && !date.After(latest)
}

// validPrice 价格字符串是否合法
// optional 为 true 时允许空串，且只要求 >= 0
func validPrice(raw string, optional bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return optional
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	if optional {
		return price >= 0
	}
	return price > 0
}
