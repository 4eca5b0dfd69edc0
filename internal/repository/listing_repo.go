package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// ListingRow 商品行 + 分类显示名（列表/详情查询用）
type ListingRow struct {
	model.Listing
	CategoryName string `gorm:"column:category_name"`
}

// ListingRepository 商品仓储接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, id int64, listing *model.Listing) (int64, error)
	GetByID(ctx context.Context, id int64) (*ListingRow, error)
	List(ctx context.Context) ([]ListingRow, error)
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建商品仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return mapPgError(err)
	}
	return nil
}

// Update 整行覆盖更新（不支持字段级补丁）
func (r *listingRepo) Update(ctx context.Context, id int64, listing *model.Listing) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":                 listing.Title,
			"sub_title":             listing.SubTitle,
			"category_id":           listing.CategoryID,
			"end_date":              listing.EndDate,
			"listing_description":   listing.Description,
			"condition_new":         listing.ConditionNew,
			"listing_price":         listing.ListingPrice,
			"reserve_price":         listing.ReservePrice,
			"credit_card_payment":   listing.CreditCardPayment,
			"bank_transfer_payment": listing.BankTransferPayment,
			"bitcoin_payment":       listing.BitcoinPayment,
			"pick_up":               listing.PickUp,
			"shipping_option":       listing.ShippingOption,
		})
	if result.Error != nil {
		return 0, mapPgError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *listingRepo) GetByID(ctx context.Context, id int64) (*ListingRow, error) {
	var row ListingRow
	err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Select("listings.*, categories.category_name").
		Joins("INNER JOIN categories ON categories.id = listings.category_id").
		Where("listings.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *listingRepo) List(ctx context.Context) ([]ListingRow, error) {
	var rows []ListingRow
	err := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Select("listings.*, categories.category_name").
		Joins("INNER JOIN categories ON categories.id = listings.category_id").
		Order("listings.id ASC").
		Find(&rows).Error
	return rows, err
}

// mapPgError 把底层驱动错误翻译成仓储层错误
// postgres 连接走 pgx，外键冲突以 *pgconn.PgError 形态抛出
// 23503 = foreign_key_violation（category_id 指向不存在的分类）
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrInvalidCategory
	}
	return err
}
