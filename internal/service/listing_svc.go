package service

import (
	"context"
	"errors"
	"fmt"

	"auction_dev_v1_202608/internal/api/dto"
	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
)

// ErrListingNotFound 商品不存在
var ErrListingNotFound = errors.New("商品不存在")

// ==================== 商品服务 ====================

// ListingService 商品查询 / 存储
// 同时是进程内的 ListingStore 实现，供提交编排直接落库。
type ListingService struct {
	repo       repository.ListingRepository
	categories *CategoryService
	converter  *ConverterService
}

// NewListingService 创建商品服务
func NewListingService(
	repo repository.ListingRepository,
	categories *CategoryService,
	converter *ConverterService,
) *ListingService {
	return &ListingService{
		repo:       repo,
		categories: categories,
		converter:  converter,
	}
}

// ==================== 查询 ====================

// ListListings 列出全部商品（带分类显示名）
func (s *ListingService) ListListings(ctx context.Context) ([]dto.ListingResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	result := make([]dto.ListingResponse, len(rows))
	for i, row := range rows {
		result[i] = s.toResponse(ctx, &row)
	}
	return result, nil
}

// GetListing 按 ID 查询单个商品
// 响应里 categoryId 是反查出来的父分类，subCategoryId 是存储列原值
func (s *ListingService) GetListing(ctx context.Context, id int64) (*dto.ListingResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	resp := s.toResponse(ctx, row)
	return &resp, nil
}

// GetForEdit 把已提交商品还原成四分区草稿，供回编辑
func (s *ListingService) GetForEdit(ctx context.Context, id int64, userID string) (*model.DraftListing, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	return s.converter.PartitionListing(ctx, &row.Listing, userID)
}

// ==================== ListingStore 实现 ====================

// CreateListing 新建商品行
func (s *ListingService) CreateListing(ctx context.Context, listing *model.Listing) (*model.Listing, error) {
	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// UpdateListing 整行覆盖更新，返回受影响行数
func (s *ListingService) UpdateListing(ctx context.Context, id int64, listing *model.Listing) (int64, error) {
	return s.repo.Update(ctx, id, listing)
}

// ==================== 换形辅助 ====================

func (s *ListingService) toResponse(ctx context.Context, row *repository.ListingRow) dto.ListingResponse {
	// 存储列里是二级分类 ID，父分类通过分类树反查；
	// 反查失败（孤儿分类）时按顶级分类处理
	categoryID := row.CategoryID
	subCategoryID := int64(0)
	if parentID, err := s.categories.ParentOf(ctx, row.CategoryID); err == nil && parentID != 0 {
		categoryID = parentID
		subCategoryID = row.CategoryID
	}

	return dto.ListingResponse{
		ID:                  row.ID,
		Title:               row.Title,
		SubTitle:            row.SubTitle,
		CategoryID:          categoryID,
		SubCategoryID:       subCategoryID,
		EndDate:             row.EndDate,
		Description:         row.Description,
		Condition:           row.ConditionNew,
		ListingPrice:        row.ListingPrice,
		ReservePrice:        row.ReservePrice,
		CreditCardPayment:   row.CreditCardPayment,
		BankTransferPayment: row.BankTransferPayment,
		BitcoinPayment:      row.BitcoinPayment,
		PickUp:              row.PickUp,
		ShippingOption:      row.ShippingOption,
		Category:            row.CategoryName,
	}
}
