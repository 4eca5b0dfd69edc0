package tests

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction_dev_v1_202608/internal/controller"
	"auction_dev_v1_202608/internal/middleware"
	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
	"auction_dev_v1_202608/internal/router"
	"auction_dev_v1_202608/internal/service"
	"auction_dev_v1_202608/pkg/client"
	"auction_dev_v1_202608/pkg/database"
	"auction_dev_v1_202608/pkg/utils"
)

// ==================== 环境装配 ====================

// setupServer 起一个完整服务栈：sqlite 内存库 + 种子分类 + 全部路由
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")
	require.NoError(t, db.AutoMigrate(&model.Category{}, &model.Listing{}, &model.ListingDraft{}))
	require.NoError(t, database.SeedCategories(context.Background(), db), "分类种子执行失败")

	categorySvc := service.NewCategoryService(repository.NewCategoryRepository(db), 0)
	converterSvc := service.NewConverterService(categorySvc)
	validationSvc := service.NewValidationService(categorySvc)
	listingSvc := service.NewListingService(repository.NewListingRepository(db), categorySvc, converterSvc)
	draftSvc := service.NewDraftService(repository.NewDraftRepository(db))
	submitSvc := service.NewSubmitService(validationSvc, converterSvc, listingSvc, draftSvc,
		service.SubmitConfig{ClearDraftOnCommit: true})

	engine := router.SetupRouter(&router.Controllers{
		Listing:  controller.NewListingController(listingSvc, draftSvc, submitSvc),
		Category: controller.NewCategoryController(categorySvc),
	}, router.Options{
		SaveLimiter:  middleware.NewDraftSaveLimiter(),
		SaveCooldown: 0,
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

// fillSession 把一份可提交的表单内容灌进会话（触发四次即发即忘保存）
func fillSession(s *service.FormSession, userID string) {
	s.SetTitleCategory(model.TitleCategory{
		UserID:        userID,
		Title:         "Vintage Film Camera",
		SubTitle:      "Fully working",
		CategoryID:    1,  // Electronics
		SubCategoryID: 11, // Phones
		EndDate:       time.Now().AddDate(0, 0, 1).Format(model.DateLayout),
	})
	s.SetItemDetails(model.ItemDetails{
		Description: "Classic rangefinder camera in excellent condition.",
		Condition:   true,
	})
	s.SetPricePayment(model.PricePayment{
		ListingPrice:      "199.50",
		CreditCardPayment: true,
	})
	s.SetShipping(model.Shipping{
		PickUp:         true,
		ShippingOption: model.ShippingOptionCourier,
	})
}

// ==================== 端到端流程 ====================

// 完整生命周期：编辑 -> 草稿落库 -> 换会话恢复 -> 提交 -> 草稿清理 -> 回编辑更新
func TestIntegration_DraftLifecycle(t *testing.T) {
	srv := setupServer(t)
	api := client.NewClient(srv.URL)
	ctx := context.Background()

	// 种子分类可见
	top, err := api.GetCategories(ctx, 0, true)
	require.NoError(t, err)
	require.NotEmpty(t, top, "顶级分类不应为空")

	// 空库：列表被吸收成空切片
	listings, err := api.GetListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, listings)

	// 第一段会话：编辑触发即发即忘保存
	store := utils.NewSessionStore(0)
	userID := service.ResolveUserID(store)
	require.NotEmpty(t, userID)

	session := service.NewFormSession(userID, api, api, service.FormConfig{})
	assert.False(t, session.CheckForDraft(ctx), "新用户不应有草稿")

	fillSession(session, userID)
	require.Eventually(t, func() bool {
		_, found, err := api.GetDraft(ctx, userID)
		return err == nil && found
	}, 3*time.Second, 20*time.Millisecond, "编辑后草稿应出现在远端")

	// 第二段会话（模拟刷新页面）：检测并恢复草稿
	session2 := service.NewFormSession(userID, api, api, service.FormConfig{})
	require.Eventually(t, func() bool {
		if !session2.CheckForDraft(ctx) {
			return false
		}
		if err := session2.LoadDraft(ctx); err != nil {
			return false
		}
		// 四次分区保存是异步的，等最后一个分区也到位
		return session2.Snapshot().Shipping.ShippingOption == model.ShippingOptionCourier
	}, 3*time.Second, 20*time.Millisecond, "草稿应可恢复")

	restored := session2.Snapshot()
	assert.Equal(t, "Vintage Film Camera", restored.TitleCategory.Title)
	assert.Equal(t, "199.50", restored.PricePayment.ListingPrice)

	// 提交
	result, err := session2.Submit(ctx)
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotZero(t, result.ListingID)

	// 提交成功后草稿被清理
	_, found, err := api.GetDraft(ctx, userID)
	require.NoError(t, err)
	assert.False(t, found, "提交后草稿应被清理")

	// 列表出现一行，分类反查与显示名正确
	listings, err = api.GetListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, int64(1), listings[0].CategoryID)
	assert.Equal(t, int64(11), listings[0].SubCategoryID)
	assert.Equal(t, "Phones", listings[0].Category)

	// 回编辑：整行覆盖更新
	draft, err := api.GetListingForEdit(ctx, result.ListingID, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), draft.TitleCategory.CategoryID)

	session3 := service.NewFormSession(userID, api, api, service.FormConfig{})
	session3.LoadForEdit(draft, result.ListingID)

	tc := draft.TitleCategory
	tc.Title = "Vintage Film Camera (Updated)"
	session3.SetTitleCategory(tc)

	updated, err := session3.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, updated.Created)
	assert.Equal(t, int64(1), updated.Rows)

	got, err := api.GetListing(ctx, result.ListingID)
	require.NoError(t, err)
	assert.Equal(t, "Vintage Film Camera (Updated)", got.Title)
}

// 校验门禁经 HTTP 往返后依然拦截提交
func TestIntegration_ValidationBlocksSubmit(t *testing.T) {
	srv := setupServer(t)
	api := client.NewClient(srv.URL)
	ctx := context.Background()

	session := service.NewFormSession("user-invalid", api, api, service.FormConfig{})
	// 只填一个分区，其余规则全违规
	session.SetTitleCategory(model.TitleCategory{Title: "ab"})

	_, err := session.Submit(ctx)
	require.Error(t, err, "违规表单不应提交成功")

	listings, err := api.GetListings(ctx)
	require.NoError(t, err)
	assert.Empty(t, listings, "校验失败不应落库")
}

// 草稿保存与恢复对"残缺"数据完全宽容
func TestIntegration_PartialDraftAllowed(t *testing.T) {
	srv := setupServer(t)
	api := client.NewClient(srv.URL)
	ctx := context.Background()

	partial := &model.DraftListing{
		TitleCategory: model.TitleCategory{UserID: "user-partial", Title: "ab"},
	}
	require.NoError(t, api.SaveDraft(ctx, "user-partial", partial), "残缺草稿应可保存")

	raw, found, err := api.GetDraft(ctx, "user-partial")
	require.NoError(t, err)
	require.True(t, found)

	local := model.NewDraftListing("user-partial")
	require.NoError(t, service.MergeDraftSections(local, raw))
	assert.Equal(t, "ab", local.TitleCategory.Title)

	require.NoError(t, api.DeleteDraft(ctx, "user-partial"))
	_, found, err = api.GetDraft(ctx, "user-partial")
	require.NoError(t, err)
	assert.False(t, found)
}
