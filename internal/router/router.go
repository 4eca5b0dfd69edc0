package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"auction_dev_v1_202608/internal/controller"
	"auction_dev_v1_202608/internal/middleware"

	_ "auction_dev_v1_202608/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Listing  *controller.ListingController
	Category *controller.CategoryController
}

// Options 路由装配参数
type Options struct {
	Log          *logrus.Logger
	SaveLimiter  *middleware.DraftSaveLimiter
	SaveCooldown time.Duration // <= 0 停用草稿保存冷却
}

// SetupRouter 装配引擎：跨域、审计、日志、文档和全部业务路由
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.AuditContext())
	if opts.Log != nil {
		r.Use(middleware.RequestLogger(opts.Log))
	}

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 分类
	r.GET("/categories", ctls.Category.GetCategories)

	// 商品 / 草稿
	// /listings/:id 按参数形态复用：数字走商品，其余走草稿
	listings := r.Group("/listings")
	{
		listings.GET("", ctls.Listing.ListListings)
		listings.POST("", ctls.Listing.CreateListing)
		listings.GET("/:id", ctls.Listing.GetListingOrDraft)
		listings.GET("/:id/edit", ctls.Listing.GetListingForEdit)
		listings.PUT("/:listingId", ctls.Listing.UpdateListing)
		listings.POST("/:userId",
			middleware.DraftSaveCooldown(opts.SaveLimiter, opts.SaveCooldown),
			ctls.Listing.SaveDraft)
		listings.DELETE("/draft/:userId", ctls.Listing.DeleteDraft)
	}

	return r
}
