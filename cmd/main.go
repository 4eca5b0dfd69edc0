package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"auction_dev_v1_202608/internal/controller"
	"auction_dev_v1_202608/internal/middleware"
	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
	"auction_dev_v1_202608/internal/router"
	"auction_dev_v1_202608/internal/service"
	"auction_dev_v1_202608/internal/task"
	"auction_dev_v1_202608/pkg/database"
)

// @title Auction Listing API
// @version 1.0
// @description 拍卖商品草稿/提交服务
// @host localhost:8080
// @BasePath /
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		Log:          deps.Log,
		SaveLimiter:  middleware.NewDraftSaveLimiter(),
		SaveCooldown: time.Duration(getEnvInt("DRAFT_SAVE_COOLDOWN_MS", 0)) * time.Millisecond,
	})

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Log         *logrus.Logger
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Listing  repository.ListingRepository
	Category repository.CategoryRepository
	Draft    repository.DraftRepository
}

// Services 服务集合
type Services struct {
	Category   *service.CategoryService
	Converter  *service.ConverterService
	Validation *service.ValidationService
	Listing    *service.ListingService
	Draft      *service.DraftService
	Submit     *service.SubmitService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并灌入分类种子
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=auction port=5432 sslmode=disable")

	db := database.InitDB(dsn,
		&model.Category{},
		&model.Listing{},
		&model.ListingDraft{},
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.SeedCategories(ctx, db); err != nil {
		log.Fatalf("分类种子数据初始化失败: %v", err)
	}

	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// -------- Repo 层 --------
	repos := &Repositories{
		Listing:  repository.NewListingRepository(db),
		Category: repository.NewCategoryRepository(db),
		Draft:    repository.NewDraftRepository(db),
	}

	// -------- Service 层 --------
	services := &Services{}
	services.Category = service.NewCategoryService(repos.Category, 0)
	services.Converter = service.NewConverterService(services.Category)
	services.Validation = service.NewValidationService(services.Category)
	services.Listing = service.NewListingService(repos.Listing, services.Category, services.Converter)
	services.Draft = service.NewDraftService(repos.Draft)
	services.Submit = service.NewSubmitService(
		services.Validation,
		services.Converter,
		services.Listing,
		services.Draft,
		service.SubmitConfig{
			ClearDraftOnCommit: getEnvBool("CLEAR_DRAFT_ON_COMMIT", true),
		},
	)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Listing:  controller.NewListingController(services.Listing, services.Draft, services.Submit),
		Category: controller.NewCategoryController(services.Category),
	}

	return &Dependencies{
		DB:          db,
		Log:         logger,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	cleanupTask := task.NewDraftCleanupTask(
		deps.Repos.Draft,
		time.Duration(getEnvInt("DRAFT_TTL_HOURS", 72))*time.Hour,
		getEnv("DRAFT_CLEANUP_CRON", ""),
	)
	cleanupTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
