package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	"library-backend/internal/domains/account"
	accountHandler "library-backend/internal/domains/account/handler"
	accountRepo "library-backend/internal/domains/account/repository"
	accountService "library-backend/internal/domains/account/service"

	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"

	"library-backend/internal/domains/category"
	categoryHandler "library-backend/internal/domains/category/handler"
	categoryRepo "library-backend/internal/domains/category/repository"
	categoryService "library-backend/internal/domains/category/service"

	"library-backend/internal/domains/loan"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"

	"library-backend/internal/domains/reader"
	readerRepo "library-backend/internal/domains/reader/repository"

	"library-backend/internal/domains/report"
	reportHandler "library-backend/internal/domains/report/handler"
	reportService "library-backend/internal/domains/report/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application
// Tất cả components là singleton, sống suốt app lifetime
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// Repositories
	AccountRepo  account.Repository
	CategoryRepo category.Repository
	ReaderRepo   reader.Repository
	BookRepo     book.Repository
	LoanRepo     loan.Repository

	// Services
	AccountService  account.Service
	CategoryService category.Service
	BookService     book.Service
	LoanService     loan.Service
	ReportService   report.Service

	// Handlers
	AccountHandler  *accountHandler.AccountHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookHandler     *bookHandler.BookHandler
	LoanHandler     *loanHandler.LoanHandler
	ReportHandler   *reportHandler.ReportHandler
}

// NewContainer khởi tạo toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Storage) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Info().Msg("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Redis down không critical với API: cache miss + blacklist check fail-open
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
	} else {
		log.Info().Msg("✅ Redis connected")
	}
	c.Cache = redisCache

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORAGE
	// ========================================
	log.Info().Msg("📁 Connecting to MinIO...")

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init MinIO: %w", err)
	}
	c.Storage = minioStorage
	log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("✅ MinIO connected")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AccountRepo = accountRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ReaderRepo = readerRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(c.AccountRepo, c.JWTManager, c.Cache)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)

	// LoanRepo đóng vai LoanChecker: book delete bị chặn khi còn loan mở
	c.BookService = bookService.NewBookService(c.BookRepo, c.LoanRepo, c.Storage)

	c.LoanService = loanService.NewLoanService(c.LoanRepo, c.ReaderRepo, c.AccountRepo)
	c.ReportService = reportService.NewReportService(c.BookRepo, c.ReaderRepo, c.LoanRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.AccountHandler = accountHandler.NewAccountHandler(c.AccountService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.LoanService)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService)
	c.ReportHandler = reportHandler.NewReportHandler(c.ReportService)
}

// Cleanup dọn dẹp resources khi shutdown
// Gọi trong graceful shutdown của server
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("✅ Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
