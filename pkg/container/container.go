package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"jewelstore-backend/internal/config"
	infraCache "jewelstore-backend/internal/infrastructure/cache"
	"jewelstore-backend/internal/infrastructure/database"
	"jewelstore-backend/internal/infrastructure/email"
	"jewelstore-backend/internal/infrastructure/storage"
	"jewelstore-backend/pkg/cache"
	"jewelstore-backend/pkg/jwt"

	addressHandler "jewelstore-backend/internal/domains/address/handler"
	addressRepo "jewelstore-backend/internal/domains/address/repository"
	addressService "jewelstore-backend/internal/domains/address/service"
	cartHandler "jewelstore-backend/internal/domains/cart/handler"
	cartRepo "jewelstore-backend/internal/domains/cart/repository"
	cartService "jewelstore-backend/internal/domains/cart/service"
	couponHandler "jewelstore-backend/internal/domains/coupon/handler"
	couponRepo "jewelstore-backend/internal/domains/coupon/repository"
	couponService "jewelstore-backend/internal/domains/coupon/service"
	orderHandler "jewelstore-backend/internal/domains/order/handler"
	orderRepo "jewelstore-backend/internal/domains/order/repository"
	orderService "jewelstore-backend/internal/domains/order/service"
	paymentGateway "jewelstore-backend/internal/domains/payment/gateway"
	paymentHandler "jewelstore-backend/internal/domains/payment/handler"
	paymentService "jewelstore-backend/internal/domains/payment/service"
	productHandler "jewelstore-backend/internal/domains/product/handler"
	productRepo "jewelstore-backend/internal/domains/product/repository"
	productService "jewelstore-backend/internal/domains/product/service"
	reviewHandler "jewelstore-backend/internal/domains/review/handler"
	reviewRepo "jewelstore-backend/internal/domains/review/repository"
	reviewService "jewelstore-backend/internal/domains/review/service"
	userHandler "jewelstore-backend/internal/domains/user/handler"
	userRepo "jewelstore-backend/internal/domains/user/repository"
	userService "jewelstore-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; a wiring mistake fails the boot
// rather than a request.
type Container struct {
	// Infrastructure
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	JWTManager     *jwt.Manager
	AsynqClient    *asynq.Client
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	EmailService   *email.EmailService
	Razorpay       *paymentGateway.RazorpayClient

	// Repositories
	UserRepo    userRepo.UserRepository
	AddressRepo addressRepo.AddressRepository
	ProductRepo productRepo.ProductRepository
	CouponRepo  couponRepo.CouponRepository
	CartRepo    cartRepo.CartRepository
	OrderRepo   orderRepo.OrderRepository
	ReviewRepo  reviewRepo.ReviewRepository

	// Services
	UserService    userService.ServiceInterface
	AddressService addressService.ServiceInterface
	ProductService productService.ServiceInterface
	CouponService  couponService.ServiceInterface
	CartService    cartService.ServiceInterface
	OrderService   orderService.ServiceInterface
	ReviewService  reviewService.ServiceInterface
	PaymentService paymentService.ServiceInterface

	// HTTP handlers
	UserHandler        *userHandler.UserHandler
	AddressHandler     *addressHandler.AddressHandler
	ProductHandler     *productHandler.PublicHandler
	ProductAdmin       *productHandler.AdminHandler
	CouponHandler      *couponHandler.PublicHandler
	CouponAdmin        *couponHandler.AdminHandler
	CartHandler        *cartHandler.CartHandler
	OrderHandler       *orderHandler.OrderHandler
	OrderAdmin         *orderHandler.AdminHandler
	ReviewHandler      *reviewHandler.ReviewHandler
	ReviewAdmin        *reviewHandler.AdminHandler
	PaymentHandlerHTTP *paymentHandler.PaymentHandler
}

// NewContainer builds the whole graph in dependency order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[Container] Initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// Redis is a cache here, not a source of truth; a failed
		// connection degrades performance, not correctness.
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[Container] Redis unavailable (continuing): %v", err)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessTokenExpiry,
		c.Config.JWT.RefreshTokenExpiry,
	)

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	minioStorage, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("connect object storage: %w", err)
	}
	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	c.EmailService = email.NewEmailService(c.Config.Email)
	c.Razorpay = paymentGateway.NewRazorpayClient(c.Config.Razorpay)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AddressRepo = addressRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CouponRepo = couponRepo.NewPostgresRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresRepository(pool)
}

// initServices wires the domain services. Product comes first: the
// cart reads prices from it and the order reserves stock through it.
func (c *Container) initServices() {
	c.ProductService = productService.NewProductService(
		c.ProductRepo, c.Storage, c.ImageProcessor, c.AsynqClient, c.Cache,
	)
	c.CouponService = couponService.NewCouponService(c.CouponRepo, c.Cache)
	c.CartService = cartService.NewCartService(
		c.CartRepo, c.ProductService, c.CouponService, c.Cache,
	)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo, c.DB.Pool, c.CartService, c.CouponService,
		c.ProductService, c.Razorpay, c.AsynqClient,
	)
	c.PaymentService = paymentService.NewPaymentService(
		c.Config.Razorpay, c.OrderRepo, c.OrderService,
	)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.CartService)
	c.AddressService = addressService.NewAddressService(c.AddressRepo)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.ProductHandler = productHandler.NewPublicHandler(c.ProductService)
	c.ProductAdmin = productHandler.NewAdminHandler(c.ProductService)
	c.CouponHandler = couponHandler.NewPublicHandler(c.CouponService)
	c.CouponAdmin = couponHandler.NewAdminHandler(c.CouponService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.OrderAdmin = orderHandler.NewAdminHandler(c.OrderService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService, c.UserService)
	c.ReviewAdmin = reviewHandler.NewAdminHandler(c.ReviewService)
	c.PaymentHandlerHTTP = paymentHandler.NewPaymentHandler(c.PaymentService)
}

// Cleanup releases infrastructure connections on shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[Container] Failed to close asynq client: %v", err)
		}
	}
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("[Container] Failed to close redis: %v", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("[Container] Cleanup complete")
}
