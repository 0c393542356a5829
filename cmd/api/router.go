package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelstore-backend/internal/shared/middleware"
	"jewelstore-backend/internal/shared/policy"
	"jewelstore-backend/pkg/container"
)

// SetupRouter mounts every route group. Guests get a session id from
// the session middleware; signed-in callers are identified by the JWT.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	cookieSecure := c.Config.App.Environment == "production"

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandler(c))

		setupAuthRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupAddressRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupReviewRoutes(v1, c)
		setupCartRoutes(v1, c, cookieSecure)
		setupCouponRoutes(v1, c)
		setupOrderRoutes(v1, c, cookieSecure)
		setupPaymentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	auth.Use(middleware.SessionMiddleware(false))
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/me")
	me.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		me.GET("", c.UserHandler.GetProfile)
		me.PATCH("", c.UserHandler.UpdateProfile)
		me.PUT("/password", c.UserHandler.ChangePassword)
	}
}

func setupAddressRoutes(v1 *gin.RouterGroup, c *container.Container) {
	addresses := v1.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		addresses.GET("", c.AddressHandler.ListAddresses)
		addresses.POST("", c.AddressHandler.CreateAddress)
		addresses.PUT("/:id", c.AddressHandler.UpdateAddress)
		addresses.DELETE("/:id", c.AddressHandler.DeleteAddress)
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/:slug", c.ProductHandler.GetProduct)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListProductReviews)
		reviews.POST("", middleware.AuthMiddleware(c.JWTManager), c.ReviewHandler.CreateReview)
		reviews.DELETE("/:id", middleware.AuthMiddleware(c.JWTManager), c.ReviewHandler.DeleteReview)
	}
}

func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, cookieSecure bool) {
	cart := v1.Group("/cart")
	cart.Use(
		middleware.SessionMiddleware(cookieSecure),
		middleware.OptionalAuthMiddleware(c.JWTManager),
	)
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PATCH("/items/:id", c.CartHandler.UpdateItem)
		cart.DELETE("/items/:id", c.CartHandler.RemoveItem)
		cart.POST("/coupon", c.CartHandler.ApplyCoupon)
		cart.DELETE("/coupon", c.CartHandler.RemoveCoupon)
	}
}

func setupCouponRoutes(v1 *gin.RouterGroup, c *container.Container) {
	coupons := v1.Group("/coupons")
	coupons.Use(middleware.OptionalAuthMiddleware(c.JWTManager))
	{
		coupons.POST("/validate", c.CouponHandler.ValidateCoupon)
	}
}

func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, cookieSecure bool) {
	orders := v1.Group("/orders")
	orders.Use(
		middleware.SessionMiddleware(cookieSecure),
		middleware.OptionalAuthMiddleware(c.JWTManager),
	)
	{
		// Guest-capable
		orders.POST("/checkout", c.OrderHandler.Checkout)
		orders.POST("/track", c.OrderHandler.TrackOrder)
		orders.POST("/track/cancel", c.OrderHandler.CancelGuestOrder)

		// Account-only
		orders.GET("", middleware.AuthMiddleware(c.JWTManager), c.OrderHandler.ListOrders)
		orders.GET("/:id", middleware.AuthMiddleware(c.JWTManager), c.OrderHandler.GetOrder)
		orders.POST("/:id/cancel", middleware.AuthMiddleware(c.JWTManager), c.OrderHandler.CancelOrder)
	}
}

func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	{
		payments.POST("/verify", c.PaymentHandlerHTTP.VerifyPayment)
		payments.POST("/webhook", c.PaymentHandlerHTTP.Webhook)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		catalog := admin.Group("/products", middleware.RequireCapability(policy.CapManageCatalog))
		{
			catalog.GET("", c.ProductAdmin.ListProducts)
			catalog.POST("", c.ProductAdmin.CreateProduct)
			catalog.POST("/import", c.ProductAdmin.ImportCatalog)
			catalog.GET("/:id", c.ProductAdmin.GetProduct)
			catalog.PATCH("/:id", c.ProductAdmin.UpdateProduct)
			catalog.DELETE("/:id", c.ProductAdmin.DeleteProduct)
			catalog.POST("/:id/images", c.ProductAdmin.UploadImage)
		}

		coupons := admin.Group("/coupons", middleware.RequireCapability(policy.CapManageCoupons))
		{
			coupons.GET("", c.CouponAdmin.ListCoupons)
			coupons.POST("", c.CouponAdmin.CreateCoupon)
			coupons.GET("/:id", c.CouponAdmin.GetCoupon)
			coupons.PATCH("/:id", c.CouponAdmin.UpdateCoupon)
			coupons.DELETE("/:id", c.CouponAdmin.DeleteCoupon)
		}

		orders := admin.Group("/orders", middleware.RequireCapability(policy.CapManageOrders))
		{
			orders.GET("", c.OrderAdmin.ListOrders)
			orders.GET("/:id", c.OrderAdmin.GetOrder)
			orders.PATCH("/:id/status", c.OrderAdmin.UpdateStatus)
		}

		reviews := admin.Group("/reviews", middleware.RequireCapability(policy.CapModerateReview))
		{
			reviews.GET("/pending", c.ReviewAdmin.ListPending)
			reviews.PATCH("/:id", c.ReviewAdmin.Moderate)
			reviews.DELETE("/:id", c.ReviewAdmin.DeleteReview)
		}
	}
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status": http.StatusText(status),
			"checks": checks,
		})
	}
}
