package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-backend/internal/chat"
	"storefront-backend/internal/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/handlers"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/payments"
	"storefront-backend/internal/state"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// feedNotifier routes state-container events into the notifications feed.
type feedNotifier struct {
	queries *database.NotificationQueries
}

func (n *feedNotifier) Notify(_ context.Context, userID *int, kind, message string) {
	if _, err := n.queries.CreateNotification(userID, kind, message); err != nil {
		log.Printf("notifications: failed to record %s event: %v", kind, err)
	}
}

func main() {
	cfg := config.Load()

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Ensure uploads directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal("Failed to create uploads directory:", err)
	}

	states := state.NewStore(newPersister(cfg), &feedNotifier{queries: database.NewNotificationQueries(db)})
	stripeService := payments.NewStripeService(cfg.StripeSecretKey)
	chatService := chat.NewService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)

	r := gin.Default()

	// Initialize session store
	middleware.InitSessionStore(cfg.JWTSecret)

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Use(middleware.SecurityHeaders())

	// Session middleware supplies the guest state-container slot key
	r.Use(middleware.SessionMiddleware())

	// Static file serving for uploads
	r.Static("/uploads", "./uploads")

	authHandler := handlers.NewAuthHandler(db, states, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(db)
	productHandler := handlers.NewProductHandler(db)
	taxonomyHandler := handlers.NewTaxonomyHandler(db)
	cartHandler := handlers.NewCartHandler(states)
	orderHandler := handlers.NewOrderHandler(db, states)
	paymentHandler := handlers.NewPaymentHandler(db, stripeService, states)
	dashboardHandler := handlers.NewDashboardHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	contactHandler := handlers.NewContactHandler(db)
	chatHandler := handlers.NewChatHandler(chatService)
	imageHandler := handlers.NewImageHandler(db, cfg.UploadDir)

	// User and auth routes
	user := r.Group("/api/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.POST("/refresh", authHandler.RefreshToken)
		user.POST("/logout", middleware.OptionalAuthMiddleware(cfg.JWTSecret), authHandler.Logout)

		authed := user.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/profile", profileHandler.GetProfile)
			authed.PUT("/profile", profileHandler.UpdateProfile)
			authed.GET("/addresses", profileHandler.ListAddresses)
			authed.POST("/addresses", profileHandler.CreateAddress)
			authed.DELETE("/addresses/:id", profileHandler.DeleteAddress)
		}

		user.GET("/users", middleware.AdminMiddleware(cfg.JWTSecret), profileHandler.ListUsers)
	}

	// Product catalog
	products := r.Group("/api/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/single", productHandler.GetProduct)

		admin := products.Group("", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.POST("/add", productHandler.CreateProduct)
			admin.POST("/remove", productHandler.RemoveProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
		}
	}

	// Taxonomy
	category := r.Group("/api/category")
	{
		category.GET("", taxonomyHandler.ListCategories)

		admin := category.Group("", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.POST("", taxonomyHandler.CreateCategory)
			admin.PUT("/:id", taxonomyHandler.UpdateCategory)
			admin.DELETE("/:id", taxonomyHandler.DeleteCategory)
		}
	}
	brand := r.Group("/api/brand")
	{
		brand.GET("", taxonomyHandler.ListBrands)

		admin := brand.Group("", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.POST("", taxonomyHandler.CreateBrand)
			admin.PUT("/:id", taxonomyHandler.UpdateBrand)
			admin.DELETE("/:id", taxonomyHandler.DeleteBrand)
		}
	}

	// Cart and wishlist state endpoints, usable by guests and signed-in users
	cart := r.Group("/api/cart", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/add", cartHandler.AddToCart)
		cart.PUT("/increment/:productId", cartHandler.IncrementQuantity)
		cart.PUT("/decrement/:productId", cartHandler.DecrementQuantity)
		cart.DELETE("/remove/:productId", cartHandler.RemoveLineItem)
		cart.POST("/clear", cartHandler.ClearCart)
	}
	wishlist := r.Group("/api/wishlist", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		wishlist.GET("", cartHandler.GetWishlist)
		wishlist.POST("/toggle", cartHandler.ToggleWishlist)
	}

	// Orders
	order := r.Group("/api/order", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		order.POST("/create", orderHandler.CreateOrder)
		order.GET("/my-orders", orderHandler.MyOrders)
		order.GET("/:id", orderHandler.GetOrder)

		admin := order.Group("", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.GET("/all-orders", orderHandler.AllOrders)
			admin.PUT("/update-status", orderHandler.UpdateStatus)
			admin.DELETE("/delete", orderHandler.DeleteOrder)
		}
	}

	// Payments
	payment := r.Group("/api/payment", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		payment.POST("/stripe/create-payment-intent", paymentHandler.CreatePaymentIntent)
		payment.POST("/stripe/confirm-payment", paymentHandler.ConfirmPayment)
	}

	// Notifications feed
	notifications := r.Group("/api/notifications", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		notifications.GET("", notificationHandler.List)
		notifications.PUT("/read-all", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
	}

	// Contact form
	contact := r.Group("/api/contact")
	{
		contact.POST("", contactHandler.Create)

		admin := contact.Group("", middleware.AdminMiddleware(cfg.JWTSecret))
		{
			admin.GET("", contactHandler.List)
			admin.PUT("/:id", contactHandler.UpdateStatus)
			admin.DELETE("/:id", contactHandler.Delete)
		}
	}

	// Support chat
	r.POST("/api/chat", chatHandler.Chat)

	// Admin back office
	admin := r.Group("/api/admin", middleware.AdminMiddleware(cfg.JWTSecret))
	{
		admin.POST("/images/upload", imageHandler.UploadImage)
		admin.GET("/images", imageHandler.ListImages)
		admin.DELETE("/images/:id", imageHandler.DeleteImage)
	}

	r.GET("/api/dashboard/stats", middleware.AdminMiddleware(cfg.JWTSecret), dashboardHandler.Stats)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// newPersister connects to Redis for state snapshots, falling back to the
// in-memory persister when Redis is unreachable so development setups work
// without it.
func newPersister(cfg *config.Config) state.Persister {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s (%v), state snapshots held in memory", cfg.RedisAddr, err)
		return state.NewMemoryPersister()
	}

	log.Printf("State snapshots persisted to Redis at %s", cfg.RedisAddr)
	return state.NewRedisPersister(client)
}
