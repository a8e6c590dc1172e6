package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"lrstore/internal/config"
	"lrstore/internal/database"
	"lrstore/internal/handlers"
	"lrstore/internal/middleware"
	"lrstore/internal/orders"
	"lrstore/internal/payments"
	"lrstore/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAllIndexes(db); err != nil {
		log.Printf("⚠️ index warning: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Printf("⚠️ seed warning: %v", err)
	}

	if err := os.MkdirAll(config.AppEnv.UploadsDir, 0o755); err != nil {
		log.Fatal(err)
	}

	orderStore := store.NewMongoOrderStore(db)
	paymentStore := store.NewMongoPaymentStore(db)
	orderService := orders.NewService(orderStore)
	paymentService := payments.NewService(paymentStore, orderStore)

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadsDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health(db))

		// Catalog
		api.GET("/categories", handlers.GetCategories(db))
		api.GET("/categories/:slug", handlers.GetCategoryBySlug(db))
		api.GET("/products", handlers.GetProducts(db))
		api.GET("/products/:id", handlers.GetProductByID(db))

		// Accounts
		api.POST("/auth/register", handlers.Register(db))
		api.POST("/auth/login", handlers.Login(db))
		api.GET("/users/:id", handlers.GetUser(db))
		api.PUT("/users/:id", handlers.UpdateUser(db))
		api.POST("/users/:id/change-password", handlers.ChangePassword(db))

		// Addresses
		api.GET("/users/me/addresses", handlers.ListAddresses(db))
		api.POST("/users/me/addresses", handlers.CreateAddress(db))
		api.PUT("/users/me/addresses/:id", handlers.UpdateAddress(db))
		api.DELETE("/users/me/addresses/:id", handlers.DeleteAddress(db))

		// Cart
		api.GET("/cart", handlers.GetCart(db))
		api.DELETE("/cart", handlers.ClearCart(db))
		api.POST("/cart/items", handlers.AddCartItem(db))
		api.PUT("/cart/items/:product_id", handlers.UpdateCartItem(db))
		api.DELETE("/cart/items/:product_id", handlers.RemoveCartItem(db))

		// Favorites
		api.GET("/favorites", handlers.ListFavorites(db))
		api.POST("/favorites", handlers.AddFavorite(db))
		api.DELETE("/favorites/:product_id", handlers.RemoveFavorite(db))

		// Orders
		api.POST("/orders", handlers.CreateOrder(orderService))
		api.GET("/orders/my", handlers.GetMyOrders(orderService))
		api.GET("/orders/:order_number", handlers.GetOrder(orderService))

		// Payments (mocked Multicaixa gateway)
		api.POST("/payments/multicaixa/reference", handlers.GeneratePaymentReference(paymentService))
		api.POST("/payments/multicaixa/express", handlers.ProcessExpressPayment(paymentService))
		api.POST("/payments/mock/pay/:transaction_id", handlers.MockPayTransaction(paymentService))
		api.GET("/payments/status/:transaction_id", handlers.GetPaymentStatus(paymentService))

		// Support
		api.POST("/support/messages", handlers.CreateSupportMessage(db))
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(db))
	{
		admin.GET("/dashboard", handlers.AdminDashboard(db))

		admin.GET("/orders", handlers.AdminListOrders(orderService))
		admin.GET("/orders/:order_number", handlers.AdminGetOrder(orderService))
		admin.PATCH("/orders/:order_number", handlers.AdminUpdateOrder(orderService, db))

		admin.GET("/products", handlers.AdminListProducts(db))
		admin.POST("/products", handlers.AdminCreateProduct(db))
		admin.GET("/products/:id", handlers.AdminGetProduct(db))
		admin.PUT("/products/:id", handlers.AdminUpdateProduct(db))
		admin.DELETE("/products/:id", handlers.AdminDeleteProduct(db))

		admin.POST("/categories", handlers.AdminCreateCategory(db))
		admin.PUT("/categories/:id", handlers.AdminUpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.AdminDeleteCategory(db))

		admin.GET("/users", handlers.AdminListUsers(db))
		admin.GET("/users/:id", handlers.AdminGetUser(db))
		admin.PATCH("/users/:id", handlers.AdminUpdateUser(db))

		admin.GET("/support/messages", handlers.AdminListSupportMessages(db))
		admin.PATCH("/support/messages/:id", handlers.AdminUpdateSupportMessage(db))

		admin.POST("/uploads", handlers.UploadImage())
	}

	log.Println("listening on :" + config.AppEnv.Port)
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
