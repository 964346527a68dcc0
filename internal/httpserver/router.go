package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/antonskv/shop_backend/internal/admin"
	"github.com/antonskv/shop_backend/internal/authn"
	"github.com/antonskv/shop_backend/internal/mykafka"
	"github.com/antonskv/shop_backend/internal/service"
)

// Server holds the wired services and hangs the route tree off an echo
// instance.
type Server struct {
	Auth      *service.AuthService
	Cart      *service.CartService
	Favorites *service.FavoriteService
	Ratings   *service.RatingService
	Reviews   *service.ReviewService
	Catalog   *service.CatalogService
	Delivery  *service.DeliveryService
	Search    *service.SearchService
	Admin     *admin.Engine
	Producer  *mykafka.Producer
	MW        *authn.Middleware
}

func (s *Server) Register(e *echo.Echo) {
	e.Validator = newRequestValidator()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	auth := e.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/refresh", s.handleRefresh)
	auth.POST("/logout", s.handleLogout)
	auth.GET("/me", s.handleMe, s.MW.RequireAuth)
	auth.PUT("/profile", s.handleUpdateProfile, s.MW.RequireAuth)
	auth.PUT("/password", s.handleChangePassword, s.MW.RequireAuth)

	e.GET("/products", s.handleListProducts)
	e.GET("/products/:id", s.handleGetProduct)
	e.POST("/products", s.handleCreateProduct, s.MW.RequireAdmin)
	e.PUT("/products/:id", s.handleUpdateProduct, s.MW.RequireAdmin)
	e.DELETE("/products/:id", s.handleDeleteProduct, s.MW.RequireAdmin)

	e.GET("/search", s.handleSearch)

	cart := e.Group("/cart", s.MW.RequireAuth)
	cart.GET("", s.handleGetCart)
	cart.POST("", s.handleAddToCart)
	cart.PUT("", s.handleSetCartQuantity)
	cart.DELETE("/:productId", s.handleRemoveFromCart)
	cart.GET("/item/:id", s.handleGetCartItem)
	cart.PUT("/item/:id", s.handleUpdateCartItem)

	fav := e.Group("/favorites", s.MW.RequireAuth)
	fav.GET("", s.handleListFavorites)
	fav.POST("", s.handleAddFavorite)
	fav.POST("/toggle", s.handleToggleFavorite)
	fav.DELETE("/:productId", s.handleRemoveFavorite)

	e.GET("/ratings", s.handleListRatings)
	e.GET("/ratings/:id", s.handleGetRating)
	e.POST("/ratings", s.handleSubmitRating, s.MW.RequireAuth)
	e.PUT("/ratings/:id", s.handleUpdateRating, s.MW.RequireAdmin)
	e.DELETE("/ratings/:id", s.handleDeleteRating, s.MW.RequireAdmin)

	e.GET("/reviews", s.handleListReviews)
	e.POST("/reviews", s.handleCreateReview, s.MW.RequireAuth)
	e.DELETE("/reviews/:id", s.handleDeleteReview, s.MW.RequireAuth)

	delivery := e.Group("/delivery", s.MW.RequireAuth)
	delivery.GET("", s.handleListDeliveries)
	delivery.GET("/:id", s.handleGetDelivery)
	delivery.POST("", s.handleCreateDelivery)
	delivery.POST("/checkout", s.handleCheckout)
	delivery.PUT("/:id/status", s.handleUpdateDeliveryStatus, s.MW.RequireAdmin)
	delivery.PUT("/:id", s.handleUpdateDelivery, s.MW.RequireAdmin)
	delivery.DELETE("/:id", s.handleDeleteDelivery, s.MW.RequireAdmin)

	adm := e.Group("/admin/:resource", s.MW.RequireAdmin)
	adm.GET("", s.handleAdminList)
	adm.GET("/:id", s.handleAdminGet)
	adm.POST("", s.handleAdminCreate)
	adm.PUT("/:id", s.handleAdminUpdate)
	adm.DELETE("/:id", s.handleAdminDelete)
}
