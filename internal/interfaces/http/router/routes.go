package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jaysam/backend/internal/domain/identity"
	"github.com/jaysam/backend/internal/interfaces/http/handler"
	"github.com/jaysam/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers wired into the route table
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	User    *handler.UserHandler
}

// Routes registers the full API surface. authRequired is the JWT
// middleware applied to everything that needs a logged-in user.
type Routes struct {
	handlers     Handlers
	authRequired gin.HandlerFunc
}

// NewRoutes creates the route registrar
func NewRoutes(handlers Handlers, authRequired gin.HandlerFunc) *Routes {
	return &Routes{
		handlers:     handlers,
		authRequired: authRequired,
	}
}

// RegisterRoutes implements RouteRegistrar
func (r *Routes) RegisterRoutes(rg *gin.RouterGroup) {
	h := r.handlers

	// Liveness and health, no auth
	system := rg.Group("/system")
	{
		system.GET("/health", h.System.Health)
		system.GET("/ping", h.System.Ping)
	}

	// Registration, login and refresh are public. Logout and the
	// profile endpoints need a valid token.
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		auth.POST("/logout", r.authRequired, h.Auth.Logout)
		auth.GET("/me", r.authRequired, h.Auth.Me)
		auth.PUT("/me", r.authRequired, h.User.UpdateProfile)
		auth.PUT("/me/password", r.authRequired, h.Auth.ChangePassword)
	}

	// Catalog browsing is public so visitors can shop before signing in
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/featured", h.Product.Featured)
		products.GET("/timber-types", h.Product.TimberTypes)
		products.GET("/timber-types/:type/variants", h.Product.SizeVariants)
		products.GET("/:id", h.Product.Get)
		products.GET("/:id/quote", h.Product.Quote)
	}

	// Product administration needs Manager or above
	adminProducts := rg.Group("/admin/products", r.authRequired, middleware.RequireRole(identity.RoleManager))
	{
		adminProducts.POST("", h.Product.Create)
		adminProducts.PUT("/:id", h.Product.Update)
		adminProducts.PUT("/:id/price", h.Product.SetPrice)
		adminProducts.POST("/:id/stock", h.Product.AdjustStock)
		adminProducts.PUT("/:id/featured", h.Product.SetFeatured)
		adminProducts.POST("/:id/activate", h.Product.Activate)
		adminProducts.POST("/:id/deactivate", h.Product.Deactivate)
	}

	cart := rg.Group("/cart", r.authRequired)
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.Add)
		cart.PUT("/items/:id", h.Cart.Update)
		cart.DELETE("/items/:id", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	orders := rg.Group("/orders", r.authRequired)
	{
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("", h.Order.ListMine)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	// All staff can review orders; moving one through fulfillment
	// needs Manager or above
	adminOrders := rg.Group("/admin/orders", r.authRequired, middleware.RequireStaff())
	{
		adminOrders.GET("", h.Order.ListAll)
		adminOrders.PUT("/:id/status", middleware.RequireRole(identity.RoleManager), h.Order.UpdateStatus)
	}

	// Account administration needs Admin or CEO
	adminUsers := rg.Group("/admin/users", r.authRequired, middleware.RequireElevated())
	{
		adminUsers.GET("", h.User.List)
		adminUsers.GET("/:id", h.User.Get)
		adminUsers.PUT("/:id/role", h.User.AssignRole)
	}
}
