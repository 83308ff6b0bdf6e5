package routes

import (
	"fmt"
	"net/http"

	"table_order/internal/handlers"
	"table_order/internal/logger"
	"table_order/internal/middleware"
	"table_order/internal/session"
	"table_order/internal/web"
	"table_order/internal/ws"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Sessions    *session.Manager
	Hub         *ws.Hub
	Customer    *handlers.CustomerHandler
	Admin       *handlers.AdminHandler
	API         *handlers.APIHandler
	UploadDir   string
	CORSOrigins []string

	// TrustedProxies may set X-Forwarded-For; nil trusts none.
	TrustedProxies []string
}

// NewRouter builds the engine with logging, recovery and templates, then
// registers every route.
func NewRouter(d Deps, log *logger.Logger) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(log.Middleware(), gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	RegisterRoutes(r, d)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Static("/uploads", d.UploadDir)
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.NoRoute(handlers.NotFound)

	site := r.Group("/", middleware.Session(d.Sessions))

	// Customer
	site.GET("/", d.Customer.Home)
	site.GET("/menu", d.Customer.Menu)
	site.GET("/cart", d.Customer.Cart)
	site.POST("/place_order", d.Customer.PlaceOrder)
	site.GET("/confirmation", d.Customer.Confirmation)

	// Admin (public)
	site.GET("/admin/login", d.Admin.LoginPage)
	site.POST("/admin/login", d.Admin.Login)
	site.GET("/admin/register", d.Admin.RegisterPage)
	site.POST("/admin/register", d.Admin.Register)

	// Admin (logged in)
	admin := site.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/logout", d.Admin.Logout)
		admin.GET("/dashboard", d.Admin.Dashboard)
		admin.GET("/menu", d.Admin.Menu)
		admin.GET("/tables", d.Admin.Tables)
		admin.GET("/tables/:id/qrcode", d.Admin.TableQRCode)
		admin.POST("/add_menu_item", d.Admin.AddMenuItem)
		admin.POST("/edit_menu_item", d.Admin.EditMenuItem)
		admin.POST("/delete_menu_item", d.Admin.DeleteMenuItem)
		admin.POST("/update_item_availability", d.Admin.UpdateItemAvailability)
		admin.POST("/add_table", d.Admin.AddTable)
		admin.POST("/edit_table", d.Admin.EditTable)
		admin.POST("/delete_table", d.Admin.DeleteTable)
	}

	api := site.Group("/api", middleware.RequireAdmin())
	{
		api.GET("/orders", d.API.ListOrders)
		api.PUT("/orders/:id/status", d.API.UpdateOrderStatus)
	}

	site.GET("/ws/orders", middleware.RequireAdmin(), d.Hub.HandleWebSocket)
}
