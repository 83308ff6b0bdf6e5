package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"table_order/internal/auth"
	"table_order/internal/logger"
	"table_order/internal/models"
	"table_order/internal/services"
	"table_order/internal/session"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	sessions     *session.Manager
	authService  services.AuthService
	menuService  services.MenuService
	tableService services.TableService
	uploads      Uploader
	log          *logger.Logger
}

func NewAdminHandler(
	sessions *session.Manager,
	authService services.AuthService,
	menuService services.MenuService,
	tableService services.TableService,
	uploads Uploader,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		sessions:     sessions,
		authService:  authService,
		menuService:  menuService,
		tableService: tableService,
		uploads:      uploads,
		log:          log,
	}
}

func (h *AdminHandler) LoginPage(c *gin.Context) {
	if auth.PrincipalFrom(c).Authenticated() {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	render(c, http.StatusOK, "admin_login.html", gin.H{"Title": "Log in"})
}

func (h *AdminHandler) Login(c *gin.Context) {
	restaurant, err := h.authService.Login(c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Error("login", "Login failed", err)
		}
		session.Flash(c, "error", "Invalid email or password")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	if err := h.sessions.Login(c, restaurant.ID, restaurant.Name); err != nil {
		h.log.Error("login", "Failed to start session", err, slog.Uint64("restaurant_id", uint64(restaurant.ID)))
		renderError(c, http.StatusInternalServerError, genericFailure)
		return
	}
	h.log.Info("login", "Restaurant logged in", slog.Uint64("restaurant_id", uint64(restaurant.ID)))
	session.Flash(c, "success", "Login successful")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *AdminHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "admin_register.html", gin.H{"Title": "Register"})
}

func (h *AdminHandler) Register(c *gin.Context) {
	logoURL, err := h.uploads.Save(c, "logo")
	if err != nil {
		h.formFailure(c, "register", err, "/admin/register")
		return
	}

	restaurant, err := h.authService.Register(services.RegisterInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Description:     c.PostForm("description"),
		LogoURL:         logoURL,
	})
	if err != nil {
		h.formFailure(c, "register", err, "/admin/register")
		return
	}
	h.log.Info("register", "Restaurant registered", slog.Uint64("restaurant_id", uint64(restaurant.ID)))
	session.Flash(c, "success", "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		h.log.Error("logout", "Failed to clear session", err)
	}
	session.Flash(c, "success", "You have been logged out")
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":    "Dashboard",
		"Statuses": models.OrderStatuses,
	})
}

func (h *AdminHandler) Menu(c *gin.Context) {
	items, err := h.menuService.List(auth.PrincipalFrom(c).RestaurantID)
	if err != nil {
		pageError(c, h.log, "admin_menu", err)
		return
	}
	render(c, http.StatusOK, "admin_menu.html", gin.H{"Title": "Menu", "MenuItems": items})
}

func (h *AdminHandler) Tables(c *gin.Context) {
	tables, err := h.tableService.List(auth.PrincipalFrom(c).RestaurantID)
	if err != nil {
		pageError(c, h.log, "admin_tables", err)
		return
	}
	render(c, http.StatusOK, "admin_tables.html", gin.H{"Title": "Tables", "Tables": tables})
}

func (h *AdminHandler) AddMenuItem(c *gin.Context) {
	imageURL, err := h.uploads.Save(c, "image")
	if err == nil {
		_, err = h.menuService.Create(auth.PrincipalFrom(c), menuItemInput(c, imageURL))
	}
	h.formResult(c, "add_menu_item", err, "/admin/menu", "Menu item added successfully")
}

func (h *AdminHandler) EditMenuItem(c *gin.Context) {
	id, ok := parseID(c.PostForm("item_id"))
	if !ok {
		renderNotFound(c)
		return
	}
	imageURL, err := h.uploads.Save(c, "image")
	if err == nil {
		_, err = h.menuService.Update(auth.PrincipalFrom(c), id, menuItemInput(c, imageURL))
	}
	h.formResult(c, "edit_menu_item", err, "/admin/menu", "Menu item updated successfully")
}

func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c.PostForm("item_id"))
	if !ok {
		renderNotFound(c)
		return
	}
	err := h.menuService.Delete(auth.PrincipalFrom(c), id)
	h.formResult(c, "delete_menu_item", err, "/admin/menu", "Menu item deleted successfully")
}

type availabilityRequest struct {
	ItemID      uint  `json:"item_id" binding:"required"`
	IsAvailable *bool `json:"is_available"`
}

// UpdateItemAvailability: POST /admin/update_item_availability
func (h *AdminHandler) UpdateItemAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	available, err := h.menuService.SetAvailability(auth.PrincipalFrom(c), req.ItemID, req.IsAvailable)
	if err != nil {
		respondError(c, h.log, "update_item_availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "is_available": available})
}

func (h *AdminHandler) AddTable(c *gin.Context) {
	in, err := tableInput(c)
	if err == nil {
		_, err = h.tableService.Create(auth.PrincipalFrom(c), in)
	}
	h.formResult(c, "add_table", err, "/admin/tables", "Table added successfully")
}

func (h *AdminHandler) EditTable(c *gin.Context) {
	id, ok := parseID(c.PostForm("table_id"))
	if !ok {
		renderNotFound(c)
		return
	}
	in, err := tableInput(c)
	if err == nil {
		_, err = h.tableService.Update(auth.PrincipalFrom(c), id, in)
	}
	h.formResult(c, "edit_table", err, "/admin/tables", "Table updated successfully")
}

func (h *AdminHandler) DeleteTable(c *gin.Context) {
	id, ok := parseID(c.PostForm("table_id"))
	if !ok {
		renderNotFound(c)
		return
	}
	err := h.tableService.Delete(auth.PrincipalFrom(c), id)
	h.formResult(c, "delete_table", err, "/admin/tables", "Table deleted successfully")
}

// TableQRCode: GET /admin/tables/:id/qrcode
func (h *AdminHandler) TableQRCode(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}
	png, err := h.tableService.QRCode(auth.PrincipalFrom(c), id)
	if err != nil {
		pageError(c, h.log, "table_qrcode", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="table-%d.png"`, id))
	c.Data(http.StatusOK, "image/png", png)
}

// formResult flashes the outcome of a form post and redirects back.
// Unknown rows get the 404 page.
func (h *AdminHandler) formResult(c *gin.Context, action string, err error, target, success string) {
	if err != nil {
		h.formFailure(c, action, err, target)
		return
	}
	session.Flash(c, "success", success)
	c.Redirect(http.StatusFound, target)
}

func (h *AdminHandler) formFailure(c *gin.Context, action string, err error, target string) {
	status, message := errorStatus(err)
	switch status {
	case http.StatusNotFound:
		renderNotFound(c)
		return
	case http.StatusInternalServerError:
		h.log.Error(action, "Form submission failed", err)
	}
	session.Flash(c, "error", message)
	c.Redirect(http.StatusFound, target)
}

func menuItemInput(c *gin.Context, imageURL string) services.MenuItemInput {
	_, available := c.GetPostForm("is_available")
	return services.MenuItemInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		IsAvailable: available,
		ImageURL:    imageURL,
	}
}

func tableInput(c *gin.Context) (services.TableInput, error) {
	in := services.TableInput{
		TableNumber: c.PostForm("table_number"),
		Location:    c.PostForm("location"),
	}
	if raw := strings.TrimSpace(c.PostForm("capacity")); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return in, services.ValidationError{Field: "capacity", Message: "Capacity must be a whole number"}
		}
		in.Capacity = capacity
	}
	return in, nil
}
