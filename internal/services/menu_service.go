package services

import (
	"fmt"
	"strings"

	"table_order/internal/auth"
	"table_order/internal/models"
	"table_order/internal/repository"

	"github.com/shopspring/decimal"
)

// MenuItemInput is the form payload for creating or editing an item.
// Price is kept as text so parse failures surface as validation errors.
type MenuItemInput struct {
	Name        string
	Description string
	Price       string
	Category    string
	IsAvailable bool
	ImageURL    string
}

type MenuService interface {
	List(restaurantID uint) ([]models.MenuItem, error)
	Create(p auth.Principal, in MenuItemInput) (*models.MenuItem, error)
	Update(p auth.Principal, id uint, in MenuItemInput) (*models.MenuItem, error)
	Delete(p auth.Principal, id uint) error
	SetAvailability(p auth.Principal, id uint, available *bool) (bool, error)
}

type menuService struct {
	menuRepo      repository.MenuItemRepository
	orderItemRepo repository.OrderItemRepository
}

func NewMenuService(menuRepo repository.MenuItemRepository, orderItemRepo repository.OrderItemRepository) MenuService {
	return &menuService{menuRepo: menuRepo, orderItemRepo: orderItemRepo}
}

func (s *menuService) List(restaurantID uint) ([]models.MenuItem, error) {
	return s.menuRepo.ListByRestaurant(restaurantID)
}

func (s *menuService) Create(p auth.Principal, in MenuItemInput) (*models.MenuItem, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}
	name, price, err := validateMenuItem(in)
	if err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		Category:     strings.TrimSpace(in.Category),
		ImageURL:     in.ImageURL,
		IsAvailable:  in.IsAvailable,
		RestaurantID: p.RestaurantID,
	}
	if err := s.menuRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) Update(p auth.Principal, id uint, in MenuItemInput) (*models.MenuItem, error) {
	item, err := s.owned(p, id)
	if err != nil {
		return nil, err
	}
	name, price, err := validateMenuItem(in)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Description = strings.TrimSpace(in.Description)
	item.Price = price
	item.Category = strings.TrimSpace(in.Category)
	item.IsAvailable = in.IsAvailable
	if in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	if err := s.menuRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

func (s *menuService) Delete(p auth.Principal, id uint) error {
	if _, err := s.owned(p, id); err != nil {
		return err
	}

	// order lines keep their own price but still reference the item
	refs, err := s.orderItemRepo.CountByMenuItem(id)
	if err != nil {
		return fmt.Errorf("failed to check order references: %w", err)
	}
	if refs > 0 {
		return ConflictError{Message: "Cannot delete menu item that appears in orders"}
	}
	return s.menuRepo.Delete(id)
}

// SetAvailability writes available when given, otherwise flips the flag.
func (s *menuService) SetAvailability(p auth.Principal, id uint, available *bool) (bool, error) {
	item, err := s.owned(p, id)
	if err != nil {
		return false, err
	}

	next := !item.IsAvailable
	if available != nil {
		next = *available
	}
	if err := s.menuRepo.SetAvailability(id, next); err != nil {
		return false, fmt.Errorf("failed to update availability: %w", err)
	}
	return next, nil
}

func (s *menuService) owned(p auth.Principal, id uint) (*models.MenuItem, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, item); err != nil {
		return nil, err
	}
	return item, nil
}

func validateMenuItem(in MenuItemInput) (string, float64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", 0, ValidationError{Field: "name", Message: "Name is required"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return "", 0, ValidationError{Field: "price", Message: "Price must be a number"}
	}
	if !price.IsPositive() {
		return "", 0, ValidationError{Field: "price", Message: "Price must be greater than zero"}
	}
	return name, price.Round(2).InexactFloat64(), nil
}
