package services

import (
	"fmt"
	"strings"

	"table_order/internal/auth"
	"table_order/internal/models"
	"table_order/internal/repository"
)

type TableInput struct {
	TableNumber string
	Capacity    int
	Location    string
}

type TableService interface {
	List(restaurantID uint) ([]models.Table, error)
	Get(id uint) (*models.Table, error)
	Create(p auth.Principal, in TableInput) (*models.Table, error)
	Update(p auth.Principal, id uint, in TableInput) (*models.Table, error)
	Delete(p auth.Principal, id uint) error
	QRCode(p auth.Principal, id uint) ([]byte, error)
}

type tableService struct {
	tableRepo repository.TableRepository
	qr        QRGenerator
}

func NewTableService(tableRepo repository.TableRepository, qr QRGenerator) TableService {
	return &tableService{tableRepo: tableRepo, qr: qr}
}

func (s *tableService) List(restaurantID uint) ([]models.Table, error) {
	return s.tableRepo.ListByRestaurant(restaurantID)
}

func (s *tableService) Get(id uint) (*models.Table, error) {
	return s.tableRepo.GetByID(id)
}

func (s *tableService) Create(p auth.Principal, in TableInput) (*models.Table, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}
	number, err := validateTable(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNumberFree(p.RestaurantID, number, 0); err != nil {
		return nil, err
	}

	table := &models.Table{
		TableNumber:  number,
		Capacity:     in.Capacity,
		Location:     strings.TrimSpace(in.Location),
		RestaurantID: p.RestaurantID,
	}
	link := func(t *models.Table) string { return s.qr.MenuURL(t.RestaurantID, t.ID) }
	if err := s.tableRepo.CreateWithLink(table, link); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

func (s *tableService) Update(p auth.Principal, id uint, in TableInput) (*models.Table, error) {
	table, err := s.owned(p, id)
	if err != nil {
		return nil, err
	}
	number, err := validateTable(in)
	if err != nil {
		return nil, err
	}
	if number != table.TableNumber {
		if err := s.ensureNumberFree(table.RestaurantID, number, table.ID); err != nil {
			return nil, err
		}
	}

	table.TableNumber = number
	table.Capacity = in.Capacity
	table.Location = strings.TrimSpace(in.Location)
	if err := s.tableRepo.Update(table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return table, nil
}

func (s *tableService) Delete(p auth.Principal, id uint) error {
	if _, err := s.owned(p, id); err != nil {
		return err
	}

	hasOrders, err := s.tableRepo.HasOrders(id)
	if err != nil {
		return fmt.Errorf("failed to check table orders: %w", err)
	}
	if hasOrders {
		return ConflictError{Message: "Cannot delete table with associated orders"}
	}
	return s.tableRepo.Delete(id)
}

// QRCode renders a PNG of the table's menu link.
func (s *tableService) QRCode(p auth.Principal, id uint) ([]byte, error) {
	table, err := s.owned(p, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(table.RestaurantID, table.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}

func (s *tableService) owned(p auth.Principal, id uint) (*models.Table, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthenticated
	}
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) ensureNumberFree(restaurantID uint, number string, excludeID uint) error {
	taken, err := s.tableRepo.NumberTaken(restaurantID, number, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check table number: %w", err)
	}
	if taken {
		return ConflictError{Message: "Table number already exists"}
	}
	return nil
}

func validateTable(in TableInput) (string, error) {
	number := strings.TrimSpace(in.TableNumber)
	if number == "" {
		return "", ValidationError{Field: "table_number", Message: "Table number is required"}
	}
	if in.Capacity < 0 {
		return "", ValidationError{Field: "capacity", Message: "Capacity cannot be negative"}
	}
	return number, nil
}
