package services

import (
	"errors"
	"fmt"
	"strings"

	"table_order/internal/models"
	"table_order/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

const featuredLimit = 3

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Description     string
	LogoURL         string
}

type AuthService interface {
	Register(in RegisterInput) (*models.Restaurant, error)
	Login(email, password string) (*models.Restaurant, error)
	FeaturedRestaurants() ([]models.Restaurant, error)
	GetRestaurant(id uint) (*models.Restaurant, error)
}

type authService struct {
	restaurantRepo repository.RestaurantRepository
	hashCost       int
}

func NewAuthService(restaurantRepo repository.RestaurantRepository) AuthService {
	return &authService{restaurantRepo: restaurantRepo, hashCost: bcrypt.DefaultCost}
}

func (s *authService) Register(in RegisterInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	switch {
	case name == "":
		return nil, ValidationError{Field: "name", Message: "Restaurant name is required"}
	case email == "":
		return nil, ValidationError{Field: "email", Message: "Email is required"}
	case in.Password == "":
		return nil, ValidationError{Field: "password", Message: "Password is required"}
	case in.Password != in.ConfirmPassword:
		return nil, ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}

	exists, err := s.restaurantRepo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ConflictError{Message: "Email is already registered"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	restaurant := &models.Restaurant{
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword),
		Description: strings.TrimSpace(in.Description),
		LogoURL:     in.LogoURL,
	}
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *authService) Login(email, password string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(restaurant.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return restaurant, nil
}

func (s *authService) FeaturedRestaurants() ([]models.Restaurant, error) {
	return s.restaurantRepo.List(featuredLimit)
}

func (s *authService) GetRestaurant(id uint) (*models.Restaurant, error) {
	return s.restaurantRepo.GetByID(id)
}
