package main

import (
	"errors"
	"fmt"
	"log"

	"table_order/internal/auth"
	"table_order/internal/config"
	"table_order/internal/database"
	"table_order/internal/migrations"
	"table_order/internal/repository"
	"table_order/internal/services"
)

const (
	demoEmail    = "demo@tableorder.local"
	demoPassword = "demo1234"
)

var demoMenu = []services.MenuItemInput{
	{Name: "Paneer Tikka", Description: "Chargrilled cottage cheese with peppers", Price: "225", Category: "Starters", IsAvailable: true},
	{Name: "Veg Spring Rolls", Description: "Crisp rolls with a sweet chilli dip", Price: "180", Category: "Starters", IsAvailable: true},
	{Name: "Butter Chicken", Description: "Tandoori chicken in a tomato butter gravy", Price: "340", Category: "Mains", IsAvailable: true},
	{Name: "Dal Makhani", Description: "Slow cooked black lentils", Price: "260", Category: "Mains", IsAvailable: true},
	{Name: "Garlic Naan", Price: "60", Category: "Breads", IsAvailable: true},
	{Name: "Mango Lassi", Price: "90", Category: "Drinks", IsAvailable: true},
	{Name: "Gulab Jamun", Description: "Two pieces, served warm", Price: "110", Category: "Desserts", IsAvailable: false},
}

var demoTables = []services.TableInput{
	{TableNumber: "1", Capacity: 2, Location: "Window"},
	{TableNumber: "2", Capacity: 4, Location: "Window"},
	{TableNumber: "3", Capacity: 4, Location: "Main hall"},
	{TableNumber: "4", Capacity: 6, Location: "Main hall"},
	{TableNumber: "5", Capacity: 8, Location: "Patio"},
}

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	restaurantRepo := repository.NewRestaurantRepository(db)
	authService := services.NewAuthService(restaurantRepo)
	menuService := services.NewMenuService(repository.NewMenuItemRepository(db), repository.NewOrderItemRepository(db))
	tableService := services.NewTableService(repository.NewTableRepository(db), services.TableQRGenerator{BaseURL: cfg.PublicBaseURL})

	// Create demo restaurant
	fmt.Println("Creating demo restaurant...")
	restaurant, err := authService.Register(services.RegisterInput{
		Name:            "Spice Route",
		Email:           demoEmail,
		Password:        demoPassword,
		ConfirmPassword: demoPassword,
		Description:     "North Indian kitchen, open till late",
	})
	if errors.Is(err, services.ErrConflict) {
		fmt.Println("Demo restaurant already exists")
		return
	}
	if err != nil {
		log.Fatal("Failed to create demo restaurant:", err)
	}
	owner := auth.Principal{RestaurantID: restaurant.ID, RestaurantName: restaurant.Name}

	fmt.Println("Creating menu...")
	for _, item := range demoMenu {
		if _, err := menuService.Create(owner, item); err != nil {
			log.Printf("Warning: Failed to create menu item %q: %v", item.Name, err)
		}
	}

	fmt.Println("Creating tables and QR codes...")
	for _, in := range demoTables {
		table, err := tableService.Create(owner, in)
		if err != nil {
			log.Printf("Warning: Failed to create table %s: %v", in.TableNumber, err)
			continue
		}
		fmt.Printf("  Table %s: %s\n", table.TableNumber, table.QRCodeURL)
	}

	fmt.Println("Database initialization completed successfully!")
	fmt.Println("Email:", demoEmail)
	fmt.Println("Password:", demoPassword)
}
