package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"table_order/internal/config"
	"table_order/internal/database"
	"table_order/internal/handlers"
	"table_order/internal/logger"
	"table_order/internal/migrations"
	"table_order/internal/redis"
	"table_order/internal/repository"
	"table_order/internal/routes"
	"table_order/internal/services"
	"table_order/internal/session"
	"table_order/internal/ws"
	"table_order/pkg/razorpay"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	appLog := logger.NewLogger("table_order")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// a second signal kills the process during the drain
		<-ctx.Done()
		stop()
	}()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Live order feed: publishes go through Redis so every instance's hub
	// sees them.
	hub := ws.NewHub(appLog)
	go hub.Run(ctx)
	go func() {
		if err := redisClient.SubscribeEvents(ctx, hub.Deliver); err != nil && !errors.Is(err, context.Canceled) {
			appLog.Error("subscribe_events", "Order event subscription stopped", err)
		}
	}()

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)

	// Initialize services
	var verifier services.PaymentVerifier
	if cfg.VerifyPayments {
		verifier = services.NewPaymentVerifier(razorpay.NewClient(cfg.RazorpayAPIURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret))
	}
	authService := services.NewAuthService(restaurantRepo)
	menuService := services.NewMenuService(menuRepo, orderItemRepo)
	tableService := services.NewTableService(tableRepo, services.TableQRGenerator{BaseURL: cfg.PublicBaseURL})
	orderService := services.NewOrderService(orderRepo, menuRepo, tableRepo, restaurantRepo, redisClient, verifier, appLog)

	sessions := session.NewManager(
		redisClient,
		cfg.SecretKey,
		time.Duration(cfg.SessionTTL)*time.Second,
		strings.HasPrefix(cfg.PublicBaseURL, "https://"),
	)

	// Initialize handlers
	router, err := routes.NewRouter(routes.Deps{
		Sessions:       sessions,
		Hub:            hub,
		Customer:       handlers.NewCustomerHandler(authService, menuService, tableService, orderService, cfg.RazorpayKeyID, appLog),
		Admin:          handlers.NewAdminHandler(sessions, authService, menuService, tableService, handlers.Uploader{Dir: cfg.UploadDir}, appLog),
		API:            handlers.NewAPIHandler(orderService, appLog),
		UploadDir:      cfg.UploadDir,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
	}, appLog)
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}

	// Start server
	appLog.Info("startup", "Server starting",
		slog.String("addr", cfg.Addr()),
		slog.Bool("verify_payments", cfg.VerifyPayments),
	)
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Fatal("Failed to start server:", err)
	}
	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		log.Fatal("Server stopped:", err)
	}
	appLog.Info("shutdown", "Server stopped")
}

// serve runs srv on ln until ctx is done, then gives in-flight requests up
// to drain to finish.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, drain time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
