package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/justinas/alice"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/config"
	"github.com/andrifs/solutions-engine/internal/handler"
	"github.com/andrifs/solutions-engine/internal/repository"
	"github.com/andrifs/solutions-engine/internal/service"
	"github.com/andrifs/solutions-engine/pkg/response"
)

func main() {
	// Optional .env file; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := cfg.Logging.BuildLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := initDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	billRepo := repository.NewBillRepository(db)
	truckRepo := repository.NewTruckRepository(db)

	// Services
	loanService := service.NewLoanService(loanRepo, paymentRepo, redisClient, cfg, logger)
	billingService := service.NewBillingService(loanRepo, billRepo, logger)
	logisticsService := service.NewLogisticsService(truckRepo, logger)

	// Handlers
	loanHandler := handler.NewLoanHandler(loanService)
	billingHandler := handler.NewBillingHandler(billingService)
	logisticsHandler := handler.NewLogisticsHandler(logisticsService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(loanHandler, billingHandler, logisticsHandler, healthHandler)

	chain := alice.New(
		response.RecoverMiddleware(logger),
		response.LoggingMiddleware(logger),
		response.CORSMiddleware,
		response.JSONMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      chain.Then(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	loanHandler *handler.LoanHandler,
	billingHandler *handler.BillingHandler,
	logisticsHandler *handler.LogisticsHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	api.HandleFunc("/loans", loanHandler.ListLoans).Methods("GET")
	api.HandleFunc("/loans/{id}", loanHandler.GetLoan).Methods("GET")
	api.HandleFunc("/loans/{id}", loanHandler.UpdateLoan).Methods("PUT")
	api.HandleFunc("/loans/{id}", loanHandler.DeleteLoan).Methods("DELETE")
	api.HandleFunc("/loan/{id}/payment", loanHandler.MakePayment).Methods("POST")
	api.HandleFunc("/loan/{id}/payments", loanHandler.ListPayments).Methods("GET")
	api.HandleFunc("/loan/{id}/payment/{paymentId}", loanHandler.DeletePayment).Methods("DELETE")
	api.HandleFunc("/loan/{id}/score", loanHandler.GetScore).Methods("GET")

	api.HandleFunc("/loan/bill/{loanId}", billingHandler.CreateBill).Methods("POST")
	api.HandleFunc("/loan/{loanId}/bills", billingHandler.ListBills).Methods("GET")
	api.HandleFunc("/loan/bill/{id}/status", billingHandler.UpdateBillStatus).Methods("PATCH")
	api.HandleFunc("/loan/bill/{id}", billingHandler.DeleteBill).Methods("DELETE")

	api.HandleFunc("/logistics/trucks", logisticsHandler.CreateTruck).Methods("POST")
	api.HandleFunc("/logistics/trucks", logisticsHandler.ListTrucks).Methods("GET")
	api.HandleFunc("/logistics/trucks/{id}", logisticsHandler.GetTruck).Methods("GET")
	api.HandleFunc("/logistics/trucks/{id}", logisticsHandler.UpdateTruck).Methods("PUT")
	api.HandleFunc("/logistics/trucks/{id}", logisticsHandler.DeleteTruck).Methods("DELETE")
	api.HandleFunc("/logistics/trucks/{id}/availability", logisticsHandler.CheckAvailability).Methods("GET")
	api.HandleFunc("/logistics/bookings/store", logisticsHandler.CreateBooking).Methods("POST")
	api.HandleFunc("/logistics/bookings/{id}/status", logisticsHandler.UpdateBookingStatus).Methods("PATCH")

	return router
}
