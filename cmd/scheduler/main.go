package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/config"
	"github.com/andrifs/solutions-engine/internal/repository"
	"github.com/andrifs/solutions-engine/internal/service"
)

func main() {
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

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	billRepo := repository.NewBillRepository(db)
	billingService := service.NewBillingService(loanRepo, billRepo, logger)

	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Scheduler.Location()))

	if err := setupCronJobs(c, cfg, billingService, logger); err != nil {
		logger.Fatal("failed to schedule jobs", zap.Error(err))
	}

	c.Start()
	logger.Info("scheduler started",
		zap.String("overdue_spec", cfg.Scheduler.OverdueSpec),
		zap.String("reminder_spec", cfg.Scheduler.ReminderSpec),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, billing *service.BillingService, logger *zap.Logger) error {
	// Daily sweep: pending bills past their due date become overdue
	if _, err := c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		count, err := billing.MarkOverdueBills(ctx)
		if err != nil {
			logger.Error("overdue sweep failed", zap.Error(err))
			return
		}
		logger.Info("overdue sweep finished", zap.Int64("bills_marked", count))
	}); err != nil {
		return err
	}

	// Weekly reminder: log pending bills coming due soon
	if _, err := c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		bills, err := billing.BillsDueSoon(ctx, cfg.Business.ReminderHorizon)
		if err != nil {
			logger.Error("reminder query failed", zap.Error(err))
			return
		}

		for _, bill := range bills {
			logger.Info("bill due soon",
				zap.String("loan_id", bill.LoanID.String()),
				zap.Int("bill_number", bill.BillNumber),
				zap.Time("due_date", bill.DueDate),
				zap.String("total_amount_due", bill.TotalAmountDue.String()),
			)
		}
	}); err != nil {
		return err
	}

	return nil
}
