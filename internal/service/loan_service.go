package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andrifs/solutions-engine/internal/config"
	"github.com/andrifs/solutions-engine/internal/domain"
	"github.com/andrifs/solutions-engine/internal/repository"
	customError "github.com/andrifs/solutions-engine/pkg/errors"
	"github.com/andrifs/solutions-engine/pkg/finance"
)

const dateLayout = "2006-01-02"

// LoanService owns loan and payment orchestration. Derived financial fields
// (total interest, balance, installment amount) are computed here once at
// create/update time and stored; clients never recompute them.
type LoanService struct {
	LoanRepo    repository.LoanRepository
	PaymentRepo repository.PaymentRepository
	redis       *redis.Client
	config      *config.Config
	logger      *zap.Logger
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		LoanRepo:    loanRepo,
		PaymentRepo: paymentRepo,
		redis:       redisClient,
		config:      cfg,
		logger:      logger,
	}
}

// CreateLoan resolves the loan term, computes the derived financial fields
// and persists the loan.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	var start, end time.Time
	if request.DurationDays != nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		start, end = finance.ApplyDuration(today, *request.DurationDays)
	} else {
		var err error
		start, end, err = parseDateRange(request.StartDate, request.EndDate)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:                   uuid.New(),
		BorrowerName:         request.BorrowerName,
		Amount:               request.Amount,
		InterestRate:         request.InterestRate,
		InterestType:         request.InterestType,
		CompoundingFrequency: request.CompoundingFrequency,
		StartDate:            start,
		EndDate:              end,
		Status:               domain.LoanStatusActive,
		PaidAmount:           decimal.Zero,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	s.applyDerivedFields(loan, request.InstallmentFrequency)

	if err := s.LoanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("total_balance", loan.TotalBalance.String()),
	)

	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (s *LoanService) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

// ListLoans retrieves all loans.
func (s *LoanService) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// UpdateLoan replaces a loan's editable fields and recomputes the derived
// financial fields. The paid amount is untouched; payments own it.
func (s *LoanService) UpdateLoan(ctx context.Context, id uuid.UUID, request *domain.UpdateLoanRequest) (*domain.Loan, error) {
	loan, err := s.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end, err := parseDateRange(request.StartDate, request.EndDate)
	if err != nil {
		return nil, err
	}

	loan.BorrowerName = request.BorrowerName
	loan.Amount = request.Amount
	loan.InterestRate = request.InterestRate
	loan.InterestType = request.InterestType
	loan.CompoundingFrequency = request.CompoundingFrequency
	loan.StartDate = start
	loan.EndDate = end
	loan.Status = request.Status
	loan.UpdatedAt = time.Now()

	s.applyDerivedFields(loan, request.InstallmentFrequency)

	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateScore(ctx, id)

	return loan, nil
}

// DeleteLoan removes a loan together with its payments and bills.
func (s *LoanService) DeleteLoan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetLoan(ctx, id); err != nil {
		return err
	}

	if err := s.LoanRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateScore(ctx, id)

	return nil
}

// MakePayment records a payment against a loan and rolls it into the loan's
// paid amount. A loan whose paid amount reaches its balance flips to paid.
func (s *LoanService) MakePayment(ctx context.Context, loanID uuid.UUID, request *domain.MakePaymentRequest) (*domain.PaymentResponse, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if request.PaymentDate != "" {
		paymentDate, err = time.Parse(dateLayout, request.PaymentDate)
		if err != nil {
			return nil, customError.WrapInvalidDate(request.PaymentDate)
		}
	}

	payment := &domain.Payment{
		ID:          uuid.New(),
		LoanID:      loanID,
		Amount:      request.Amount,
		PaymentDate: paymentDate,
		CreatedAt:   time.Now(),
	}

	if err := s.PaymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// The stored aggregate clamps at the balance; the payment row keeps the
	// amount as received.
	loan.PaidAmount = clampToBalance(loan.PaidAmount.Add(request.Amount), loan.TotalBalance)
	if loan.Status == domain.LoanStatusActive && loan.PaidAmount.GreaterThanOrEqual(loan.TotalBalance) {
		loan.Status = domain.LoanStatusPaid
	}
	loan.UpdatedAt = time.Now()

	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateScore(ctx, loanID)

	return &domain.PaymentResponse{
		Payment:     payment,
		PaidAmount:  loan.PaidAmount,
		Outstanding: loan.Outstanding(),
		LoanStatus:  loan.Status,
	}, nil
}

// ListPayments retrieves a loan's payment history.
func (s *LoanService) ListPayments(ctx context.Context, loanID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

// DeletePayment removes a payment and re-derives the loan's paid amount from
// the remaining payments. A paid loan drops back to active when it is no
// longer covered.
func (s *LoanService) DeletePayment(ctx context.Context, loanID, paymentID uuid.UUID) error {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}

	payment, err := s.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPaymentNotFound(paymentID.String())
		}
		return customError.WrapDatabaseError(err)
	}
	if payment.LoanID != loanID {
		return customError.WrapPaymentNotFound(paymentID.String())
	}

	if err := s.PaymentRepo.Delete(ctx, paymentID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	total, err := s.PaymentRepo.TotalPaid(ctx, loanID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	loan.PaidAmount = clampToBalance(total, loan.TotalBalance)
	if loan.Status == domain.LoanStatusPaid && loan.PaidAmount.LessThan(loan.TotalBalance) {
		loan.Status = domain.LoanStatusActive
	}
	loan.UpdatedAt = time.Now()

	if err := s.LoanRepo.Update(ctx, loan); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateScore(ctx, loanID)

	return nil
}

// Score estimates the loan's credit score. The payment history is fetched
// alongside the loan, but only the loan-level aggregates feed the formula.
// Results are cached in redis until the next loan or payment mutation.
func (s *LoanService) Score(ctx context.Context, loanID uuid.UUID) (*domain.ScoreResponse, error) {
	if cached := s.cachedScore(ctx, loanID); cached != nil {
		return &domain.ScoreResponse{LoanID: loanID, Result: *cached}, nil
	}

	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if _, err := s.PaymentRepo.GetByLoanID(ctx, loanID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	result := finance.CreditScore(loan.Status, loan.PaidAmount, loan.TotalBalance)

	s.cacheScore(ctx, loanID, result)

	return &domain.ScoreResponse{LoanID: loanID, Result: result}, nil
}

// applyDerivedFields recomputes total interest, total balance and the
// installment fields from the loan's principal, rate and term.
func (s *LoanService) applyDerivedFields(loan *domain.Loan, installmentFrequency string) {
	loan.TotalInterest = finance.TotalInterest(
		loan.Amount,
		loan.InterestRate,
		finance.InterestType(loan.InterestType),
		finance.CompoundingFrequency(loan.CompoundingFrequency),
		loan.StartDate,
		loan.EndDate,
	)
	loan.TotalBalance = loan.Amount.Add(loan.TotalInterest)

	if installmentFrequency == "" {
		loan.InstallmentFrequency = nil
		loan.InstallmentAmount = nil
		return
	}

	amount := finance.InstallmentAmount(
		loan.TotalBalance,
		loan.StartDate,
		loan.EndDate,
		finance.Frequency(installmentFrequency),
	).Round(2)

	loan.InstallmentFrequency = &installmentFrequency
	loan.InstallmentAmount = &amount
}

func scoreCacheKey(loanID uuid.UUID) string {
	return fmt.Sprintf("loan:%s:score", loanID)
}

func (s *LoanService) cachedScore(ctx context.Context, loanID uuid.UUID) *finance.ScoreResult {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, scoreCacheKey(loanID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("score cache read failed", zap.Error(err))
		}
		return nil
	}

	var result finance.ScoreResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *LoanService) cacheScore(ctx context.Context, loanID uuid.UUID, result finance.ScoreResult) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}

	ttl := time.Hour
	if s.config != nil && s.config.Business.ScoreCacheTTL > 0 {
		ttl = s.config.Business.ScoreCacheTTL
	}

	if err := s.redis.Set(ctx, scoreCacheKey(loanID), raw, ttl).Err(); err != nil {
		s.logger.Warn("score cache write failed", zap.Error(err))
	}
}

func (s *LoanService) invalidateScore(ctx context.Context, loanID uuid.UUID) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, scoreCacheKey(loanID)).Err(); err != nil {
		s.logger.Warn("score cache invalidation failed", zap.Error(err))
	}
}

// clampToBalance caps a loan's stored paid amount at its total balance.
func clampToBalance(paid, balance decimal.Decimal) decimal.Decimal {
	if paid.GreaterThan(balance) {
		return balance
	}
	return paid
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, customError.WrapInvalidDate(startStr)
	}

	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, customError.WrapInvalidDate(endStr)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, customError.WrapInvalidDateRange(startStr, endStr)
	}

	return start, end, nil
}
