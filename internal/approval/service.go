// Package approval implements the expense approval flow: an expense
// transaction is approved or rejected by the caller, the decision is
// persisted, and a localized confirmation is returned.
package approval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// Decision actions accepted from the caller.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Repository is the persistence surface of the approval flow.
type Repository interface {
	// Transaction loads a transaction owned by the caller.
	// shared.ErrNotFound when absent.
	Transaction(ctx context.Context, userID, id uuid.UUID) (finance.Transaction, error)
	// SetStatus records the decision. shared.ErrNotFound when the row vanished.
	SetStatus(ctx context.Context, userID, id uuid.UUID, status, decidedBy string, decidedAt time.Time) error
	// ProfileName resolves the caller's display name; empty when no profile.
	ProfileName(ctx context.Context, userID uuid.UUID) (string, error)
}

// Decision is the outcome returned to the caller.
type Decision struct {
	Success       bool
	TransactionID uuid.UUID
	Status        string
	DecidedAt     time.Time
	DecidedBy     string
	Message       string
}

// Service applies approval decisions.
type Service struct {
	repo  Repository
	clock func() time.Time
}

// NewService constructs the approval service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: func() time.Time { return time.Now().UTC() }}
}

// Decide approves or rejects an expense transaction. Only expense-typed
// transactions are eligible.
func (s *Service) Decide(ctx context.Context, userID, transactionID uuid.UUID, action, comment string) (Decision, error) {
	if action != ActionApprove && action != ActionReject {
		return Decision{}, shared.InvalidInput("Үйлдэл approve эсвэл reject байх ёстой")
	}

	tx, err := s.repo.Transaction(ctx, userID, transactionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Decision{}, shared.NotFound("Гүйлгээ олдсонгүй")
		}
		return Decision{}, fmt.Errorf("load transaction: %w", err)
	}
	if tx.Type != finance.TypeExpense {
		return Decision{}, shared.InvalidInput("Зөвхөн зарлагын гүйлгээг батлах боломжтой")
	}

	status := finance.StatusApproved
	if action == ActionReject {
		status = finance.StatusRejected
	}

	decidedBy, err := s.repo.ProfileName(ctx, userID)
	if err != nil {
		return Decision{}, fmt.Errorf("load profile: %w", err)
	}
	if decidedBy == "" {
		decidedBy = userID.String()
	}

	decidedAt := s.clock()
	if err := s.repo.SetStatus(ctx, userID, transactionID, status, decidedBy, decidedAt); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Decision{}, shared.NotFound("Гүйлгээ олдсонгүй")
		}
		return Decision{}, fmt.Errorf("persist decision: %w", err)
	}

	return Decision{
		Success:       true,
		TransactionID: transactionID,
		Status:        status,
		DecidedAt:     decidedAt,
		DecidedBy:     decidedBy,
		Message:       decisionMessage(action, comment),
	}, nil
}

func decisionMessage(action, comment string) string {
	if action == ActionApprove {
		if comment != "" {
			return fmt.Sprintf("Зарлага амжилттай батлагдлаа. Тайлбар: %s", comment)
		}
		return "Зарлага амжилттай батлагдлаа"
	}
	if comment != "" {
		return fmt.Sprintf("Зарлага татгалзагдлаа. Шалтгаан: %s", comment)
	}
	return "Зарлага татгалзагдлаа"
}
