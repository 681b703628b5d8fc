package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/shared"
)

type mockRepo struct {
	tx          finance.Transaction
	txErr       error
	profileName string
	setErr      error

	setStatus    string
	setDecidedBy string
	setCalls     int
}

func (m *mockRepo) Transaction(ctx context.Context, userID, id uuid.UUID) (finance.Transaction, error) {
	return m.tx, m.txErr
}

func (m *mockRepo) SetStatus(ctx context.Context, userID, id uuid.UUID, status, decidedBy string, decidedAt time.Time) error {
	m.setCalls++
	m.setStatus = status
	m.setDecidedBy = decidedBy
	return m.setErr
}

func (m *mockRepo) ProfileName(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.profileName, nil
}

func expenseTx() finance.Transaction {
	return finance.Transaction{
		ID:     uuid.New(),
		Type:   finance.TypeExpense,
		Amount: decimal.NewFromInt(50000),
		Status: finance.StatusPending,
	}
}

func TestDecideApprove(t *testing.T) {
	repo := &mockRepo{tx: expenseTx(), profileName: "Сараа"}
	svc := NewService(repo)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return now }

	decision, err := svc.Decide(context.Background(), uuid.New(), repo.tx.ID, ActionApprove, "")
	require.NoError(t, err)

	assert.True(t, decision.Success)
	assert.Equal(t, finance.StatusApproved, decision.Status)
	assert.Equal(t, "Сараа", decision.DecidedBy)
	assert.Equal(t, now, decision.DecidedAt)
	assert.Equal(t, "Зарлага амжилттай батлагдлаа", decision.Message)
	assert.Equal(t, finance.StatusApproved, repo.setStatus)
}

func TestDecideRejectWithComment(t *testing.T) {
	repo := &mockRepo{tx: expenseTx(), profileName: "Сараа"}
	svc := NewService(repo)

	decision, err := svc.Decide(context.Background(), uuid.New(), repo.tx.ID, ActionReject, "баримт дутуу")
	require.NoError(t, err)

	assert.Equal(t, finance.StatusRejected, decision.Status)
	assert.Equal(t, "Зарлага татгалзагдлаа. Шалтгаан: баримт дутуу", decision.Message)
}

func TestDecideFallsBackToUserID(t *testing.T) {
	repo := &mockRepo{tx: expenseTx()}
	svc := NewService(repo)
	userID := uuid.New()

	decision, err := svc.Decide(context.Background(), userID, repo.tx.ID, ActionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, userID.String(), decision.DecidedBy)
}

func TestDecideRejectsUnknownAction(t *testing.T) {
	repo := &mockRepo{tx: expenseTx()}
	svc := NewService(repo)

	_, err := svc.Decide(context.Background(), uuid.New(), repo.tx.ID, "defer", "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Zero(t, repo.setCalls)
}

func TestDecideRejectsIncomeTransaction(t *testing.T) {
	repo := &mockRepo{tx: finance.Transaction{ID: uuid.New(), Type: finance.TypeIncome}}
	svc := NewService(repo)

	_, err := svc.Decide(context.Background(), uuid.New(), repo.tx.ID, ActionApprove, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Equal(t, "Зөвхөн зарлагын гүйлгээг батлах боломжтой", shared.UserMessage(err))
}

func TestDecideTransactionNotFound(t *testing.T) {
	repo := &mockRepo{txErr: shared.ErrNotFound}
	svc := NewService(repo)

	_, err := svc.Decide(context.Background(), uuid.New(), uuid.New(), ActionApprove, "")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, "Гүйлгээ олдсонгүй", shared.UserMessage(err))
}

func TestDecidePersistFailure(t *testing.T) {
	repo := &mockRepo{tx: expenseTx(), setErr: errors.New("connection reset")}
	svc := NewService(repo)

	_, err := svc.Decide(context.Background(), uuid.New(), repo.tx.ID, ActionApprove, "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrInvalidInput))
}
