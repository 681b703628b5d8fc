package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altanbooks/altanbooks/internal/ebarimt"
	"github.com/altanbooks/altanbooks/internal/finance"
	"github.com/altanbooks/altanbooks/internal/shared"
)

type stubEbarimtRepo struct {
	settings finance.CompanySettings
	txErr    error
}

func (s *stubEbarimtRepo) CompanySettings(ctx context.Context, userID uuid.UUID) (finance.CompanySettings, error) {
	return s.settings, nil
}

func (s *stubEbarimtRepo) Transaction(ctx context.Context, userID, id uuid.UUID) (finance.Transaction, error) {
	if s.txErr != nil {
		return finance.Transaction{}, s.txErr
	}
	return finance.Transaction{ID: id, Type: finance.TypeIncome}, nil
}

func submitPayload() EbarimtSubmitPayload {
	return EbarimtSubmitPayload{
		UserID:        uuid.New(),
		TransactionID: uuid.New(),
		Items: []EbarimtItemPayload{{
			Name:        "Ном",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(11000),
			TotalAmount: decimal.NewFromInt(11000),
		}},
	}
}

func newSubmitJob(repo ebarimt.Repository) *EbarimtSubmitJob {
	service := ebarimt.NewService(repo, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEbarimtSubmitJob(service, logger)
}

func TestEbarimtSubmitHandleSuccess(t *testing.T) {
	job := newSubmitJob(&stubEbarimtRepo{settings: finance.CompanySettings{EbarimtTestMode: true}})

	task, err := NewEbarimtSubmitTask(submitPayload())
	require.NoError(t, err)

	assert.NoError(t, job.Handle(context.Background(), task))
}

func TestEbarimtSubmitHandleMalformedPayload(t *testing.T) {
	job := newSubmitJob(&stubEbarimtRepo{})

	err := job.Handle(context.Background(), asynq.NewTask(TaskEbarimtSubmit, []byte("{broken")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestEbarimtSubmitHandleUnretryable(t *testing.T) {
	job := newSubmitJob(&stubEbarimtRepo{txErr: shared.ErrNotFound})

	task, err := NewEbarimtSubmitTask(submitPayload())
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry), "missing transaction must not retry")
}
