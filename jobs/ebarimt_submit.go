package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/altanbooks/altanbooks/internal/ebarimt"
	"github.com/altanbooks/altanbooks/internal/shared"
)

// EbarimtSubmitJob replays receipt submissions that could not complete
// synchronously, letting Asynq's retry policy absorb tax-office outages.
type EbarimtSubmitJob struct {
	Service *ebarimt.Service
	Logger  *slog.Logger
}

// NewEbarimtSubmitJob wires dependencies for the submission handler.
func NewEbarimtSubmitJob(service *ebarimt.Service, logger *slog.Logger) *EbarimtSubmitJob {
	return &EbarimtSubmitJob{Service: service, Logger: logger}
}

// Handle processes receipt submission tasks.
func (j *EbarimtSubmitJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("ebarimt submit: handler not configured")
	}
	var payload EbarimtSubmitPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	items := make([]ebarimt.Item, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, ebarimt.Item{
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
		})
	}

	logger := j.logger().With(slog.String("transaction_id", payload.TransactionID.String()))
	result, err := j.Service.Send(ctx, payload.UserID, ebarimt.Request{
		TransactionID: payload.TransactionID,
		CustomerTin:   payload.CustomerTin,
		CustomerName:  payload.CustomerName,
		Items:         items,
	})
	if err != nil {
		// Validation and configuration failures will not heal on retry.
		if errors.Is(err, shared.ErrInvalidInput) || errors.Is(err, shared.ErrMissingConfiguration) || errors.Is(err, shared.ErrNotFound) {
			logger.Warn("dropping unretryable submission", slog.Any("error", err))
			return fmt.Errorf("ebarimt submit: %v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Info("submitted receipt", slog.String("bill_id", result.BillID), slog.Bool("test_mode", result.TestMode))
	return nil
}

func (j *EbarimtSubmitJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
