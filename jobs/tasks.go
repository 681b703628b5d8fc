package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportVatWarmup pre-computes VAT reports into the report cache.
	TaskReportVatWarmup = "report:vat_warmup"
	// TaskEbarimtSubmit retries a receipt submission asynchronously.
	TaskEbarimtSubmit = "ebarimt:submit"
)

// VatWarmupPayload selects the reporting month to warm. A zero Year or Month
// means the current month at execution time. ActiveDays bounds how far back
// to look for recently active users.
type VatWarmupPayload struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	ActiveDays int `json:"active_days"`
}

// NewVatWarmupTask constructs a VAT warmup task.
func NewVatWarmupTask(payload VatWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportVatWarmup, data), nil
}

// EbarimtItemPayload is one receipt line carried through the queue.
type EbarimtItemPayload struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// EbarimtSubmitPayload describes a receipt submission to replay.
type EbarimtSubmitPayload struct {
	UserID        uuid.UUID            `json:"user_id"`
	TransactionID uuid.UUID            `json:"transaction_id"`
	CustomerTin   string               `json:"customer_tin"`
	CustomerName  string               `json:"customer_name"`
	Items         []EbarimtItemPayload `json:"items"`
}

// NewEbarimtSubmitTask constructs a receipt submission task.
func NewEbarimtSubmitTask(payload EbarimtSubmitPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEbarimtSubmit, data), nil
}
