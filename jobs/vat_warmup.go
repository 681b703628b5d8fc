package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/altanbooks/altanbooks/internal/finance"
	financehttp "github.com/altanbooks/altanbooks/internal/finance/http"
	"github.com/altanbooks/altanbooks/internal/shared"
)

const defaultActiveDays = 30

// VatWarmupJob pre-computes the month's VAT report into the report cache for
// users who recorded transactions recently, so the first dashboard hit of the
// day is served warm.
type VatWarmupJob struct {
	Service *finance.Service
	Repo    *finance.PgRepository
	Cache   *financehttp.ReportCache
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewVatWarmupJob wires dependencies for the warmup handler.
func NewVatWarmupJob(service *finance.Service, repo *finance.PgRepository, cache *financehttp.ReportCache, logger *slog.Logger) *VatWarmupJob {
	return &VatWarmupJob{
		Service: service,
		Repo:    repo,
		Cache:   cache,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes VAT warmup tasks.
func (j *VatWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil || j.Repo == nil {
		return errors.New("vat warmup: handler not configured")
	}
	var payload VatWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	now := j.now()
	year, month := payload.Year, payload.Month
	if year == 0 || month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	activeDays := payload.ActiveDays
	if activeDays <= 0 {
		activeDays = defaultActiveDays
	}

	logger := j.logger().With(slog.Int("year", year), slog.Int("month", month))
	logger.Info("starting vat warmup")

	users, err := j.Repo.ActiveUserIDs(ctx, now.AddDate(0, 0, -activeDays), now)
	if err != nil {
		logger.Error("load active users", slog.Any("error", err))
		return err
	}
	if len(users) == 0 {
		logger.Info("no active users to warm")
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, userID := range users {
		userID := userID
		group.Go(func() error {
			return j.warmUser(groupCtx, userID, year, month)
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("warm user", slog.Any("error", err))
		return err
	}

	logger.Info("completed vat warmup", slog.Int("users", len(users)), slog.Duration("duration", time.Since(now)))
	return nil
}

func (j *VatWarmupJob) warmUser(ctx context.Context, userID uuid.UUID, year, month int) error {
	// Bound each user so one slow account cannot stall the whole run.
	userCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	err := financehttp.WarmVat(userCtx, j.Service, j.Cache, userID, year, month)
	if errors.Is(err, shared.ErrMissingConfiguration) {
		// Users who never set up company settings cannot have a VAT report.
		return nil
	}
	return err
}

func (j *VatWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

func (j *VatWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
