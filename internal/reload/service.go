// Package reload reconciles the collector's facility list against the record
// store. A pass creates, updates, flags, retires and revives records and
// reports what it did, including partial progress when it aborts.
package reload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"facilities/internal/facility/models"
	"facilities/internal/reload/metrics"
	dErrors "facilities/pkg/domain-errors"
	"facilities/pkg/platform/sentinel"
	"facilities/pkg/requestcontext"
)

const (
	// DefaultGracePeriod is how long a facility may stay unreported before it
	// is moved to the graveyard.
	DefaultGracePeriod = 24 * time.Hour
	DefaultWorkers     = 8

	triggerPull      = "pull"
	triggerPush      = "push"
	triggerScheduled = "scheduled"
)

// Service runs reload passes. At most one pass runs at a time per Service.
type Service struct {
	collector   Collector
	facilities  FacilityStore
	graveyard   GraveyardStore
	tx          StoreTx
	reports     ReportStore
	publisher   ChangePublisher
	codec       models.Codec
	metrics     *metrics.Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
	clock       func() time.Time
	gracePeriod time.Duration
	workers     int

	running atomic.Bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithStoreTx sets the transaction boundary used for graveyard moves and
// revivals. Defaults to running fn directly.
func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func WithReportStore(store ReportStore) Option {
	return func(s *Service) {
		s.reports = store
	}
}

func WithChangePublisher(publisher ChangePublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithCodec sets the serializer for stored payloads. Defaults to JSON.
func WithCodec(codec models.Codec) Option {
	return func(s *Service) {
		if codec != nil {
			s.codec = codec
		}
	}
}

// WithClock overrides the pass clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithGracePeriod sets how long a facility may stay unreported before it is
// retired. Non-positive values keep the default.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.gracePeriod = d
		}
	}
}

// WithWorkers bounds the number of concurrent per-facility operations.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New constructs a Service. The collector and both stores are required.
func New(collector Collector, facilities FacilityStore, graveyard GraveyardStore, opts ...Option) (*Service, error) {
	if collector == nil {
		return nil, errors.New("collector is required")
	}
	if facilities == nil {
		return nil, errors.New("facility store is required")
	}
	if graveyard == nil {
		return nil, errors.New("graveyard store is required")
	}
	s := &Service{
		collector:   collector,
		facilities:  facilities,
		graveyard:   graveyard,
		tx:          directTx{},
		codec:       models.JSONCodec{},
		logger:      slog.Default(),
		tracer:      otel.Tracer("facilities/internal/reload"),
		clock:       time.Now,
		gracePeriod: DefaultGracePeriod,
		workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reload collects the current facility list and reconciles it. On a store
// failure the partial report is returned together with the error.
func (s *Service) Reload(ctx context.Context) (*Report, error) {
	return s.run(ctx, triggerPull, s.collector.CollectFacilities)
}

// ReloadFacilities reconciles an explicit facility list, bypassing the collector.
func (s *Service) ReloadFacilities(ctx context.Context, facilities []models.Facility) (*Report, error) {
	return s.run(ctx, triggerPush, func(context.Context) ([]models.Facility, error) {
		return facilities, nil
	})
}

// LastReport returns the report of the most recent pass.
func (s *Service) LastReport(ctx context.Context) (*Report, error) {
	if s.reports == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "no reload report available")
	}
	report, err := s.reports.Last(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no reload report available")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load last reload report")
	}
	return report, nil
}

// run is the pass driver shared by every trigger.
func (s *Service) run(ctx context.Context, trigger string, collect func(context.Context) ([]models.Facility, error)) (*Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.IncrementPass(trigger, "rejected")
		return nil, dErrors.New(dErrors.CodeConflict, "a reload is already running")
	}
	defer s.running.Store(false)

	reloadID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "reload.pass", trace.WithAttributes(
		attribute.String("reload.id", reloadID),
		attribute.String("reload.trigger", trigger),
	))
	defer span.End()

	logger := s.logger.With("reload_id", reloadID, "trigger", trigger)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		logger = logger.With("request_id", requestID)
	}

	start := s.clock()
	facilities, err := s.collect(ctx, collect)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "collection failed")
		s.metrics.IncrementPass(trigger, "collector_failed")
		logger.ErrorContext(ctx, "facility collection failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to collect facilities")
	}
	s.metrics.SetCollected(len(facilities))

	// Once collected, the pass completes or aborts on a store error; a caller
	// going away does not stop it halfway.
	ctx = context.WithoutCancel(ctx)

	result := newResult(reloadID, len(facilities))
	result.markStart(start)
	passErr := s.pass(ctx, facilities, result)
	report := result.Report()

	span.SetAttributes(
		attribute.Int("reload.total", report.TotalFacilities),
		attribute.Int("reload.problems", len(report.Problems)),
	)
	s.observe(trigger, report, passErr)
	s.saveReport(ctx, logger, report)
	s.publishChanges(ctx, logger, report)

	if passErr != nil {
		span.RecordError(passErr)
		span.SetStatus(codes.Error, "pass aborted")
		logger.ErrorContext(ctx, "reload pass aborted",
			"error", passErr,
			"problems", len(report.Problems),
			"duration_ms", report.Timing.TotalDurationMillis,
		)
		return report, dErrors.Wrap(passErr, dErrors.CodeInternal, "reload pass aborted")
	}

	logger.InfoContext(ctx, "reload pass complete",
		"total", report.TotalFacilities,
		"created", len(report.FacilitiesCreated),
		"updated", len(report.FacilitiesUpdated),
		"missing", len(report.FacilitiesMissing),
		"removed", len(report.FacilitiesRemoved),
		"revived", len(report.FacilitiesRevived),
		"problems", len(report.Problems),
		"duration_ms", report.Timing.TotalDurationMillis,
	)
	return report, nil
}

func (s *Service) collect(ctx context.Context, collect func(context.Context) ([]models.Facility, error)) ([]models.Facility, error) {
	ctx, span := s.tracer.Start(ctx, "reload.collect")
	defer span.End()

	facilities, err := collect(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("reload.collected", len(facilities)))
	return facilities, nil
}

// pass applies the collected facilities, then transitions every stored
// facility that was not reported. The collection checkpoint taken on entry is
// the clock for the whole pass.
func (s *Service) pass(ctx context.Context, facilities []models.Facility, result *Result) error {
	now := s.clock()
	result.markCollectionComplete(now)
	defer func() {
		result.markComplete(s.clock())
	}()

	reported, err := s.applyAll(ctx, facilities, now, result)
	if err != nil {
		return err
	}
	return s.transitionAllMissing(ctx, reported, now, result)
}

func (s *Service) observe(trigger string, report *Report, passErr error) {
	status := "success"
	if passErr != nil {
		status = "failed"
	} else {
		s.metrics.MarkSuccess(report.Timing.Complete)
	}
	s.metrics.IncrementPass(trigger, status)
	s.metrics.ObservePassDuration(time.Duration(report.Timing.TotalDurationMillis) * time.Millisecond)
	s.metrics.AddTransitions(string(outcomeCreated), len(report.FacilitiesCreated))
	s.metrics.AddTransitions(string(outcomeUpdated), len(report.FacilitiesUpdated))
	s.metrics.AddTransitions(string(outcomeMissing), len(report.FacilitiesMissing))
	s.metrics.AddTransitions(string(outcomeRemoved), len(report.FacilitiesRemoved))
	s.metrics.AddTransitions(string(outcomeRevived), len(report.FacilitiesRevived))
	s.metrics.AddProblems(len(report.Problems))
}

// saveReport keeps the report for later retrieval. Failures are logged only.
func (s *Service) saveReport(ctx context.Context, logger *slog.Logger, report *Report) {
	if s.reports == nil {
		return
	}
	if err := s.reports.SaveLast(ctx, report); err != nil {
		logger.WarnContext(ctx, "failed to store reload report", "error", err)
	}
}

// directTx runs fn without a transaction. Used when no StoreTx is configured.
type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// storeFailure wraps a store error with the facility it concerns.
func storeFailure(verb string, facilityID fmt.Stringer, err error) error {
	return fmt.Errorf("%s %s: %w", verb, facilityID, err)
}
