package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/domain/repositories"
	"github.com/skhandal/doi/pkg/domain/services"
	"github.com/skhandal/doi/pkg/infrastructure/events"
)

// Stage names in execution order, as reported to StageHook.
const (
	StageLoadSales          = "load sales"
	StageLoadInventory      = "load inventory"
	StageAggregateInventory = "aggregate inventory"
	StageMatchProducts      = "match products"
	StageSelectWindow       = "select window"
	StageAggregateSales     = "aggregate sales"
	StageReconcile          = "reconcile"
	StageComputeMetrics     = "compute metrics"
	StageApplyExclusions    = "apply exclusions"
	StageFinalize           = "finalize table"
)

// Stages lists the pipeline's stage names in execution order
func Stages() []string {
	return []string{
		StageLoadSales,
		StageLoadInventory,
		StageAggregateInventory,
		StageMatchProducts,
		StageSelectWindow,
		StageAggregateSales,
		StageReconcile,
		StageComputeMetrics,
		StageApplyExclusions,
		StageFinalize,
	}
}

// Config holds configuration for a reconciliation run
type Config struct {
	// WindowDays is the requested trailing window. It is clamped to
	// [1, distinct order dates] before use; zero means the default.
	WindowDays int
	// Logger receives run milestones. Nil disables logging.
	Logger *log.Logger
	// StageHook, when set, observes each stage by name as it
	// completes. The terminal UI drives its progress bar with it.
	StageHook func(stage string)
	// Events, when set, receives the run's lifecycle journal. The
	// HTTP server keeps one to serve run history.
	Events events.Store
}

// Service runs the reconciliation pipeline end to end. A run is one
// synchronous pass over in-memory data; re-running supersedes nothing
// because nothing is retained between runs.
type Service struct {
	config Config
}

// New creates a pipeline service
func New(config Config) *Service {
	return &Service{config: config}
}

// NewDefault creates a pipeline service with the default window
func NewDefault() *Service {
	return New(Config{WindowDays: services.DefaultWindowDays})
}

// Run executes one full reconciliation pass and returns the frozen
// final table with its run metadata.
func (s *Service) Run(
	ctx context.Context,
	sales repositories.SalesSource,
	inventory repositories.InventorySource,
) (*dto.Result, error) {
	runID := uuid.New()
	started := time.Now()
	s.record(runID, events.RunStartedEvent, events.RunStarted{WindowDays: s.config.WindowDays})

	result, err := s.run(ctx, runID, sales, inventory)
	if err != nil {
		s.record(runID, events.RunFailedEvent, events.RunFailed{Error: err.Error()})
		return nil, err
	}

	s.record(runID, events.RunCompletedEvent, events.RunCompleted{
		Rows:           len(result.Rows),
		UnmatchedItems: result.UnmatchedItems,
		ExcludedRows:   result.ExcludedRows,
		WindowDays:     result.WindowDays,
		ElapsedMS:      time.Since(started).Milliseconds(),
	})
	return result, nil
}

func (s *Service) run(
	ctx context.Context,
	runID uuid.UUID,
	sales repositories.SalesSource,
	inventory repositories.InventorySource,
) (*dto.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Pass 1: load both sources.
	salesRecords, err := sales.GetSalesRecords()
	if err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}
	s.stage(runID, StageLoadSales)

	inventoryRecords, err := inventory.GetInventoryRecords()
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	s.stage(runID, StageLoadInventory)

	s.logf("run %s: loaded %d sales lines, %d inventory lines", runID, len(salesRecords), len(inventoryRecords))

	// Pass 2: aggregate inventory and resolve sales product names
	// through the item-product lookup it yields.
	inventoryAgg := services.AggregateInventory(inventoryRecords)
	s.stage(runID, StageAggregateInventory)

	lookup := services.ItemProductLookup(inventoryAgg)
	salesRecords, unmatched := services.BackfillProductNames(salesRecords, lookup)
	if unmatched > 0 {
		s.logf("run %s: %d sales lines reference item codes absent from inventory; their volume is dropped", runID, unmatched)
	}
	s.stage(runID, StageMatchProducts)

	// Pass 3: trailing window over distinct order dates, then sales
	// aggregation at (city, product, item) granularity.
	distinct := len(services.DistinctOrderDates(salesRecords))
	windowDays := services.ClampWindow(s.config.WindowDays, distinct)
	windowed, windowDates := services.SelectWindow(salesRecords, windowDays)
	s.stage(runID, StageSelectWindow)

	salesAgg := services.AggregateSales(windowed)
	s.stage(runID, StageAggregateSales)

	// Pass 4: reconcile, derive metrics, apply the denylist, freeze.
	rows := services.Reconcile(inventoryAgg, salesAgg)
	s.stage(runID, StageReconcile)

	services.ApplyMetrics(rows, windowDays)
	s.stage(runID, StageComputeMetrics)

	rows, excluded := services.ApplyExclusions(rows)
	s.stage(runID, StageApplyExclusions)

	services.FinalizeTable(rows)
	s.stage(runID, StageFinalize)

	s.logf("run %s: %d rows reconciled over a %d-day window, %d rows excluded", runID, len(rows), windowDays, excluded)

	return &dto.Result{
		RunID:          runID,
		WindowDays:     windowDays,
		WindowDates:    windowDates,
		Rows:           rows,
		SalesRecords:   len(salesRecords),
		InventoryLines: len(inventoryRecords),
		UnmatchedItems: unmatched,
		ExcludedRows:   excluded,
	}, nil
}

func (s *Service) stage(runID uuid.UUID, name string) {
	if s.config.StageHook != nil {
		s.config.StageHook(name)
	}
	s.record(runID, events.StageCompletedEvent, events.StageCompleted{Stage: name})
}

func (s *Service) record(runID uuid.UUID, eventType string, data any) {
	if s.config.Events == nil {
		return
	}
	_ = s.config.Events.Append(runID.String(), eventType, data)
}

func (s *Service) logf(format string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Printf(format, args...)
	}
}
