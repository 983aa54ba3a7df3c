package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skhandal/doi/pkg/application/dto"
	"github.com/skhandal/doi/pkg/application/services/pipeline"
	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
	"github.com/skhandal/doi/pkg/domain/repositories"
	"github.com/skhandal/doi/pkg/infrastructure/events"
	"github.com/skhandal/doi/pkg/infrastructure/export"
	"github.com/skhandal/doi/pkg/infrastructure/metrics"
)

// Config wires the handler's dependencies
type Config struct {
	Sales      repositories.SalesSource
	Inventory  repositories.InventorySource
	WindowDays int
	Logger     *log.Logger
	Metrics    *metrics.Collector
	Events     events.Store
}

// Handler provides HTTP access to the DOI table. Every request runs
// the pipeline against the configured sources, so a replaced CSV file
// is picked up without a restart.
type Handler struct {
	config Config
	mux    *http.ServeMux
}

// NewHandler constructs the DOI HTTP handler
func NewHandler(config Config) *Handler {
	h := &Handler{config: config}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/doi", h.handleDOI)
	mux.HandleFunc("/api/v1/doi/export", h.handleExport)
	mux.HandleFunc("/api/v1/options", h.handleOptions)
	mux.HandleFunc("/healthz", h.handleHealth)
	if config.Events != nil {
		mux.HandleFunc("/api/v1/runs", h.handleRuns)
	}
	if config.Metrics != nil {
		mux.Handle("/metrics", config.Metrics.Handler())
	}
	h.mux = mux

	return h
}

// Verify interface compliance
var _ http.Handler = (*Handler)(nil)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type tableResponse struct {
	RunID       string         `json:"run_id"`
	WindowDays  int            `json:"window_days"`
	WindowDates []string       `json:"window_dates"`
	View        string         `json:"view"`
	GroupKey    string         `json:"group_key,omitempty"`
	Message     string         `json:"message,omitempty"`
	Rows        []dto.Row      `json:"rows,omitempty"`
	Groups      []dto.GroupRow `json:"groups,omitempty"`
}

// handleDOI returns the DOI table, optionally sliced by cities and
// products. Without any selection the full detail table is returned.
func (h *Handler) handleDOI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	days, err := h.windowDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.run(r.Context(), days)
	if err != nil {
		h.logf("doi request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := tableResponse{
		RunID:       result.RunID.String(),
		WindowDays:  result.WindowDays,
		WindowDates: formatDates(result.WindowDates),
	}

	cities := queryList(r, "cities")
	products := queryList(r, "products")

	if len(cities) == 0 && len(products) == 0 {
		resp.View = slicer.ShapeDetail.String()
		resp.Rows = dto.RowsFrom(result.Rows)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	engine := slicer.New(result.Rows, result.WindowDays)
	view := engine.Slice(entities.Selection{Cities: cities, Products: products})

	resp.View = view.Shape.String()
	switch view.Shape {
	case slicer.ShapePrompt:
		resp.Message = view.Prompt
	case slicer.ShapeByCity, slicer.ShapeByProduct:
		resp.GroupKey = view.Shape.GroupKeyColumn()
		resp.Groups = dto.GroupRowsFrom(view.Groups)
	case slicer.ShapeDetail:
		resp.Rows = dto.RowsFrom(view.Rows)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleExport streams the full table as a CSV or XLSX download
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}

	days, err := h.windowDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.run(r.Context(), days)
	if err != nil {
		h.logf("export request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="doi_report.csv"`)
		if err := export.WriteCSVTo(result, w); err != nil {
			h.logf("csv export failed: %v", err)
		}
	case "xlsx":
		w.Header().Set(
			"Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.WorkbookName))
		if err := export.WriteXLSXTo(result, w); err != nil {
			h.logf("xlsx export failed: %v", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
	}
}

type optionsResponse struct {
	Cities   []string `json:"cities"`
	Products []string `json:"products"`
}

// handleOptions returns the selectable cities and products, each
// narrowed by the other dimension's current selection
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	days, err := h.windowDays(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.run(r.Context(), days)
	if err != nil {
		h.logf("options request failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sel := entities.Selection{
		Cities:   queryList(r, "cities"),
		Products: queryList(r, "products"),
	}

	engine := slicer.New(result.Rows, result.WindowDays)
	writeJSON(w, http.StatusOK, optionsResponse{
		Cities:   engine.AvailableCities(sel),
		Products: engine.AvailableProducts(sel),
	})
}

// handleRuns lists recorded runs, or one run's full event stream when
// an id is given
func (h *Handler) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		stream, err := h.config.Events.Run(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(stream) == 0 {
			writeError(w, http.StatusNotFound, "unknown run id")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"run_id": id, "events": stream})
		return
	}

	summaries, err := h.config.Events.Summaries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": summaries})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// run executes the pipeline and records metrics for the attempt
func (h *Handler) run(ctx context.Context, days int) (*dto.Result, error) {
	service := pipeline.New(pipeline.Config{
		WindowDays: days,
		Logger:     h.config.Logger,
		Events:     h.config.Events,
	})

	start := time.Now()
	result, err := service.Run(ctx, h.config.Sales, h.config.Inventory)
	if err != nil {
		if h.config.Metrics != nil {
			h.config.Metrics.ObserveError()
		}
		return nil, err
	}

	if h.config.Metrics != nil {
		h.config.Metrics.ObserveRun(
			len(result.Rows),
			result.UnmatchedItems,
			result.ExcludedRows,
			result.WindowDays,
			time.Since(start),
		)
	}

	return result, nil
}

// windowDays reads the days query parameter, falling back to the
// configured default
func (h *Handler) windowDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return h.config.WindowDays, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, fmt.Errorf("invalid days parameter: %s", raw)
	}
	return days, nil
}

func (h *Handler) logf(format string, args ...any) {
	if h.config.Logger != nil {
		h.config.Logger.Printf(format, args...)
	}
}

// queryList collects a repeatable, comma separated query parameter
func queryList(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
