package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

const maxRequestBody = 32 << 20

type Handler struct {
	svc audit.Service
	now func() time.Time
}

func NewHandler(svc audit.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// GenerateAdHoc renders the events carried in the request body.
func (h *Handler) GenerateAdHoc(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	txs := adapters.ConvertToAuditTransactions(req.Events, h.now())
	cfg := adapters.MapReportConfigApiToDomain(req.Config)

	doc, err := h.svc.Generate(ctx, txs, cfg)
	if err != nil {
		logger.Error().Err(err).Int("events", len(req.Events)).Msg("failed to generate report")
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}
	writePDF(w, doc, logger)
}

// GenerateStored renders the stored events of a profile and an optional date window.
func (h *Handler) GenerateStored(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	profile := r.URL.Query().Get("profile")

	cfg, err := h.svc.ReportConfig(ctx, profile, rng)
	if err != nil {
		if errors.Is(err, config.ErrProfileNotFound) {
			http.Error(w, fmt.Sprintf("profile %q not found", profile), http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("profile", profile).Msg("failed to resolve report profile")
		http.Error(w, "failed to resolve report profile", http.StatusInternalServerError)
		return
	}

	txs, err := h.svc.Transactions(ctx, cfg.DateRange)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load audit events")
		http.Error(w, "failed to load audit events", http.StatusInternalServerError)
		return
	}

	doc, err := h.svc.Generate(ctx, txs, cfg)
	if err != nil {
		logger.Error().Err(err).Str("profile", profile).Msg("failed to generate report")
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}
	writePDF(w, doc, logger)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summary(ctx, rng)
	if err != nil {
		logger.Error().Err(err).Msg("failed to summarize audit events")
		http.Error(w, "failed to summarize audit events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, adapters.MapSummaryDomainToApi(summary), logger)
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	profiles, err := h.svc.Profiles(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list profiles")
		http.Error(w, "failed to list profiles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, profiles, logger)
}

// parseRange reads the from/to query parameters; nil means no window.
func parseRange(r *http.Request) (*domain.DateRange, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from != "" {
		if _, err := time.Parse(time.DateOnly, from); err != nil {
			return nil, errors.New("invalid 'from' date format. Expected format: YYYY-MM-DD")
		}
	}
	if to != "" {
		if _, err := time.Parse(time.DateOnly, to); err != nil {
			return nil, errors.New("invalid 'to' date format. Expected format: YYYY-MM-DD")
		}
	}
	if from == "" && to == "" {
		return nil, nil
	}
	return &domain.DateRange{From: from, To: to}, nil
}

func writePDF(w http.ResponseWriter, doc *report.Document, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	w.Header().Set("X-Report-Id", doc.ReportID)

	if _, err := w.Write(doc.Bytes); err != nil {
		logger.Error().Err(err).Str("report_id", doc.ReportID).Msg("failed to write report")
	}
}

func writeJSON(w http.ResponseWriter, v any, logger *zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
