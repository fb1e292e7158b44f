package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/aegis-risk/internal/ingest"
	"github.com/wonny/aegis-risk/internal/report"
	"github.com/wonny/aegis-risk/internal/risk"
	"github.com/wonny/aegis-risk/pkg/config"
	"github.com/wonny/aegis-risk/pkg/logger"
	"github.com/wonny/aegis-risk/pkg/metrics"
)

// Form field names the dashboard posts
const (
	FileField  = "file_input_name"
	LabelField = "investment_type"
)

// Error messages returned to the dashboard
const (
	msgNotFound   = "That asset doesn't exist!"
	msgDegenerate = "Not enough variation in returns to compute risk"
)

// Assets is the dashboard's selectable asset list
var Assets = []string{"EQUITY", "CRYPTO", "BOND", "COMMODITY", "FOREX"}

// AnalysisHandler handles upload-and-analyze requests
// ⭐ SSOT: 요청마다 새 Engine 생성 (실행 간 상태 공유 없음)
type AnalysisHandler struct {
	settings       config.RiskConfig
	maxUploadBytes int64
	reader         *ingest.Reader
	metrics        *metrics.Recorder
	logger         *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
// rec may be nil when metrics are disabled
func NewAnalysisHandler(cfg *config.Config, rec *metrics.Recorder, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		settings:       cfg.Risk,
		maxUploadBytes: cfg.Server.MaxUploadBytes,
		reader:         ingest.NewReader(log),
		metrics:        rec,
		logger:         log,
	}
}

// ListAssets returns the selectable asset types
// GET /
func (h *AnalysisHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assets": Assets,
	})
}

// Result analyzes an uploaded returns file for one asset type
// POST /result (multipart: file_input_name, investment_type)
func (h *AnalysisHandler) Result(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.WithError(err).Warn("Invalid upload")
		respondError(w, http.StatusBadRequest, "Invalid multipart upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	label := strings.TrimSpace(r.FormValue(LabelField))
	if label == "" {
		respondError(w, http.StatusBadRequest, LabelField+" is required")
		return
	}

	file, _, err := r.FormFile(FileField)
	if err != nil {
		respondError(w, http.StatusBadRequest, FileField+" is required")
		return
	}
	defer file.Close()

	engine, err := risk.NewEngine(risk.ConfigFromSettings(h.settings))
	if err != nil {
		h.logger.WithError(err).Error("Failed to create risk engine")
		h.recordOutcome(metrics.OutcomeError)
		respondError(w, http.StatusInternalServerError, "Risk engine misconfigured")
		return
	}

	start := time.Now()
	stats, err := h.reader.Read(r.Context(), file, engine)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to read returns file")
		h.recordOutcome(metrics.OutcomeError)
		respondError(w, http.StatusBadRequest, "Failed to read returns file")
		return
	}
	if h.metrics != nil {
		h.metrics.RecordIngestion(stats.Accepted, stats.Skipped)
	}

	profile, err := engine.Analyze(label)
	if h.metrics != nil {
		h.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	}

	log := h.logger.WithFields(map[string]interface{}{
		"label":    label,
		"lines":    stats.Lines,
		"accepted": stats.Accepted,
		"skipped":  stats.Skipped,
	})

	switch {
	case errors.Is(err, risk.ErrLabelNotFound), errors.Is(err, risk.ErrInvalidLabel):
		log.Info("Asset not found in upload")
		h.recordOutcome(metrics.OutcomeNotFound)
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	case errors.Is(err, risk.ErrDegenerateData):
		log.WithError(err).Info("Degenerate returns")
		h.recordOutcome(metrics.OutcomeDegenerate)
		respondError(w, http.StatusUnprocessableEntity, msgDegenerate)
		return
	case err != nil:
		log.WithError(err).Error("Analysis failed")
		h.recordOutcome(metrics.OutcomeError)
		respondError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	h.recordOutcome(metrics.OutcomeSuccess)
	if h.metrics != nil {
		h.metrics.RecordVaR(profile.Label, profile.MonteCarloVaR, profile.AnalyticVaR)
	}

	log.WithField("run_id", profile.RunID).Info("Analysis complete")
	respondJSON(w, http.StatusOK, report.NewResultView(profile))
}

func (h *AnalysisHandler) recordOutcome(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordAnalysis(outcome)
	}
}
