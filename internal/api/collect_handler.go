package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mulgyeol/tidecast/internal/cleanup"
	"github.com/mulgyeol/tidecast/internal/collect"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
	"github.com/mulgyeol/tidecast/pkg/support/util/logger"
)

// tideImportTimeout bounds the background import of a year's worth of rows.
const tideImportTimeout = 10 * time.Minute

// CollectHandler serves the admin trigger endpoints: collection runs, tide
// imports and the retention sweep.
type CollectHandler struct {
	registry collect.Registry
	runner   *collect.Runner
	importer *collect.TideImporter
	sweeper  *cleanup.Sweeper
}

// NewCollectHandler creates a CollectHandler.
func NewCollectHandler(registry collect.Registry, runner *collect.Runner, importer *collect.TideImporter, sweeper *cleanup.Sweeper) *CollectHandler {
	return &CollectHandler{registry: registry, runner: runner, importer: importer, sweeper: sweeper}
}

type collectRequest struct {
	Locations []string `json:"locations"`
}

// Collect handles POST /api/collect/{job}. The response status mirrors the
// run status: 200 success, 207 partial, 500 error.
func (h *CollectHandler) Collect(w http.ResponseWriter, r *http.Request) {
	job := mux.Vars(r)["job"]
	collector, ok := h.registry[job]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: "unknown collection job: " + job})
		return
	}

	var req collectRequest
	// The body is optional; a malformed one is still a client error.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	summary := h.runner.Run(r.Context(), collector, collect.Options{LocationCodes: req.Locations})
	writeJSON(w, statusForRun(summary.Status), summary)
}

func statusForRun(status string) int {
	switch status {
	case entity.CollectionStatusSuccess:
		return http.StatusOK
	case entity.CollectionStatusPartial:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}

type tideImportRequest struct {
	Rows []entity.TideData `json:"rows"`
}

// TideImport handles POST /api/tide-import: validate synchronously, then run
// the bulk upsert in the background and answer 202.
func (h *CollectHandler) TideImport(w http.ResponseWriter, r *http.Request) {
	var req tideImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if err := h.importer.Validate(req.Rows); err != nil {
		writeError(w, err)
		return
	}

	go func(rows []entity.TideData) {
		ctx, cancel := context.WithTimeout(context.Background(), tideImportTimeout)
		defer cancel()
		if _, err := h.importer.Import(ctx, rows); err != nil {
			logger.Errorf("background tide import failed: %v", err)
		}
	}(req.Rows)

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"accepted": true,
		"rows":     len(req.Rows),
	})
}

type cleanupRequest struct {
	RetentionDays int `json:"retention_days"`
}

// Cleanup handles POST /api/cleanup: runs the retention sweep and returns its
// summary. Only a sweep with zero successful tables is a server error.
func (h *CollectHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	var req cleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	summary, err := h.sweeper.Run(r.Context(), req.RetentionDays)
	if err != nil && summary.SuccessCount == 0 {
		logger.Errorf("retention sweep failed entirely: %v", err)
		writeJSON(w, http.StatusInternalServerError, summary)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
