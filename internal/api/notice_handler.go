package api

import (
	"net/http"
	"strconv"

	"github.com/mulgyeol/tidecast/internal/repository"
)

const defaultNoticeLimit = 100

// NoticeHandler serves the notice read API.
type NoticeHandler struct {
	notices repository.NoticeRepository
}

// NewNoticeHandler creates a NoticeHandler.
func NewNoticeHandler(notices repository.NoticeRepository) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// Notices handles GET /api/notices: one post by ?id, or a pinned-first list.
func (h *NoticeHandler) Notices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if id := r.URL.Query().Get("id"); id != "" {
		post, err := h.notices.Get(ctx, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": post})
		return
	}

	limit := defaultNoticeLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			badRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	posts, err := h.notices.List(ctx, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": posts})
}
