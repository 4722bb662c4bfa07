package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/mulgyeol/tidecast/internal/collect"
	"github.com/mulgyeol/tidecast/internal/domain/entity"
)

func TestStatusForRun(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusForRun(entity.CollectionStatusSuccess))
	assert.Equal(t, http.StatusMultiStatus, statusForRun(entity.CollectionStatusPartial))
	assert.Equal(t, http.StatusInternalServerError, statusForRun(entity.CollectionStatusError))
	assert.Equal(t, http.StatusInternalServerError, statusForRun("anything-else"))
}

func TestCollectUnknownJob(t *testing.T) {
	h := &CollectHandler{registry: collect.Registry{}}

	req := httptest.NewRequest(http.MethodPost, "/api/collect/no-such-job", nil)
	req = mux.SetURLVars(req, map[string]string{"job": "no-such-job"})

	rec := httptest.NewRecorder()
	h.Collect(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown collection job")
}
