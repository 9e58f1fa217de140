package engine

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/airpiano/config"
	"github.com/jsphweid/airpiano/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMonitorServesLatestSnapshot(t *testing.T) {
	m := NewMonitor("127.0.0.1:0", zap.NewNop())

	m.Publish(model.Snapshot{Scale: "D_Major", ActiveNotes: model.Notes{62, 66, 69}})
	m.Publish(model.Snapshot{Scale: "C_Major", ActiveNotes: model.Notes{60}, FPS: 30})

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rec := httptest.NewRecorder()
	m.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap model.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "C_Major", snap.Scale)
	assert.Equal(t, model.Notes{60}, snap.ActiveNotes)
	assert.Equal(t, 30, snap.FPS)
}

func TestMonitorServesConfig(t *testing.T) {
	m := NewMonitor("127.0.0.1:0", zap.NewNop())

	cfg := config.Default()
	cfg.VelocityMultiplier = 1.3
	m.PublishConfig(cfg)

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rec := httptest.NewRecorder()
	m.srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got config.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, cfg, got)
}

func TestMonitorRejectsWrites(t *testing.T) {
	m := NewMonitor("127.0.0.1:0", zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/state", nil)
	rec := httptest.NewRecorder()
	m.srv.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
