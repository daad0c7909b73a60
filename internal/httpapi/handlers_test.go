package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/onedm/sdf-matter-translator/internal/config"
	"github.com/onedm/sdf-matter-translator/internal/metrics"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/pkg/logger"
	mocks_metrics "github.com/onedm/sdf-matter-translator/test/mocks/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0, Mode: "test"}
	return NewServer(cfg, logger.NewNoop(), metrics.NewCollector("noop", logger.NewNoop()), nil, false)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSdfToMatter_RejectsMissingModel(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest(http.MethodPost, "/v1/sdf-to-matter", bytes.NewReader(body))
	req.Header.Set("Content-Type", gin.MIMEJSON)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSdfToMatter_ConvertsSimpleObject(t *testing.T) {
	s := newTestServer(t)

	yes := true
	req := sdfToMatterRequest{
		Model: &sdf.Model{
			Objects: map[string]*sdf.Object{
				"OnOff": {
					Properties: map[string]*sdf.Property{
						"OnOff": {
							DataQuality: sdf.DataQuality{Type: "boolean"},
							Readable:    &yes,
							Writable:    &yes,
						},
					},
				},
			},
		},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/v1/sdf-to-matter", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", gin.MIMEJSON)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sdfToMatterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Clusters, 1)
	assert.Equal(t, "OnOff", resp.Clusters[0].Name)
}

func TestSdfToMatter_RecordsConversionMetric(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	collector := mocks_metrics.NewMockCollector(ctrl)
	collector.EXPECT().RecordConversion("sdf-to-matter", true, gomock.Any())

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0, Mode: "test"}
	s := NewServer(cfg, logger.NewNoop(), collector, nil, false)

	yes := true
	req := sdfToMatterRequest{
		Model: &sdf.Model{
			Objects: map[string]*sdf.Object{
				"OnOff": {
					Properties: map[string]*sdf.Property{
						"OnOff": {
							DataQuality: sdf.DataQuality{Type: "boolean"},
							Readable:    &yes,
							Writable:    &yes,
						},
					},
				},
			},
		},
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/v1/sdf-to-matter", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", gin.MIMEJSON)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httpReq)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMatterToSdf_RejectsMissingClusters(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest(http.MethodPost, "/v1/matter-to-sdf", bytes.NewReader(body))
	req.Header.Set("Content-Type", gin.MIMEJSON)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
