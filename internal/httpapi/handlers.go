package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onedm/sdf-matter-translator/internal/convert/mattertosdf"
	"github.com/onedm/sdf-matter-translator/internal/convert/sdftomatter"
	"github.com/onedm/sdf-matter-translator/internal/metrics"
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/model/sdf"
	"github.com/onedm/sdf-matter-translator/pkg/logger"
)

type handlers struct {
	logger  logger.Logger
	metrics metrics.Collector
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// sdfToMatterRequest is the POST /v1/sdf-to-matter body: an SDF model plus
// its side-car mapping, both as raw JSON.
type sdfToMatterRequest struct {
	Model   *sdf.Model   `json:"model" binding:"required"`
	Mapping *sdf.Mapping `json:"mapping"`
}

type sdfToMatterResponse struct {
	Device   *matter.Device   `json:"device,omitempty"`
	Clusters []matter.Cluster `json:"clusters"`
}

func (h *handlers) sdfToMatter(c *gin.Context) {
	var req sdfToMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "code": "INPUT_SHAPE", "message": err.Error()})
		return
	}

	start := time.Now()
	pipeline := sdftomatter.New(req.Mapping)
	device, clusters, err := pipeline.Convert(req.Model)
	h.metrics.RecordConversion("sdf-to-matter", err == nil, time.Since(start))
	if err != nil {
		h.logger.Error("sdf-to-matter conversion failed", logger.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "code": "TRANSLATION_ERROR", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sdfToMatterResponse{Device: device, Clusters: clusters})
}

// matterToSdfRequest is the POST /v1/matter-to-sdf body: an optional device
// type plus the cluster library it references.
type matterToSdfRequest struct {
	Device   *matter.Device   `json:"device,omitempty"`
	Clusters []matter.Cluster `json:"clusters" binding:"required"`
}

type matterToSdfResponse struct {
	Model   *sdf.Model   `json:"model"`
	Mapping *sdf.Mapping `json:"mapping"`
}

func (h *handlers) matterToSdf(c *gin.Context) {
	var req matterToSdfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "code": "INPUT_SHAPE", "message": err.Error()})
		return
	}

	start := time.Now()
	pipeline := mattertosdf.New()
	model, mapping, err := pipeline.Convert(req.Device, req.Clusters)
	h.metrics.RecordConversion("matter-to-sdf", err == nil, time.Since(start))
	if err != nil {
		h.logger.Error("matter-to-sdf conversion failed", logger.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "code": "TRANSLATION_ERROR", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, matterToSdfResponse{Model: model, Mapping: mapping})
}
