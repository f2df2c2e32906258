package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-crop/internal/config"
	"github.com/phambaophuc/image-crop/internal/models"
	"github.com/phambaophuc/image-crop/internal/services/processor"
	"go.uber.org/zap"
)

const (
	fieldX      = "x"
	fieldY      = "y"
	fieldWidth  = "width"
	fieldHeight = "height"
)

type Cropper interface {
	Crop(ctx context.Context, data []byte, req models.CropRequest) (*processor.Result, error)
}

type Recorder interface {
	Record(event *models.CropEvent)
}

type StatsReader interface {
	Snapshot(ctx context.Context) (map[string]int64, error)
	HealthCheck(ctx context.Context) string
}

type QueueInspector interface {
	GetQueueStats() (map[string]interface{}, error)
	HealthCheck() string
}

type ImageHandler struct {
	processor Cropper
	recorder  Recorder
	stats     StatsReader
	queue     QueueInspector
	logger    *zap.Logger
	config    *config.Config
}

// NewImageHandler wires the crop endpoint. recorder, stats and queue are
// optional and may be nil.
func NewImageHandler(
	processor Cropper,
	recorder Recorder,
	stats StatsReader,
	queue QueueInspector,
	logger *zap.Logger,
	config *config.Config,
) *ImageHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &ImageHandler{
		processor: processor,
		recorder:  recorder,
		stats:     stats,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// CropImage handles POST /crop: multipart field "image" plus x, y, width and
// height form values. Responds with the cropped region as PNG.
func (h *ImageHandler) CropImage(c *gin.Context) {
	event := h.newEvent(c)

	data, header, err := h.getUploadedFile(c, h.config.Upload.FieldName)
	if err != nil {
		h.respondUploadError(c, event, err)
		return
	}

	if !h.isImagePart(header) {
		h.respondRejected(c, event, models.MsgNotImage)
		return
	}

	req, err := h.parseCropParams(c)
	if err != nil {
		h.respondRejected(c, event, models.MsgInvalidCrop)
		return
	}
	event.Crop = req

	result, err := h.processor.Crop(c.Request.Context(), data, *req)
	if err != nil {
		h.logger.Error("Error cropping image",
			zap.Error(err),
			zap.String("crop", req.String()),
			zap.String("filename", header.Filename),
			zap.String("request_id", event.RequestID))
		h.respondInternalError(c, event, err)
		return
	}

	event.SourceFormat = result.SourceFormat
	event.OutputBytes = int64(len(result.Data))
	h.finish(event, models.OutcomeSuccess, "")

	c.Data(http.StatusOK, models.ContentTypePNG, result.Data)
}

// RejectTooLarge answers uploads refused by the body limit middleware.
func (h *ImageHandler) RejectTooLarge(c *gin.Context) {
	event := h.newEvent(c)
	h.respondError(c, http.StatusRequestEntityTooLarge, models.MsgFileTooLarge)
	h.finish(event, models.OutcomeTooLarge, models.MsgFileTooLarge)
}

// Root is the plain-text liveness probe on GET /.
func (h *ImageHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, models.HealthMessage)
}

// HealthCheck reports redis and rabbitmq status on GET /api/v1/health.
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := h.dependencyStatus(c.Request.Context())
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == models.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == models.StatusHealthy,
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *ImageHandler) GetStats(c *gin.Context) {
	if h.stats == nil {
		c.JSON(http.StatusServiceUnavailable, models.APIResponse{
			Success: false,
			Error:   "statistics are not configured",
		})
		return
	}

	counters, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get crop stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Error:   models.MsgInternalError,
		})
		return
	}

	stats := models.Stats{
		Counters:  counters,
		Timestamp: time.Now(),
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Warn("Failed to get queue stats", zap.Error(err))
		} else {
			stats.Queue = queueStats
		}
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
