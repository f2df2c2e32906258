package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/phambaophuc/image-crop/internal/http/middleware"
	"github.com/phambaophuc/image-crop/internal/models"
	"github.com/phambaophuc/image-crop/pkg/utils"
	"go.uber.org/zap"
)

var errFileTooLarge = errors.New("upload exceeds size limit")

type noopRecorder struct{}

func (noopRecorder) Record(*models.CropEvent) {}

// === REQUEST PARSING ===

func (h *ImageHandler) parseCropParams(c *gin.Context) (*models.CropRequest, error) {
	x, err := h.parseInt(c.PostForm(fieldX), fieldX)
	if err != nil {
		return nil, err
	}

	y, err := h.parseInt(c.PostForm(fieldY), fieldY)
	if err != nil {
		return nil, err
	}

	width, err := h.parseInt(c.PostForm(fieldWidth), fieldWidth)
	if err != nil {
		return nil, err
	}

	height, err := h.parseInt(c.PostForm(fieldHeight), fieldHeight)
	if err != nil {
		return nil, err
	}

	req := &models.CropRequest{X: x, Y: y, Width: width, Height: height}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return nil, models.NewValidationError(models.MsgInvalidCrop, err)
	}

	return req, nil
}

// parseInt reads the leading base-10 integer of value and ignores whatever
// follows it, so "50.7" is 50 and "10px" is 10.
func (h *ImageHandler) parseInt(value, fieldName string) (int, error) {
	digits := leadingInteger(strings.TrimSpace(value))
	if digits == "" {
		return 0, models.NewValidationError(models.MsgInvalidCrop, fmt.Errorf("invalid %s: must start with an integer", fieldName))
	}

	num, err := strconv.Atoi(digits)
	if err != nil {
		return 0, models.NewValidationError(models.MsgInvalidCrop, fmt.Errorf("invalid %s: %w", fieldName, err))
	}

	return num, nil
}

// leadingInteger returns the optional sign and digit run at the start of s,
// or "" when s does not begin with a digit.
func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == start {
		return ""
	}
	return s[:end]
}

// === FILE OPERATIONS ===

// getUploadedFile buffers the first part named paramKey fully in memory.
func (h *ImageHandler) getUploadedFile(c *gin.Context, paramKey string) ([]byte, *multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(h.config.Upload.BodyLimit()); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, errFileTooLarge
		}
		return nil, nil, models.NewValidationError(models.MsgNoFile, err)
	}

	files := c.Request.MultipartForm.File[paramKey]
	if len(files) == 0 {
		return nil, nil, models.NewValidationError(models.MsgNoFile, nil)
	}

	header := files[0]
	if header.Size > h.config.Upload.MaxFileSize {
		return nil, nil, errFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return data, header, nil
}

func (h *ImageHandler) isImagePart(header *multipart.FileHeader) bool {
	return utils.IsImageContentType(header.Header.Get("Content-Type"))
}

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: message})
}

func (h *ImageHandler) respondRejected(c *gin.Context, event *models.CropEvent, message string) {
	h.respondError(c, http.StatusBadRequest, message)
	h.finish(event, models.OutcomeRejected, message)
}

func (h *ImageHandler) respondInternalError(c *gin.Context, event *models.CropEvent, err error) {
	h.respondError(c, http.StatusInternalServerError, models.MsgInternalError)
	h.finish(event, models.OutcomeFailed, err.Error())
}

func (h *ImageHandler) respondUploadError(c *gin.Context, event *models.CropEvent, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.Is(err, errFileTooLarge):
		h.respondError(c, http.StatusRequestEntityTooLarge, models.MsgFileTooLarge)
		h.finish(event, models.OutcomeTooLarge, models.MsgFileTooLarge)
	case errors.As(err, &validationErr):
		h.respondRejected(c, event, validationErr.Message)
	default:
		h.logger.Error("Failed to read upload",
			zap.Error(err),
			zap.String("request_id", event.RequestID))
		h.respondInternalError(c, event, err)
	}
}

// === EVENTS ===

func (h *ImageHandler) newEvent(c *gin.Context) *models.CropEvent {
	return &models.CropEvent{
		ID:        utils.GenerateID(),
		RequestID: middleware.GetRequestID(c),
		CreatedAt: time.Now(),
	}
}

func (h *ImageHandler) finish(event *models.CropEvent, outcome, message string) {
	event.Outcome = outcome
	event.Error = message
	event.Duration = time.Since(event.CreatedAt)
	h.recorder.Record(event)
}

// === UTILITY METHODS ===

func (h *ImageHandler) dependencyStatus(ctx context.Context) map[string]string {
	services := map[string]string{
		"redis":    models.StatusNotConfigured,
		"rabbitmq": models.StatusNotConfigured,
	}

	if h.stats != nil {
		services["redis"] = h.stats.HealthCheck(ctx)
	}
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	}

	return services
}

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != models.StatusHealthy && status != models.StatusNotConfigured {
			return models.StatusUnhealthy
		}
	}
	return models.StatusHealthy
}
