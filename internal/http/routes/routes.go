package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-crop/internal/config"
	"github.com/phambaophuc/image-crop/internal/http/handlers"
	"github.com/phambaophuc/image-crop/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
	config       *config.Config
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
	config *config.Config,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
		config:       config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = r.config.Upload.BodyLimit()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.config.CORS.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	uploadLimit := middleware.BodyLimit(r.config.Upload.BodyLimit(), r.imageHandler.RejectTooLarge)

	router.GET("/", r.imageHandler.Root)
	router.POST("/crop", uploadLimit, r.imageHandler.CropImage)

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.imageHandler.HealthCheck)
		v1.GET("/stats", r.imageHandler.GetStats)

		images := v1.Group("/images")
		{
			images.POST("/crop", uploadLimit, r.imageHandler.CropImage)
		}
	}

	return router
}
