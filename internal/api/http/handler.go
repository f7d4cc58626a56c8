package apiHttp

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"go.uber.org/zap"

	internalV1 "github.com/membergate/backend/internal/api/http/internal/v1"
	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/service"
	"github.com/membergate/backend/internal/session"
	"github.com/membergate/backend/pkg/auth"
	"github.com/membergate/backend/pkg/limiter"
	"github.com/membergate/backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	sessions     session.Store
	logger       *zap.Logger
	config       *config.Config
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	sessions session.Store,
	logger *zap.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		sessions:     sessions,
		logger:       logger,
		config:       cfg,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(h.logger, time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.HttpServer.CORSOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(h.logger, true))

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.sessions, h.logger, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
