package v1

import (
	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/service"
	"github.com/membergate/backend/internal/session"
	"github.com/membergate/backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	sessions     session.Store
	logger       *zap.Logger
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	sessions session.Store,
	logger *zap.Logger,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		sessions:     sessions,
		logger:       logger,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initAdminRoutes(v1)
}
