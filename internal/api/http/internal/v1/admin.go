package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/membergate/backend/internal/service"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")

	admin.POST("/create", h.adminCreate)
	admin.POST("/login", h.adminLogin)
	admin.POST("/forgot-password", h.adminForgotPassword)
	admin.POST("/reset-password", h.adminResetPassword)

	admin.PUT("/change-password", h.identityMiddleware, h.adminChangePassword)
	admin.GET("/pending-users", h.identityMiddleware, h.pendingUsers)
	admin.POST("/decision", h.identityMiddleware, h.decision)
	admin.POST("/approve/:user_id", h.identityMiddleware, h.approveUser)
	admin.POST("/decline/:user_id", h.identityMiddleware, h.declineUser)
}

type createAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	AdminID  string `json:"admin_id" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
	Mobile   string `json:"mobile" binding:"required,mobile"`
}

func (h *Handler) adminCreate(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	_, err := h.services.Admins.Create(c.Request.Context(), service.CreateAdminInput{
		AdminID:  req.AdminID,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Admin created successfully", nil)
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Admins.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Admin logged in successfully", gin.H{
		"email":        req.Email,
		"access_token": tokens.AccessToken,
		"expires_in":   tokens.AccessTTL.Seconds(),
	})
}

type adminChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *Handler) adminChangePassword(c *gin.Context) {
	var req adminChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	identity := c.MustGet(identityCtx).(uuid.UUID)

	err := h.services.Admins.ChangePassword(c.Request.Context(), identity, service.AdminChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) adminForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Admins.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP sent successfully", nil)
}

func (h *Handler) adminResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Admins.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		OTP:             req.OTP,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password reset successful", nil)
}

func (h *Handler) pendingUsers(c *gin.Context) {
	users, err := h.services.Approval.PendingUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Pending users fetched", users)
}

type decisionRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Action string `json:"action" binding:"required,oneof=Accepted Declined"`
}

func (h *Handler) decision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user_id format", nil)
		return
	}

	h.decide(c, userID, service.Action(req.Action))
}

func (h *Handler) approveUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user_id format", nil)
		return
	}

	h.decide(c, userID, service.ActionAccept)
}

func (h *Handler) declineUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user_id format", nil)
		return
	}

	h.decide(c, userID, service.ActionDecline)
}

func (h *Handler) decide(c *gin.Context, userID uuid.UUID, action service.Action) {
	if err := h.services.Approval.Decide(c.Request.Context(), userID, action); err != nil {
		h.respondError(c, err)
		return
	}

	if action == service.ActionAccept {
		respond(c, http.StatusOK, "User approved and credentials sent", nil)
		return
	}
	respond(c, http.StatusOK, "User declined and notified", nil)
}
