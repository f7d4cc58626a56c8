package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/membergate/backend/internal/service"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/reset-password", h.resetPassword)
	auth.GET("/payment/:user_id", h.paymentPage)
	auth.GET("/complete-payment", h.completePayment)

	auth.POST("/logout", h.identityMiddleware, h.logout)
	auth.POST("/change-password", h.identityMiddleware, h.changePassword)
}

type registerRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=100"`
	Mobile string `json:"mobile" binding:"required,mobile"`
	Email  string `json:"email" binding:"required,email"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, err := h.services.Auth.SignUp(c.Request.Context(), service.SignUpInput{
		Name:   req.Name,
		Mobile: req.Mobile,
		Email:  req.Email,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User registered successfully", gin.H{"user_id": user.ID})
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	tokens, err := h.services.Auth.SignIn(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User login successfully", gin.H{
		"user_id":      tokens.Identity,
		"access_token": tokens.AccessToken,
		"expires_in":   tokens.AccessTTL.Seconds(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	token := c.GetString(tokenCtx)

	if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Logged out successfully", nil)
}

type changePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	identity := c.MustGet(identityCtx).(uuid.UUID)

	err := h.services.Auth.ChangePassword(c.Request.Context(), identity, service.ChangePasswordInput{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password changed successfully", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP sent successfully", nil)
}

type resetPasswordRequest struct {
	OTP             string `json:"otp" binding:"required,len=6"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Auth.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		OTP:             req.OTP,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *Handler) paymentPage(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user_id format", nil)
		return
	}

	info, err := h.services.Auth.PaymentInfo(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment details", gin.H{
		"payment_uri": info.PaymentURI,
		"amount":      info.Amount,
		"user_id":     info.User.ID,
	})
}

func (h *Handler) completePayment(c *gin.Context) {
	rawID := c.Query("user_id")
	if rawID == "" {
		respond(c, http.StatusBadRequest, "missing user_id", nil)
		return
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		respond(c, http.StatusBadRequest, "invalid user_id format", nil)
		return
	}

	if err := h.services.Auth.CompletePayment(c.Request.Context(), userID); err != nil {
		h.respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Payment completed. Awaiting admin approval.", nil)
}
