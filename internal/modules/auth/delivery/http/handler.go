package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pkfit.com.br/pkfitsystem/internal/modules/auth/dto"
	authService "pkfit.com.br/pkfitsystem/internal/modules/auth/service"
	"pkfit.com.br/pkfitsystem/pkg/response"
	"pkfit.com.br/pkfitsystem/pkg/validator"
)

type AuthHandler struct {
	authService authService.AuthService
}

func NewAuthHandler(authService authService.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CheckEmail is step one of the login wizard. It deliberately reveals whether
// the email exists: accounts are pre-provisioned by an admin, so the client
// walks first-time users straight into password creation.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var input dto.CheckEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.authService.CheckEmail(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Exists {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"exists":  false,
			"error":   "email not found, contact your academy administration",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"exists":      true,
		"hasPassword": result.HasPassword,
		"user": dto.UserPreview{
			Name:  result.User.Name,
			Email: result.User.Email,
			Role:  result.User.Role,
		},
	})
}

func (h *AuthHandler) CreatePassword(c *gin.Context) {
	var input dto.CreatePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.CreatePassword(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "password created successfully",
		"user":       res.User,
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"home_route": res.HomeRoute,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"user":       res.User,
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"home_route": res.HomeRoute,
	})
}

// Me returns the user resolved by the auth middleware, so role or tenant
// changes show up without waiting for token expiry.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := response.CurrentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout exists for client symmetry; tokens are stateless and simply get
// dropped by the client.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Message(c, "logged out")
}
