package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/requestdata"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
	"github.com/notehive/notehive-backend/internal/types"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	role, err := ah.authService.RoleFor(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	token, err := ah.authService.IssueToken(req.Email, role)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{"token": token, "expires_in": expiresIn, "role": role})
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	if req.Role == "" {
		req.Role = string(types.RoleUser)
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, types.Role(req.Role))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func (ah *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondAPIError(c, apierr.Unauthorized("missing or invalid token"))
		return
	}
	response.RespondOK(c, gin.H{"email": rd.Email, "role": rd.Role})
}
