package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"univoice/internal/app"
	"univoice/internal/transport/http/middleware"
	"univoice/internal/transport/http/response"
)

type AuthHandler struct {
	authService  *app.AuthService
	submissions  *app.SubmissionService
	cookieName   string
	cookieTTL    time.Duration
	secureCookie bool
}

type LoginRequest struct {
	Role       string `json:"role" binding:"required,max=16"`
	Identity   string `json:"identity" binding:"max=64"`
	Credential string `json:"credential" binding:"required,max=128"`
}

// sessionView is the session endpoint payload; the page reads the submission
// settings from it to decide which inputs to show.
type sessionView struct {
	*app.AuthResult
	Submission app.SubmissionSettings `json:"submission"`
}

func NewAuthHandler(authService *app.AuthService, submissions *app.SubmissionService, cookieName string, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		submissions:  submissions,
		cookieName:   cookieName,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), middleware.StateFromContext(c), app.LoginInput{
		Role:       req.Role,
		Identity:   req.Identity,
		Credential: req.Credential,
	})
	if err != nil {
		writeFlowError(c, err, "login failed")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.Token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
	response.OK(c, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	result := h.authService.Logout(c.Request.Context(), middleware.StateFromContext(c), middleware.TokenFromContext(c))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	response.OK(c, result)
}

func (h *AuthHandler) Current(c *gin.Context) {
	response.OK(c, sessionView{
		AuthResult: h.authService.Current(middleware.StateFromContext(c)),
		Submission: h.submissions.Settings(),
	})
}
