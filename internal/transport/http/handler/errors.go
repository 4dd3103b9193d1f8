package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"univoice/internal/app"
	"univoice/internal/rewrite"
	"univoice/internal/session"
	"univoice/internal/store"
	"univoice/internal/transport/http/response"
)

// writeFlowError maps a flow failure to a visible response. Upstream detail
// stays in the logs.
func writeFlowError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.CodeEmptyContent, app.ErrEmptyContent.Error())
	case errors.Is(err, app.ErrContentTooLong):
		response.Error(c, http.StatusBadRequest, response.CodeContentTooLong, app.ErrContentTooLong.Error())
	case errors.Is(err, app.ErrUnknownRecipient):
		response.Error(c, http.StatusBadRequest, response.CodeUnknownRecipient, app.ErrUnknownRecipient.Error())
	case errors.Is(err, app.ErrLoginRequired):
		response.Error(c, http.StatusUnauthorized, response.CodeLoginRequired, app.ErrLoginRequired.Error())
	case errors.Is(err, session.ErrInvalidCredential):
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, session.ErrInvalidCredential.Error())
	case errors.Is(err, rewrite.ErrGeneration):
		response.Error(c, http.StatusBadGateway, response.CodeGeneration, rewrite.ErrGeneration.Error())
	case errors.Is(err, store.ErrStore):
		response.Error(c, http.StatusServiceUnavailable, response.CodeStore, store.ErrStore.Error())
	case errors.Is(err, app.ErrFeatureUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeConfiguration, app.ErrFeatureUnavailable.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
