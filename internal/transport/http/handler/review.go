package handler

import (
	"github.com/gin-gonic/gin"

	"univoice/internal/app"
	"univoice/internal/transport/http/middleware"
	"univoice/internal/transport/http/response"
)

type ReviewHandler struct {
	reviews *app.ReviewService
}

func NewReviewHandler(reviews *app.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List answers 401 with CodeLoginRequired when the caller is not a teacher;
// the page then shows the login form.
func (h *ReviewHandler) List(c *gin.Context) {
	result, err := h.reviews.Review(c.Request.Context(), middleware.StateFromContext(c))
	if err != nil {
		_ = c.Error(err)
		writeFlowError(c, err, "load messages failed")
		return
	}
	response.OK(c, result)
}
