package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"univoice/internal/app"
	"univoice/internal/directory"
	"univoice/internal/transport/http/middleware"
	"univoice/internal/transport/http/response"
)

type SubmissionHandler struct {
	submissions *app.SubmissionService
	directory   *directory.Directory
}

type SubmitRequest struct {
	Recipient     string `json:"recipient" binding:"max=128"`
	RecipientName  string `json:"recipient_name" binding:"max=128"`
	RecipientEmail string `json:"recipient_email" binding:"omitempty,email,max=254"`
	Content        string `json:"content"`
}

type teacherView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

func NewSubmissionHandler(submissions *app.SubmissionService, dir *directory.Directory) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, directory: dir}
}

// Teachers lists the selectable recipients.
func (h *SubmissionHandler) Teachers(c *gin.Context) {
	records := h.directory.All()
	views := make([]teacherView, 0, len(records))
	for _, r := range records {
		views = append(views, teacherView{ID: r.ID, DisplayName: r.DisplayName, Email: r.Email})
	}
	response.OK(c, views)
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.submissions.Submit(c.Request.Context(), middleware.StateFromContext(c), app.SubmitInput{
		Recipient:      req.Recipient,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Content:        req.Content,
	})
	if err != nil {
		_ = c.Error(err)
		writeFlowError(c, err, "submit message failed")
		return
	}

	response.OK(c, result)
}
