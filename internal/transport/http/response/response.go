package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeEmptyContent       = 40001
	CodeContentTooLong     = 40002
	CodeUnknownRecipient   = 40003
	CodeLoginRequired      = 40100
	CodeInvalidCredentials = 40101
	CodeInternalServer     = 50000
	CodeGeneration         = 50201
	CodeStore              = 50301
	CodeConfiguration      = 50302
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
