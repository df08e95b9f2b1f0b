package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/pkg/logger"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"Donación no encontrada"`
}

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "requestID"

// Success writes data as the JSON body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Fail writes the localized message of errorCode with its HTTP status
func Fail(c *gin.Context, errorCode int) {
	FailWithData(c, errorCode, nil)
}

// FailWithData adds extra fields next to the error message
func FailWithData(c *gin.Context, errorCode int, extra gin.H) {
	body := gin.H{"error": message(c, errorCode)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code.GetStatus(errorCode), body)
}

// Error maps err to a response. Errors without a code, and codes mapping to
// 500, are logged with their cause and answered with a generic message.
func Error(c *gin.Context, err error) {
	e, ok := code.As(err)
	if !ok {
		e = code.Wrap(code.ErrUnknown, err)
	}

	if e.Status() >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.Error(err),
			zap.Int("code", e.Code),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
	}
	Fail(c, e.Code)
}

// AbortWithError writes the error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// ParamError answers 400 for an unbindable request
func ParamError(c *gin.Context) {
	Fail(c, code.ErrBind)
}

func message(c *gin.Context, errorCode int) string {
	return code.GetLocalizedMessage(errorCode, code.Locale(c.GetHeader("Accept-Language")))
}
