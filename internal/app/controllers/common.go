package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
)

// MessageResponse is a body carrying only a confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"Operación exitosa"`
}

// bindJSON binds the request body. Validation failures map to the code of
// the offending field when fieldCodes names it, else to ErrValidation;
// malformed bodies map to ErrBind.
func bindJSON(ctx *gin.Context, req interface{}, fieldCodes map[string]int) error {
	err := ctx.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if c, ok := fieldCodes[fe.Field()]; ok {
				return code.Wrap(c, err)
			}
		}
		return code.Wrap(code.ErrValidation, err)
	}
	return code.Wrap(code.ErrBind, err)
}

// requestOrigin returns scheme://host of the request as seen by the client
func requestOrigin(ctx *gin.Context) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + ctx.Request.Host
}
