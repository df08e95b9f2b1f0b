package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/app/middleware"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// Data subject request types
const (
	RequestTypeExport = "export"
	RequestTypeDelete = "delete"
)

// InterfacePrivacyController GDPR endpoints
type InterfacePrivacyController interface {
	DataRequest()
	Policy()
	CookiePolicy()
}

// PrivacyController handles data subject requests
type PrivacyController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPrivacyController creates a privacy controller
func NewPrivacyController(ctx *gin.Context, container *container.ServiceContainer) *PrivacyController {
	return &PrivacyController{
		Ctx:       ctx,
		Container: container,
	}
}

// DataRequest body of POST /privacy/data-request
type DataRequest struct {
	Email       string `json:"email" binding:"required,email" example:"maria@example.org"`
	RequestType string `json:"requestType" example:"export" enums:"export,delete"`
}

// DataExportResponse answer to an export request
type DataExportResponse struct {
	Message string               `json:"message" example:"Exportación de datos generada exitosamente"`
	Data    *services.DataExport `json:"data"`
}

// HandlePrivacyFunc returns the gin handler of a privacy endpoint
func HandlePrivacyFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPrivacyController(ctx, container)

		switch method {
		case "dataRequest":
			controller.DataRequest()
		case "policy":
			controller.Policy()
		case "cookies":
			controller.CookiePolicy()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

func (c *PrivacyController) service() services.InterfacePrivacyService {
	return c.Container.GetService("privacy").(services.InterfacePrivacyService)
}

// DataRequest exports or erases the personal data linked to an email
// @Summary      GDPR data request
// @Description  export returns every stored record of the email; delete anonymizes them (Article 17)
// @Tags         Privacy
// @Accept       json
// @Produce      json
// @Param        request body DataRequest true "Request"
// @Success      200  {object}  DataExportResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /privacy/data-request [post]
func (c *PrivacyController) DataRequest() {
	var req DataRequest
	if err := bindJSON(c.Ctx, &req, map[string]int{"Email": code.ErrPrivacyEmailInvalid}); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	ctx := c.Ctx.Request.Context()
	actor := middleware.CurrentActor(c.Ctx)

	switch req.RequestType {
	case RequestTypeExport:
		export, err := c.service().ExportData(ctx, req.Email, actor)
		if err != nil {
			response.Error(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, DataExportResponse{
			Message: "Exportación de datos generada exitosamente",
			Data:    export,
		})
	case RequestTypeDelete:
		if err := c.service().EraseData(ctx, req.Email, actor); err != nil {
			response.Error(c.Ctx, err)
			return
		}
		response.Success(c.Ctx, MessageResponse{
			Message: "Datos eliminados exitosamente conforme al derecho al olvido (GDPR Artículo 17)",
		})
	default:
		response.Fail(c.Ctx, code.ErrPrivacyRequestTypeInvalid)
	}
}

// Policy returns the privacy policy
// @Summary      Privacy policy
// @Tags         Privacy
// @Produce      json
// @Success      200  {object}  services.PrivacyPolicy
// @Router       /privacy/policy [get]
func (c *PrivacyController) Policy() {
	response.Success(c.Ctx, c.service().Policy())
}

// CookiePolicy returns the cookie policy
// @Summary      Cookie policy
// @Tags         Privacy
// @Produce      json
// @Success      200  {object}  services.CookiePolicy
// @Router       /privacy/cookies [get]
func (c *PrivacyController) CookiePolicy() {
	response.Success(c.Ctx, c.service().CookiePolicy())
}
