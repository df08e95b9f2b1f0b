package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/app/middleware"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceAdminController admin review endpoints
type InterfaceAdminController interface {
	ListDonations()
	UpdateDonationStatus()
	GetDashboard()
	GetReports()
}

// AdminController handles authenticated admin requests
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController creates an admin controller
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateStatusRequest body of PATCH /admin/donations/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" example:"confirmed" enums:"confirmed,rejected"`
}

// HandleAdminFunc returns the gin handler of an admin endpoint
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "listDonations":
			controller.ListDonations()
		case "updateDonationStatus":
			controller.UpdateDonationStatus()
		case "getDashboard":
			controller.GetDashboard()
		case "getReports":
			controller.GetReports()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

func (c *AdminController) service() services.InterfaceAdminService {
	return c.Container.GetService("admin").(services.InterfaceAdminService)
}

// ListDonations pages through donations, optionally filtered by status
// @Summary      List donations (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page (default 1)"
// @Param        limit   query  int     false  "Page size (default 20, max 100)"
// @Param        status  query  string  false  "pending, confirmed or rejected"
// @Success      200  {object}  services.DonationPage
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /admin/donations [get]
func (c *AdminController) ListDonations() {
	// unparsable paging values fall back to the defaults
	page, _ := strconv.Atoi(c.Ctx.Query("page"))
	limit, _ := strconv.Atoi(c.Ctx.Query("limit"))

	result, err := c.service().ListDonations(c.Ctx.Request.Context(),
		models.PaginationQuery{Page: page, Limit: limit}, c.Ctx.Query("status"))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// UpdateDonationStatus confirms or rejects a donation
// @Summary      Confirm or reject a donation (admin)
// @Description  Confirming a referred donation adds it to the referral totals
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                  true  "Donation id"
// @Param        request  body  UpdateStatusRequest  true  "Target status"
// @Success      200  {object}  services.StatusUpdateResult
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /admin/donations/{id}/status [patch]
func (c *AdminController) UpdateDonationStatus() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Fail(c.Ctx, code.ErrDonationIDInvalid)
		return
	}

	var req UpdateStatusRequest
	if err := bindJSON(c.Ctx, &req, nil); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	result, err := c.service().SetDonationStatus(c.Ctx.Request.Context(), uint(id),
		models.DonationStatus(req.Status), middleware.CurrentActor(c.Ctx))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// GetDashboard returns the review summary
// @Summary      Dashboard (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.Dashboard
// @Failure      401  {object}  response.ErrorResponse
// @Router       /admin/dashboard [get]
func (c *AdminController) GetDashboard() {
	dashboard, err := c.service().GetDashboard(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, dashboard)
}

// GetReports returns the aggregate reports
// @Summary      Reports (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.Reports
// @Failure      401  {object}  response.ErrorResponse
// @Router       /admin/reports [get]
func (c *AdminController) GetReports() {
	reportService := c.Container.GetService("report").(services.InterfaceReportService)
	reports, err := reportService.GetReports(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, reports)
}
