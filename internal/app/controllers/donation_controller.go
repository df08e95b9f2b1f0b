package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceDonationController public donation endpoints
type InterfaceDonationController interface {
	CreateDonation()
	GetStats()
	GetByReference()
}

// DonationController handles public donation requests
type DonationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDonationController creates a donation controller
func NewDonationController(ctx *gin.Context, container *container.ServiceContainer) *DonationController {
	return &DonationController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateDonationRequest body of POST /donations
type CreateDonationRequest struct {
	DonorName    *string          `json:"donorName" binding:"omitempty,max=255" example:"María García"`
	DonorEmail   *string          `json:"donorEmail" binding:"omitempty,email,max=255" example:"maria@example.org"`
	DonorPhone   *string          `json:"donorPhone" binding:"omitempty,max=50" example:"+34600000000"`
	DonorCountry *string          `json:"donorCountry" binding:"omitempty,max=100" example:"España"`
	Amount       *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"25.50"`
	IsAnonymous  bool             `json:"isAnonymous" example:"false"`
	Message      *string          `json:"message" binding:"omitempty,max=1000" example:"¡Mucho ánimo!"`
	ReferralCode string           `json:"referralCode" binding:"max=50" example:"ANA-7F2K"`
	UTMSource    *string          `json:"utmSource" binding:"omitempty,max=100"`
	UTMMedium    *string          `json:"utmMedium" binding:"omitempty,max=100"`
	UTMCampaign  *string          `json:"utmCampaign" binding:"omitempty,max=100"`
}

// HandleDonationFunc returns the gin handler of a donation endpoint
func HandleDonationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDonationController(ctx, container)

		switch method {
		case "createDonation":
			controller.CreateDonation()
		case "getStats":
			controller.GetStats()
		case "getByReference":
			controller.GetByReference()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

func (c *DonationController) service() services.InterfaceDonationService {
	return c.Container.GetService("donation").(services.InterfaceDonationService)
}

// CreateDonation registers a pending donation
// @Summary      Create donation
// @Description  Registers a pending donation and returns the bank transfer instructions with its reference number
// @Tags         Donations
// @Accept       json
// @Produce      json
// @Param        request body CreateDonationRequest true "Donation"
// @Success      201  {object}  services.CreateDonationResult
// @Failure      400  {object}  response.ErrorResponse
// @Failure      429  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /donations [post]
func (c *DonationController) CreateDonation() {
	var req CreateDonationRequest
	if err := bindJSON(c.Ctx, &req, map[string]int{"Amount": code.ErrDonationAmountInvalid}); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	result, err := c.service().CreateDonation(c.Ctx.Request.Context(), services.CreateDonationInput{
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		DonorPhone:   req.DonorPhone,
		DonorCountry: req.DonorCountry,
		Amount:       *req.Amount,
		IsAnonymous:  req.IsAnonymous,
		Message:      req.Message,
		ReferralCode: req.ReferralCode,
		UTMSource:    req.UTMSource,
		UTMMedium:    req.UTMMedium,
		UTMCampaign:  req.UTMCampaign,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, result)
}

// GetStats returns public totals over confirmed donations
// @Summary      Donation statistics
// @Tags         Donations
// @Produce      json
// @Success      200  {object}  services.DonationStats
// @Failure      500  {object}  response.ErrorResponse
// @Router       /donations/stats [get]
func (c *DonationController) GetStats() {
	stats, err := c.service().GetStats(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, stats)
}

// GetByReference looks a donation up by its reference number
// @Summary      Donation by reference
// @Tags         Donations
// @Produce      json
// @Param        referenceNumber  path  string  true  "Reference number"
// @Success      200  {object}  services.PublicDonation
// @Failure      404  {object}  response.ErrorResponse
// @Router       /donations/{referenceNumber} [get]
func (c *DonationController) GetByReference() {
	donation, err := c.service().GetByReference(c.Ctx.Request.Context(), c.Ctx.Param("referenceNumber"))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, donation)
}
