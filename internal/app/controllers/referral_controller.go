package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceReferralController public referral endpoints
type InterfaceReferralController interface {
	CreateReferral()
	GetByCode()
	ListLeaderboard()
}

// ReferralController handles referral requests
type ReferralController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReferralController creates a referral controller
func NewReferralController(ctx *gin.Context, container *container.ServiceContainer) *ReferralController {
	return &ReferralController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateReferralRequest body of POST /referrals
type CreateReferralRequest struct {
	Name  string  `json:"name" binding:"max=255" example:"Ana Fernández"`
	Email *string `json:"email" binding:"omitempty,email,max=255" example:"ana@example.org"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
}

// LeaderboardResponse body of GET /referrals
type LeaderboardResponse struct {
	Leaderboard []services.LeaderboardEntry `json:"leaderboard"`
}

// HandleReferralFunc returns the gin handler of a referral endpoint
func HandleReferralFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReferralController(ctx, container)

		switch method {
		case "createReferral":
			controller.CreateReferral()
		case "getByCode":
			controller.GetByCode()
		case "listLeaderboard":
			controller.ListLeaderboard()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

func (c *ReferralController) service() services.InterfaceReferralService {
	return c.Container.GetService("referral").(services.InterfaceReferralService)
}

// CreateReferral creates a shareable referral code
// @Summary      Create referral
// @Tags         Referrals
// @Accept       json
// @Produce      json
// @Param        request body CreateReferralRequest true "Referrer"
// @Success      201  {object}  services.CreatedReferral
// @Failure      400  {object}  response.ErrorResponse
// @Failure      409  {object}  response.ErrorResponse
// @Router       /referrals [post]
func (c *ReferralController) CreateReferral() {
	var req CreateReferralRequest
	if err := bindJSON(c.Ctx, &req, map[string]int{"Name": code.ErrReferralNameInvalid}); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	created, err := c.service().CreateReferral(c.Ctx.Request.Context(), services.CreateReferralInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Origin: requestOrigin(c.Ctx),
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, created)
}

// GetByCode returns an active referral with its recent donations
// @Summary      Referral by code
// @Tags         Referrals
// @Produce      json
// @Param        code  path  string  true  "Referral code"
// @Success      200  {object}  services.ReferralDetail
// @Failure      404  {object}  response.ErrorResponse
// @Router       /referrals/{code} [get]
func (c *ReferralController) GetByCode() {
	detail, err := c.service().GetByCode(c.Ctx.Request.Context(), c.Ctx.Param("code"), requestOrigin(c.Ctx))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, detail)
}

// ListLeaderboard ranks referrals by confirmed amount
// @Summary      Referral leaderboard
// @Tags         Referrals
// @Produce      json
// @Success      200  {object}  LeaderboardResponse
// @Router       /referrals [get]
func (c *ReferralController) ListLeaderboard() {
	entries, err := c.service().ListLeaderboard(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, LeaderboardResponse{Leaderboard: entries})
}
