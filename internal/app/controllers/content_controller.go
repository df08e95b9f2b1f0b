package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/app/middleware"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/models"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceContentController event content endpoints
type InterfaceContentController interface {
	GetAllSections()
	GetSection()
	GetActiveGoal()
	ListAllSections()
	UpsertSection()
}

// ContentController handles event content requests
type ContentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewContentController creates a content controller
func NewContentController(ctx *gin.Context, container *container.ServiceContainer) *ContentController {
	return &ContentController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpsertSectionRequest body of PUT /admin/content
type UpsertSectionRequest struct {
	Section      string  `json:"section" binding:"max=100" example:"hero"`
	Title        string  `json:"title" binding:"max=255" example:"El Día del Inmigrante 2026"`
	Content      string  `json:"content" example:"Únete a la celebración"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,url,max=500"`
	DisplayOrder int     `json:"displayOrder" example:"1"`
	IsActive     *bool   `json:"isActive" example:"true"`
}

// ContentListResponse body of GET /admin/content
type ContentListResponse struct {
	Sections []models.EventContent `json:"sections"`
}

// UpsertSectionResponse body of PUT /admin/content
type UpsertSectionResponse struct {
	Message string              `json:"message" example:"Contenido actualizado exitosamente"`
	Content models.EventContent `json:"content"`
}

// HandleContentFunc returns the gin handler of a content endpoint
func HandleContentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewContentController(ctx, container)

		switch method {
		case "getAllSections":
			controller.GetAllSections()
		case "getSection":
			controller.GetSection()
		case "getActiveGoal":
			controller.GetActiveGoal()
		case "listAllSections":
			controller.ListAllSections()
		case "upsertSection":
			controller.UpsertSection()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

func (c *ContentController) service() services.InterfaceContentService {
	return c.Container.GetService("content").(services.InterfaceContentService)
}

// GetAllSections returns every published section keyed by name
// @Summary      Event content
// @Tags         Content
// @Produce      json
// @Success      200  {object}  map[string]services.SectionView
// @Router       /content [get]
func (c *ContentController) GetAllSections() {
	sections, err := c.service().GetAllSections(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, sections)
}

// GetSection returns one published section
// @Summary      Content section
// @Description  bank_info always answers, falling back to the default transfer instructions
// @Tags         Content
// @Produce      json
// @Param        section  path  string  true  "Section key"
// @Success      200  {object}  services.SectionView
// @Failure      404  {object}  response.ErrorResponse
// @Router       /content/section/{section} [get]
func (c *ContentController) GetSection() {
	section, err := c.service().GetSection(c.Ctx.Request.Context(), c.Ctx.Param("section"))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, section)
}

// GetActiveGoal returns the active fundraising goal with its progress
// @Summary      Active goal
// @Tags         Content
// @Produce      json
// @Success      200  {object}  services.GoalView
// @Router       /content/goals [get]
func (c *ContentController) GetActiveGoal() {
	goal, err := c.service().GetActiveGoal(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, goal)
}

// ListAllSections lists every section including inactive ones
// @Summary      List content (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ContentListResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /admin/content [get]
func (c *ContentController) ListAllSections() {
	sections, err := c.service().ListAllSections(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, ContentListResponse{Sections: sections})
}

// UpsertSection creates or fully replaces a section
// @Summary      Upsert content (admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpsertSectionRequest true "Section"
// @Success      200  {object}  UpsertSectionResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /admin/content [put]
func (c *ContentController) UpsertSection() {
	var req UpsertSectionRequest
	if err := bindJSON(c.Ctx, &req, nil); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	saved, err := c.service().UpsertSection(c.Ctx.Request.Context(), services.UpsertSectionInput{
		Section:      req.Section,
		Title:        req.Title,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     isActive,
	}, middleware.CurrentActor(c.Ctx))
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, UpsertSectionResponse{
		Message: "Contenido actualizado exitosamente",
		Content: *saved,
	})
}
