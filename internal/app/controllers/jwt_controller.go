package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services"
	"github.com/malamapl09/donaciones-pola-allande/internal/domain/services/container"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/code"
	"github.com/malamapl09/donaciones-pola-allande/internal/error/response"
)

// InterfaceJWTController authentication endpoints
type InterfaceJWTController interface {
	Login()
}

// JWTController handles admin authentication
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController creates an authentication controller
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest body of POST /admin/login. Username also accepts the email.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"s3cret-passw0rd"`
}

// HandleJWTFunc returns the gin handler of an authentication endpoint
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			response.Fail(ctx, code.ErrRouteNotFound)
		}
	}
}

// Login exchanges admin credentials for a bearer token
// @Summary      Admin login
// @Description  Accepts username or email. Unknown users, inactive users and wrong passwords get the same answer.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  services.LoginResult
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      429  {object}  response.ErrorResponse
// @Router       /admin/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := bindJSON(c.Ctx, &req, nil); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(c.Ctx.Request.Context(), services.LoginInput{
		Identifier: req.Username,
		Password:   req.Password,
		IP:         c.Ctx.ClientIP(),
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}
