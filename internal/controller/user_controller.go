package controller

import (
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Dashboard(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	auth    fiber.Handler
}

func NewUserController(service service.IUserService, auth fiber.Handler) IUserController {
	return &userController{service: service, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Use(c.auth)
	h.Get("/dashboard", c.Dashboard)
}

func (c *userController) Dashboard(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Dashboard(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard", res))
}
