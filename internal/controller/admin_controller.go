package controller

import (
	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetStats(ctx *fiber.Ctx) error
	GetUsers(ctx *fiber.Ctx) error
	GetFiles(ctx *fiber.Ctx) error
	GetUserFiles(ctx *fiber.Ctx) error
	DeleteFile(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	auth    fiber.Handler
}

func NewAdminController(service service.IAdminService, auth fiber.Handler) IAdminController {
	return &adminController{service: service, auth: auth}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(c.auth, serverutils.AdminOnly)
	h.Get("/stats", c.GetStats)
	h.Get("/users", c.GetUsers)
	h.Get("/users/:userId/files", c.GetUserFiles)
	h.Get("/files", c.GetFiles)
	h.Delete("/files/:fileId", c.DeleteFile)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin stats", res))
}

func (c *adminController) GetUsers(ctx *fiber.Ctx) error {
	res, err := c.service.ListUsers(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Users", res))
}

func (c *adminController) GetFiles(ctx *fiber.Ctx) error {
	res, err := c.service.ListAllFiles(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Files", res))
}

func (c *adminController) GetUserFiles(ctx *fiber.Ctx) error {
	userId, err := idParam(ctx, "userId", "User not found")
	if err != nil {
		return err
	}

	res, err := c.service.ListUserFiles(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User files", res))
}

func (c *adminController) DeleteFile(ctx *fiber.Ctx) error {
	fileId, err := idParam(ctx, "fileId", "File not found")
	if err != nil {
		return err
	}

	if err := c.service.DeleteFile(ctx.UserContext(), fileId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted successfully", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.LogQueryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetLogs(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", res))
}
