package controller

import (
	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const uploadField = "excelFile"

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	MyFiles(ctx *fiber.Ctx) error
	GetData(ctx *fiber.Ctx) error
	Analyze(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
	auth    fiber.Handler
}

func NewFileController(service service.IFileService, auth fiber.Handler) IFileController {
	return &fileController{service: service, auth: auth}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/files")
	h.Use(c.auth)
	h.Post("/upload", c.Upload)
	h.Get("/my-files", c.MyFiles)
	h.Get("/:fileId/data", c.GetData)
	h.Post("/:fileId/analyze", c.Analyze)
	h.Get("/:fileId/history", c.History)
	h.Delete("/:fileId", c.Delete)
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}

	header, err := ctx.FormFile(uploadField)
	if err != nil {
		return apperror.Validation("No file uploaded")
	}

	res, err := c.service.Upload(ctx.UserContext(), caller, header)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("File uploaded successfully", res))
}

func (c *fileController) MyFiles(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListFiles(ctx.UserContext(), caller)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Files", res))
}

func (c *fileController) GetData(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}
	fileId, err := idParam(ctx, "fileId", "File not found")
	if err != nil {
		return err
	}

	res, err := c.service.GetData(ctx.UserContext(), caller, fileId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("File data", res))
}

func (c *fileController) Analyze(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}
	fileId, err := idParam(ctx, "fileId", "File not found")
	if err != nil {
		return err
	}

	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.UserContext(), caller, fileId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analysis completed", res))
}

func (c *fileController) History(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}
	fileId, err := idParam(ctx, "fileId", "File not found")
	if err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), caller, fileId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analysis history", res))
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	caller, err := identity(ctx)
	if err != nil {
		return err
	}
	fileId, err := idParam(ctx, "fileId", "File not found")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), caller, fileId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("File deleted successfully", nil))
}
