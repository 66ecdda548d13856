package controller

import (
	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotionImportController interface {
	RegisterRoutes(r fiber.Router)
	Import(ctx *fiber.Ctx) error
}

type notionImportController struct {
	importService service.INotionImportService
}

func NewNotionImportController(importService service.INotionImportService) INotionImportController {
	return &notionImportController{
		importService: importService,
	}
}

func (c *notionImportController) RegisterRoutes(r fiber.Router) {
	r.Post("/mcp/import", c.Import)
}

func (c *notionImportController) Import(ctx *fiber.Ctx) error {
	var req dto.NotionImportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Normalize()
	req.UserId = serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.importService.Import(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success import notion page", res))
}
