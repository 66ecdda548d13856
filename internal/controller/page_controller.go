package controller

import (
	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPageController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Tree(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Breadcrumb(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ExportMarkdown(ctx *fiber.Ctx) error
	ImportMarkdown(ctx *fiber.Ctx) error
	ImportHTML(ctx *fiber.Ctx) error
}

type pageController struct {
	pageService service.IPageService
}

func NewPageController(pageService service.IPageService) IPageController {
	return &pageController{
		pageService: pageService,
	}
}

func (c *pageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/pages")
	h.Get("", c.List)
	h.Get("tree", c.Tree)
	h.Post("", c.Create)
	h.Post("import/markdown", c.ImportMarkdown)
	h.Post("import/html", c.ImportHTML)
	h.Get(":id", c.Show)
	h.Get(":id/breadcrumb", c.Breadcrumb)
	h.Get(":id/markdown", c.ExportMarkdown)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *pageController) List(ctx *fiber.Ctx) error {
	var query dto.ListPagesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}

	res, err := c.pageService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list pages", res))
}

func (c *pageController) Tree(ctx *fiber.Ctx) error {
	res, err := c.pageService.Tree(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get page tree", res))
}

func (c *pageController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.pageService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show page", res))
}

func (c *pageController) Breadcrumb(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.pageService.Breadcrumb(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get breadcrumb", res))
}

func (c *pageController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pageService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create page", res))
}

func (c *pageController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pageService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update page", res))
}

func (c *pageController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.pageService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete page", nil))
}

func (c *pageController) ExportMarkdown(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.pageService.ExportMarkdown(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export page", res))
}

func (c *pageController) ImportMarkdown(ctx *fiber.Ctx) error {
	var req dto.ImportMarkdownRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pageService.ImportMarkdown(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success import markdown", res))
}

func (c *pageController) ImportHTML(ctx *fiber.Ctx) error {
	var req dto.ImportHTMLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pageService.ImportHTML(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success import html", res))
}
