package controller

import (
	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBlockController interface {
	RegisterRoutes(r fiber.Router)
	ListByPage(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	Toggle(ctx *fiber.Ctx) error
}

type blockController struct {
	blockService service.IBlockService
}

func NewBlockController(blockService service.IBlockService) IBlockController {
	return &blockController{
		blockService: blockService,
	}
}

func (c *blockController) RegisterRoutes(r fiber.Router) {
	r.Get("/pages/:id/blocks", c.ListByPage)

	h := r.Group("/blocks")
	h.Post("", c.Create)
	h.Post("reorder", c.Reorder)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/toggle", c.Toggle)
}

func (c *blockController) ListByPage(ctx *fiber.Ctx) error {
	pageId, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.blockService.ListByPage(ctx.UserContext(), pageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list blocks", res))
}

func (c *blockController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBlockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.blockService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create block", res))
}

func (c *blockController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateBlockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.blockService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update block", res))
}

func (c *blockController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.blockService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete block", nil))
}

func (c *blockController) Reorder(ctx *fiber.Ctx) error {
	var req dto.ReorderBlocksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.blockService.Reorder(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	// a single move answers with the moved block, a batch with the page
	if !req.IsBatch() && len(res) == 1 {
		return ctx.JSON(serverutils.SuccessResponse("Success reorder block", res[0]))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reorder blocks", res))
}

func (c *blockController) Toggle(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.blockService.Toggle(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle block", res))
}
