package controller

import (
	"github.com/redcow77/module-5-test/internal/dto"
	"github.com/redcow77/module-5-test/internal/pkg/serverutils"
	"github.com/redcow77/module-5-test/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMemoController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	RegenerateAI(ctx *fiber.Ctx) error
}

type memoController struct {
	memoService service.IMemoService
}

func NewMemoController(memoService service.IMemoService) IMemoController {
	return &memoController{
		memoService: memoService,
	}
}

func (c *memoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/memos")
	h.Get("", c.List)
	h.Get("search", c.Search)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/regenerate-ai", c.RegenerateAI)
}

func (c *memoController) List(ctx *fiber.Ctx) error {
	query := dto.ListMemosQuery{Limit: service.DefaultMemoLimit}
	if err := ctx.QueryParser(&query); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.memoService.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list memos", res))
}

func (c *memoController) Search(ctx *fiber.Ctx) error {
	res, err := c.memoService.Search(ctx.UserContext(), ctx.Query("q"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search memos", res))
}

func (c *memoController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.memoService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show memo", res))
}

func (c *memoController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.UserId = serverutils.UserID(ctx)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create memo", res))
}

func (c *memoController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateMemoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update memo", res))
}

func (c *memoController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.memoService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete memo", nil))
}

func (c *memoController) RegenerateAI(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.memoService.RegenerateAI(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success regenerate memo AI", res))
}
