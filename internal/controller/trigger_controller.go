package controller

import (
	"ai-music-be/internal/dto"
	"ai-music-be/internal/pkg/serverutils"
	"ai-music-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITriggerController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Cleanup(ctx *fiber.Ctx) error
}

type triggerController struct {
	triggerService service.ITriggerService
}

func NewTriggerController(triggerService service.ITriggerService) ITriggerController {
	return &triggerController{
		triggerService: triggerService,
	}
}

func (c *triggerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/trigger/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Post(":id/activate", c.Activate)
	h.Post(":id/deactivate", c.Deactivate)
	h.Delete(":id", c.Delete)
	h.Post("cleanup", c.Cleanup)
}

func (c *triggerController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateTriggerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.triggerService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create trigger", res))
}

func (c *triggerController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.triggerService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get triggers", res))
}

func (c *triggerController) Activate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	triggerId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.triggerService.Activate(ctx.Context(), userId, triggerId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success activate trigger", res))
}

func (c *triggerController) Deactivate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	triggerId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.triggerService.Deactivate(ctx.Context(), userId, triggerId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success deactivate trigger", res))
}

func (c *triggerController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	triggerId, _ := uuid.Parse(ctx.Params("id"))

	if err := c.triggerService.Delete(ctx.Context(), userId, triggerId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete trigger", nil))
}

func (c *triggerController) Cleanup(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	cleaned, err := c.triggerService.CleanupStale(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cleanup triggers", fiber.Map{
		"cleaned": cleaned,
	}))
}
