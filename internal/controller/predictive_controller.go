package controller

import (
	"ai-music-be/internal/dto"
	"ai-music-be/internal/pkg/serverutils"
	"ai-music-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPredictiveController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Revert(ctx *fiber.Ctx) error
	Events(ctx *fiber.Ctx) error
	Train(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type predictiveController struct {
	predictiveService service.IPredictiveService
}

func NewPredictiveController(predictiveService service.IPredictiveService) IPredictiveController {
	return &predictiveController{
		predictiveService: predictiveService,
	}
}

func (c *predictiveController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/predictive/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("apply", c.Apply)
	h.Post(":id/accept", c.Accept)
	h.Post(":id/revert", c.Revert)
	h.Get("events", c.Events)
	h.Post("train", c.Train)
	h.Get("status", c.Status)
}

func (c *predictiveController) Apply(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.PredictiveApplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	event, applied, err := c.predictiveService.Apply(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success run predictive apply", fiber.Map{
		"applied": applied,
		"event":   event,
	}))
}

func (c *predictiveController) Accept(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	eventId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.predictiveService.Accept(ctx.Context(), userId, eventId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success accept adjustment", res))
}

func (c *predictiveController) Revert(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	eventId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.predictiveService.Revert(ctx.Context(), userId, eventId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success revert adjustment", res))
}

func (c *predictiveController) Events(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.predictiveService.Events(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get predictive events", res))
}

func (c *predictiveController) Train(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.predictiveService.Train(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success train model", res))
}

func (c *predictiveController) Status(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.predictiveService.NeedsRetraining(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get model status", res))
}
