package controller

import (
	"ai-music-be/internal/dto"
	"ai-music-be/internal/pkg/serverutils"
	"ai-music-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICompositeController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
	RemoveMember(ctx *fiber.Ctx) error
	Apply(ctx *fiber.Ctx) error
	SavePreset(ctx *fiber.Ctx) error
}

type compositeController struct {
	compositeService service.ICompositeService
}

func NewCompositeController(compositeService service.ICompositeService) ICompositeController {
	return &compositeController{
		compositeService: compositeService,
	}
}

func (c *compositeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/composite/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Post(":id/members", c.AddMember)
	h.Delete(":id/members/:userId", c.RemoveMember)
	h.Post(":id/apply", c.Apply)
	h.Post(":id/preset", c.SavePreset)
}

func (c *compositeController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCompositeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compositeService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create composite session", res))
}

func (c *compositeController) Show(ctx *fiber.Ctx) error {
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.compositeService.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get composite session", res))
}

func (c *compositeController) Update(ctx *fiber.Ctx) error {
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdatePreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compositeService.Update(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update composite session", res))
}

func (c *compositeController) AddMember(ctx *fiber.Ctx) error {
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ModifyMemberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compositeService.AddUser(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}

func (c *compositeController) RemoveMember(ctx *fiber.Ctx) error {
	sessionId, _ := uuid.Parse(ctx.Params("id"))
	memberId, _ := uuid.Parse(ctx.Params("userId"))

	res, err := c.compositeService.RemoveUser(ctx.Context(), sessionId, memberId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove member", res))
}

func (c *compositeController) Apply(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.compositeService.Apply(ctx.Context(), sessionId, userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply composite", res))
}

func (c *compositeController) SavePreset(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SavePresetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compositeService.SaveAsPersonalPreset(ctx.Context(), sessionId, userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success save preset", res))
}
