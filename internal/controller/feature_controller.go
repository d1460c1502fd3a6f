package controller

import (
	"github.com/gofiber/fiber/v2"

	"storeboost/internal/dto"
	"storeboost/internal/pkg/serverutils"
	"storeboost/internal/service"
)

type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Enable(ctx *fiber.Ctx) error
	Disable(ctx *fiber.Ctx) error
	UpdateSettings(ctx *fiber.Ctx) error
}

type featureController struct {
	service service.IFeatureService
}

func NewFeatureController(service service.IFeatureService) IFeatureController {
	return &featureController{service: service}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/features/v1")
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)

	// Mutations require the admin token.
	h.Post(":id/enable", serverutils.JwtMiddleware, c.Enable)
	h.Post(":id/disable", serverutils.JwtMiddleware, c.Disable)
	h.Put(":id/settings", serverutils.JwtMiddleware, c.UpdateSettings)
}

func (c *featureController) GetAll(ctx *fiber.Ctx) error {
	res := c.service.GetAll(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get all features", res))
}

func (c *featureController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show feature", res))
}

func (c *featureController) Enable(ctx *fiber.Ctx) error {
	if err := c.service.Enable(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature enabled", nil))
}

func (c *featureController) Disable(ctx *fiber.Ctx) error {
	if err := c.service.Disable(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature disabled", nil))
}

func (c *featureController) UpdateSettings(ctx *fiber.Ctx) error {
	var req dto.UpdateFeatureSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateSettings(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature settings updated", res))
}
