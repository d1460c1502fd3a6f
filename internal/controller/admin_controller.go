package controller

import (
	"github.com/gofiber/fiber/v2"

	"storeboost/internal/pkg/serverutils"
	"storeboost/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetLogs(ctx *fiber.Ctx) error
	GetLogById(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogById)
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	logs, err := c.service.GetLogs(
		ctx.Query("level"),
		ctx.QueryInt("limit", 100),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}

func (c *adminController) GetLogById(ctx *fiber.Ctx) error {
	entry, err := c.service.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	if entry == nil {
		return serverutils.NotFound("Log entry not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log", entry))
}
