package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storeboost/internal/dto"
	"storeboost/internal/pkg/serverutils"
	"storeboost/internal/repository/contract"
	"storeboost/internal/service"
)

type IEntityController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Count(ctx *fiber.Ctx) error
	BulkStatus(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
	Duplicate(ctx *fiber.Ctx) error
}

type entityController struct {
	service service.IEntityService
}

func NewEntityController(service service.IEntityService) IEntityController {
	return &entityController{service: service}
}

func (c *entityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/entities/v1/:feature/:type")
	h.Get("", c.GetAll)
	h.Get("count", c.Count)
	h.Get(":id<int>", c.Show)

	h.Post("", serverutils.JwtMiddleware, c.Create)
	h.Put(":id<int>", serverutils.JwtMiddleware, c.Update)
	h.Delete(":id<int>", serverutils.JwtMiddleware, c.Delete)
	h.Post(":id<int>/duplicate", serverutils.JwtMiddleware, c.Duplicate)
	h.Patch("bulk/status", serverutils.JwtMiddleware, c.BulkStatus)
	h.Delete("bulk", serverutils.JwtMiddleware, c.BulkDelete)
	h.Put("reorder", serverutils.JwtMiddleware, c.Reorder)
}

func scopeParams(ctx *fiber.Ctx) (string, string) {
	return ctx.Params("feature"), ctx.Params("type")
}

func entityId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, serverutils.BadRequest("Invalid entity id")
	}
	return id, nil
}

func (c *entityController) GetAll(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)
	opts := contract.ListOptions{
		Status:  ctx.Query("status"),
		OrderBy: ctx.Query("orderby", "priority"),
		Order:   ctx.Query("order", "ASC"),
		Limit:   ctx.QueryInt("limit", 100),
		Offset:  ctx.QueryInt("offset", 0),
	}

	res, err := c.service.GetAll(ctx.Context(), featureId, entityType, opts)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all entities", res))
}

func (c *entityController) Show(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)
	id, err := entityId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), featureId, entityType, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show entity", res))
}

func (c *entityController) Create(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)

	var req dto.CreateEntityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), featureId, entityType, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create entity", res))
}

func (c *entityController) Update(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)
	id, err := entityId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateEntityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), featureId, entityType, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update entity", res))
}

func (c *entityController) Delete(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)
	id, err := entityId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), featureId, entityType, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete entity", nil))
}

func (c *entityController) Count(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)

	count, err := c.service.Count(ctx.Context(), featureId, entityType, ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success count entities", dto.CountResponse{Count: count}))
}

func (c *entityController) BulkStatus(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)

	var req dto.BulkStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	affected, err := c.service.BulkUpdateStatus(ctx.Context(), featureId, entityType, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success bulk status update", dto.BulkResultResponse{Affected: affected}))
}

func (c *entityController) BulkDelete(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)

	var req dto.BulkDeleteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	affected, err := c.service.BulkDelete(ctx.Context(), featureId, entityType, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success bulk delete", dto.BulkResultResponse{Affected: affected}))
}

func (c *entityController) Reorder(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)

	var req dto.ReorderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Reorder(ctx.Context(), featureId, entityType, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reorder entities", nil))
}

func (c *entityController) Duplicate(ctx *fiber.Ctx) error {
	featureId, entityType := scopeParams(ctx)
	id, err := entityId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Duplicate(ctx.Context(), featureId, entityType, id)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success duplicate entity", res))
}
