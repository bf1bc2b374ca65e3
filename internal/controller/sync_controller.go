package controller

import (
	"errors"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/pkg/serverutils"
	"chatfolders-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISyncController interface {
	RegisterRoutes(r fiber.Router)
	Enable(ctx *fiber.Ctx) error
	Disable(ctx *fiber.Ctx) error
	Push(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
}

type syncController struct {
	service service.ISyncService
}

func NewSyncController(service service.ISyncService) ISyncController {
	return &syncController{service: service}
}

func (c *syncController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sync/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("enable", c.Enable)
	h.Post("disable", c.Disable)
	h.Post("push", c.Push)
	h.Get("state", c.State)
}

func (c *syncController) Enable(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.EnableSyncRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Enable(ctx.Context(), userId, &req)
	if err != nil {
		return mapSyncError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Sync enabled", res))
}

func (c *syncController) Disable(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.Disable(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Sync disabled", nil))
}

func (c *syncController) Push(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SyncPushRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Push(ctx.Context(), userId, &req)
	if err != nil {
		return mapSyncError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Sync pass complete", res))
}

func (c *syncController) State(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	deviceId := ctx.Query("device_id")
	if deviceId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "device_id is required")
	}

	res, err := c.service.State(ctx.Context(), userId, deviceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sync state", res))
}

func mapSyncError(err error) error {
	if errors.Is(err, service.ErrSyncNotEntitled) {
		return fiber.NewError(fiber.StatusForbidden, "Cloud sync requires an upgraded plan")
	}
	return err
}
