package controller

import (
	"errors"

	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/pkg/serverutils"
	"chatfolders-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Capture(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	CrossFile(ctx *fiber.Ctx) error
	Unfile(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reorder(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Capture)
	h.Put("reorder/:folderId", c.Reorder)
	h.Put(":folderId/:id/title", c.Rename)
	h.Put(":folderId/:id/move", c.Move)
	h.Put(":folderId/:id/cross-file", c.CrossFile)
	h.Put(":folderId/:id/unfile", c.Unfile)
	h.Delete(":folderId/:id", c.Delete)
}

func (c *conversationController) Capture(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CaptureConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Capture(ctx.Context(), userId, &req)
	if err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success capture conversation", res))
}

func (c *conversationController) Rename(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RenameConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.FolderId = ctx.Params("folderId")
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Rename(ctx.Context(), userId, &req); err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rename conversation", nil))
}

func (c *conversationController) Move(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.MoveConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.FolderId = ctx.Params("folderId")
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Move(ctx.Context(), userId, &req); err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success move conversation", nil))
}

func (c *conversationController) CrossFile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CrossFileConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.FolderId = ctx.Params("folderId")
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.CrossFile(ctx.Context(), userId, &req); err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success cross-file conversation", nil))
}

func (c *conversationController) Unfile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UnfileConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.FolderId = ctx.Params("folderId")
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Unfile(ctx.Context(), userId, &req); err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success unfile conversation", nil))
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	err := c.service.Delete(ctx.Context(), userId, ctx.Params("folderId"), ctx.Params("id"))
	if err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete conversation", nil))
}

func (c *conversationController) Reorder(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ReorderConversationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.FolderId = ctx.Params("folderId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Reorder(ctx.Context(), userId, &req); err != nil {
		return mapConversationError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reorder conversations", nil))
}

func mapConversationError(err error) error {
	switch {
	case errors.Is(err, service.ErrFolderNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Folder not found")
	case errors.Is(err, service.ErrConversationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	case errors.Is(err, service.ErrUnknownPlatform):
		return fiber.NewError(fiber.StatusBadRequest, "Unknown platform")
	}
	return err
}
