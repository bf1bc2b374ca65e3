package controller

import (
	"chatfolders-be/internal/dto"
	"chatfolders-be/internal/pkg/serverutils"
	"chatfolders-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Reactivate(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	// Webhook is called by Midtrans, not by users; the signature check
	// inside the service is its authentication.
	r.Post("/payment/webhook", c.Webhook)
	// Public pre-checkout pricing, only needs a plan_id
	r.Get("/payment/summary", c.Summary)

	h := r.Group("/payment")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/checkout", c.Checkout)
	h.Get("/subscription", c.Status)
	h.Post("/subscription/cancel", c.Cancel)
	h.Post("/subscription/reactivate", c.Reactivate)
	h.Get("/subscription/validate", c.Validate)
}

func (c *paymentController) Summary(ctx *fiber.Ctx) error {
	planIdStr := ctx.Query("plan_id")
	if planIdStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "plan_id is required")
	}

	planId, err := uuid.Parse(planIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid plan_id format")
	}

	res, err := c.service.GetOrderSummary(ctx.Context(), planId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Order summary", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		// Only transient faults reach here; 500 makes Midtrans retry.
		// Malformed payloads are dropped inside the service with a 200.
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) Status(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetSubscriptionStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription status", res))
}

func (c *paymentController) Cancel(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.CancelSubscription(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription canceled", nil))
}

func (c *paymentController) Reactivate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.ReactivateSubscription(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription reactivated", nil))
}

func (c *paymentController) Validate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.ValidateSubscription(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription validation", res))
}
