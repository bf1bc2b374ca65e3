package controller

import (
	"chatfolders-be/internal/pkg/serverutils"
	"chatfolders-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	GetUsageStatus(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) IPlanController {
	return &planController{planService: planService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	// Plans are public so the pricing modal works before login
	r.Get("/plans", c.GetPlans)

	h := r.Group("/user")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/usage-status", c.GetUsageStatus)
}

func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.planService.GetAllActivePlans(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", res))
}

func (c *planController) GetUsageStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.planService.GetUserUsageStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Usage status", res))
}
