package controller

import (
	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Synthesize(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Email(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("synthesize", c.Synthesize)
	h.Get("", c.Get)
	h.Post("email", c.Email)
}

func (c *reportController) Synthesize(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.reportService.Synthesize(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success synthesize report", res))
}

func (c *reportController) Get(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.reportService.Get(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get report", res))
}

func (c *reportController) Email(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	var req dto.EmailReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reportService.Email(ctx.Context(), sessionId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success email report", struct{}{}))
}
