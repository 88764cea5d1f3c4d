package controller

import (
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("run", c.Run)
	h.Get("", c.List)
}

func (c *analysisController) Run(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.analysisService.Run(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success run analysis", res))
}

func (c *analysisController) List(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.analysisService.List(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list analyses", res))
}
