package controller

import (
	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type uploadController struct {
	ingestService service.IIngestService
}

func NewUploadController(ingestService service.IIngestService) IUploadController {
	return &uploadController{
		ingestService: ingestService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Ingest)
	h.Get("", c.List)
}

func (c *uploadController) Ingest(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	var req dto.IngestUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestService.Ingest(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success ingest upload", res))
}

func (c *uploadController) List(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.ingestService.List(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list uploads", res))
}
