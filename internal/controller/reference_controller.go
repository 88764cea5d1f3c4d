package controller

import (
	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReferenceController interface {
	RegisterRoutes(r fiber.Router)
	BulkLoad(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type referenceController struct {
	referenceService service.IReferenceService
}

func NewReferenceController(referenceService service.IReferenceService) IReferenceController {
	return &referenceController{
		referenceService: referenceService,
	}
}

func (c *referenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reference/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("bulk", c.BulkLoad)
	h.Get("", c.List)
}

func (c *referenceController) BulkLoad(ctx *fiber.Ctx) error {
	var req dto.BulkLoadReferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.referenceService.BulkLoad(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success load reference records", res))
}

func (c *referenceController) List(ctx *fiber.Ctx) error {
	category := ctx.Query("category")

	res, err := c.referenceService.List(ctx.Context(), category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list reference records", res))
}
