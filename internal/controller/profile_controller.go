package controller

import (
	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Put("", c.Upsert)
	h.Get("", c.Get)
}

func (c *profileController) Upsert(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	var req dto.UpsertProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.Upsert(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upsert profile", res))
}

func (c *profileController) Get(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)

	res, err := c.profileService.Get(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
