package controller

import (
	"ml-discovery-be/internal/pkg/serverutils"
	"ml-discovery-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create) // unauthenticated: this is where the token is minted
	h.Get("", serverutils.JwtMiddleware, c.Status)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.sessionService.Create(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Status(ctx *fiber.Ctx) error {
	sessionId := sessionIdFromLocals(ctx)
	res, err := c.sessionService.Status(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session status", res))
}

// sessionIdFromLocals reads the session id the JWT middleware stored. The
// middleware rejects malformed tokens, so the parse cannot fail here.
func sessionIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, _ := uuid.Parse(sessionIdStr)
	return sessionId
}
