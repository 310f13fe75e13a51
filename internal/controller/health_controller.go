package controller

import (
	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/serverutils"
	"jarvina-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

// HealthInfo is what the container knows about the loaded assistant.
type HealthInfo struct {
	Provider     string
	ReplyPhrases int
	PersonaName  string
}

type healthController struct {
	chatbotService service.IChatbotService
	info           HealthInfo
}

func NewHealthController(chatbotService service.IChatbotService, info HealthInfo) IHealthController {
	return &healthController{
		chatbotService: chatbotService,
		info:           info,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Show)
}

func (c *healthController) Show(ctx *fiber.Ctx) error {
	ready := c.chatbotService.ModelReady()
	status := "ok"
	if !ready {
		status = "degraded"
	}

	return ctx.JSON(serverutils.SuccessResponse("Service status", &dto.HealthResponse{
		Status:       status,
		ModelReady:   ready,
		Provider:     c.info.Provider,
		ReplyPhrases: c.info.ReplyPhrases,
		PersonaName:  c.info.PersonaName,
	}))
}
