package controller

import (
	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/serverutils"
	"jarvina-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInstructionsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type instructionsController struct {
	instructionsService service.IInstructionsService
}

func NewInstructionsController(instructionsService service.IInstructionsService) IInstructionsController {
	return &instructionsController{
		instructionsService: instructionsService,
	}
}

func (c *instructionsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/instructions/v1")
	h.Get("", c.Show)
	h.Put("", c.Update)
	h.Post("", c.Update)
}

func (c *instructionsController) Show(ctx *fiber.Ctx) error {
	res, err := c.instructionsService.Get(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load custom instructions", res))
}

func (c *instructionsController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateInstructionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.instructionsService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save custom instructions", res))
}
