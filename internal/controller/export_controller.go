package controller

import (
	"fmt"

	"jarvina-be/internal/dto"
	"jarvina-be/internal/pkg/serverutils"
	"jarvina-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export/v1")
	h.Post(":format", c.Export)
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.exportService.Export(ctx.UserContext(), ctx.Params("format"), &req)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, res.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	return ctx.Send(res.Data)
}
