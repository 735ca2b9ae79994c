package controller

import (
	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/serverutils"
	"insighthub-be/internal/service"
	"insighthub-be/pkg/jobs"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISourceController interface {
	RegisterRoutes(r fiber.Router)
	CreateURL(ctx *fiber.Ctx) error
	CreateNote(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
}

type sourceController struct {
	service    service.ISourceService
	dispatcher jobs.Dispatcher
}

func NewSourceController(service service.ISourceService, dispatcher jobs.Dispatcher) ISourceController {
	return &sourceController{
		service:    service,
		dispatcher: dispatcher,
	}
}

func (c *sourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sources")
	h.Post("url", c.CreateURL)
	h.Post("note", c.CreateNote)
	h.Post("upload", c.Upload)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/process", c.Process)
}

func (c *sourceController) CreateURL(ctx *fiber.Ctx) error {
	var req dto.CreateUrlSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateURL(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create source", res))
}

func (c *sourceController) CreateNote(ctx *fiber.Ctx) error {
	var req dto.CreateNoteSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateNote(ctx.Context(), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create source", res))
}

// Upload expects a multipart form with workspace_id, an optional title and the file.
// Files other than .pdf and .csv are stored as kind "file"; processing marks them
// failed with "unsupported source kind".
func (c *sourceController) Upload(ctx *fiber.Ctx) error {
	workspaceId, err := uuid.Parse(ctx.FormValue("workspace_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid workspace_id")
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := c.service.Upload(ctx.Context(), &dto.UploadSourceRequest{
		WorkspaceId: workspaceId,
		Title:       ctx.FormValue("title"),
		Filename:    fh.Filename,
		File:        f,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload source", res))
}

func (c *sourceController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show source", res))
}

func (c *sourceController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete source", nil))
}

func (c *sourceController) Process(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return enqueue(ctx, c.dispatcher, "Processing started", jobs.TaskProcessSource, id.String())
}
