package controller

import (
	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/serverutils"
	"insighthub-be/internal/service"
	"insighthub-be/pkg/jobs"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetSources(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service       service.IWorkspaceService
	sourceService service.ISourceService
	dispatcher    jobs.Dispatcher
}

func NewWorkspaceController(
	service service.IWorkspaceService,
	sourceService service.ISourceService,
	dispatcher jobs.Dispatcher,
) IWorkspaceController {
	return &workspaceController{
		service:       service,
		sourceService: sourceService,
		dispatcher:    dispatcher,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspaces")
	h.Post("", c.Create)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Get(":id/sources", c.GetSources)
	h.Post(":id/ingest", c.Ingest)
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateWorkspaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *workspaceController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all workspace", res))
}

func (c *workspaceController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show workspace", res))
}

func (c *workspaceController) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete workspace", nil))
}

func (c *workspaceController) GetSources(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.sourceService.GetAll(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all source", res))
}

func (c *workspaceController) Ingest(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return enqueue(ctx, c.dispatcher, "Ingestion started", jobs.TaskProcessWorkspaceSources, id.String())
}

func enqueue(ctx *fiber.Ctx, dispatcher jobs.Dispatcher, message string, task string, args ...string) error {
	if err := dispatcher.Enqueue(ctx.Context(), task, args...); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.AcceptedResponse(message, dto.TaskAcceptedResponse{
		Task: task,
		Args: args,
	}))
}
