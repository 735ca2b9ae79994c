package controller

import (
	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/serverutils"
	"insighthub-be/internal/service"
	"insighthub-be/pkg/jobs"

	"github.com/gofiber/fiber/v2"
)

type IScorecardController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Run(ctx *fiber.Ctx) error
	Results(ctx *fiber.Ctx) error
}

type scorecardController struct {
	service    service.IScorecardService
	dispatcher jobs.Dispatcher
}

func NewScorecardController(service service.IScorecardService, dispatcher jobs.Dispatcher) IScorecardController {
	return &scorecardController{
		service:    service,
		dispatcher: dispatcher,
	}
}

func (c *scorecardController) RegisterRoutes(r fiber.Router) {
	r.Post("/workspaces/:id/scorecards", c.Create)
	r.Get("/workspaces/:id/scorecards", c.GetAll)

	h := r.Group("/scorecards")
	h.Get(":id", c.Show)
	h.Post(":id/run", c.Run)
	h.Get(":id/results", c.Results)
}

func (c *scorecardController) Create(ctx *fiber.Ctx) error {
	workspaceId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateScorecardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), workspaceId, &req)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create scorecard", res))
}

func (c *scorecardController) GetAll(ctx *fiber.Ctx) error {
	workspaceId, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.Context(), workspaceId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all scorecard", res))
}

func (c *scorecardController) Show(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show scorecard", res))
}

func (c *scorecardController) Run(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return enqueue(ctx, c.dispatcher, "Scorecard calculation started", jobs.TaskCalculateScorecard, id.String())
}

func (c *scorecardController) Results(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetResults(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scorecard results", res))
}
