package controller

import (
	"strconv"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/pkg/serverutils"
	"insighthub-be/internal/service"
	"insighthub-be/pkg/analytics"
	"insighthub-be/pkg/jobs"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	RunAnalytics(ctx *fiber.Ctx) error
	ExtractThemes(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
	Themes(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type insightController struct {
	analyticsService service.IAnalyticsService
	searchService    service.ISearchService
	dispatcher       jobs.Dispatcher
}

func NewInsightController(
	analyticsService service.IAnalyticsService,
	searchService service.ISearchService,
	dispatcher jobs.Dispatcher,
) IInsightController {
	return &insightController{
		analyticsService: analyticsService,
		searchService:    searchService,
		dispatcher:       dispatcher,
	}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspaces")
	h.Post(":id/analytics", c.RunAnalytics)
	h.Post(":id/themes/extract", c.ExtractThemes)
	h.Get(":id/dashboard", c.Dashboard)
	h.Get(":id/themes", c.Themes)
	h.Post(":id/search", c.Search)
}

func (c *insightController) RunAnalytics(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	return enqueue(ctx, c.dispatcher, "Analytics started", jobs.TaskRunAnalytics, id.String())
}

func (c *insightController) ExtractThemes(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}
	k := ctx.QueryInt("k", analytics.DefaultThemeCount)
	if k <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "k must be positive")
	}
	return enqueue(ctx, c.dispatcher, "Theme extraction started", jobs.TaskExtractThemes, id.String(), strconv.Itoa(k))
}

func (c *insightController) Dashboard(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.analyticsService.GetDashboard(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *insightController) Themes(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.analyticsService.GetThemes(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get themes", res))
}

func (c *insightController) Search(ctx *fiber.Ctx) error {
	id, err := paramID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search", res))
}
