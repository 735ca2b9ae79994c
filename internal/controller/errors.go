package controller

import (
	"errors"

	"insighthub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound),
		errors.Is(err, service.ErrSourceNotFound),
		errors.Is(err, service.ErrScorecardNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

func paramID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
