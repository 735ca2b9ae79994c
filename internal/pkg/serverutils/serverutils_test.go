package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" validate:"gte=0,lte=10"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "ok", Limit: 3}))

	err := ValidateRequest(sampleRequest{Limit: 11})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["sampleRequest.Name"])
	assert.Equal(t, "lte", verr.Fields["sampleRequest.Limit"])
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "workspace not found")
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return ValidateRequest(sampleRequest{})
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("fine", fiber.Map{"n": 1}))
	})

	tests := []struct {
		path    string
		status  int
		success bool
	}{
		{"/missing", fiber.StatusNotFound, false},
		{"/invalid", fiber.StatusBadRequest, false},
		{"/ok", fiber.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.success, body.Success)
		})
	}
}
