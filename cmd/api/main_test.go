package main

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmint/billmint-api/pkg/logger"
)

func TestRegisterSwaggerSkipsMissingSpec(t *testing.T) {
	app := fiber.New()
	log := logger.New(logger.Config{Level: "error"})

	require.NotPanics(t, func() {
		registerSwagger(app, log, filepath.Join(t.TempDir(), "swagger.json"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegisterSwaggerServesShippedSpec(t *testing.T) {
	app := fiber.New()
	log := logger.New(logger.Config{Level: "error"})

	// The spec ships with the binary; its absence would disable the docs UI.
	registerSwagger(app, log, "../../docs/swagger.json")

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
