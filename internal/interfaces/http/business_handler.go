package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/application/usecase"
	"github.com/billmint/billmint-api/internal/domain"
)

// BusinessHandler handles the issuer profile (protected; save is admin-only).
type BusinessHandler struct {
	uc *usecase.BusinessUseCase
}

// NewBusinessHandler builds the handler.
func NewBusinessHandler(uc *usecase.BusinessUseCase) *BusinessHandler {
	return &BusinessHandler{uc: uc}
}

// Get godoc
// @Summary      Get the issuer profile
// @Tags         business
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BusinessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business [get]
func (h *BusinessHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "issuer profile not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Create or replace the issuer profile
// @Tags         business
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveBusinessRequest  true  "Issuer profile"
// @Success      200   {object}  dto.BusinessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/business [put]
func (h *BusinessHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveBusinessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Save(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid profile data"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
