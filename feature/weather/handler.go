package weather

import (
	"errors"

	"quake-manager/core/logger"
	"quake-manager/feature/weather/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for weather observations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the weather routes. The history route goes first
// so that "/history/:city" is not swallowed by "/:source".
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/weather")
	group.Get("/history/:city", h.HandleHistory)
	group.Get("/:source", h.HandleGetBySource)
	group.Post("/", h.HandleSave)
	group.Delete("/:id", h.HandleDelete)
}

// HandleGetBySource returns current conditions for a city.
// @Summary Query current conditions by source
// @Description Returns current conditions from OpenWeatherMap, WeatherAPI or the latest stored report (DB).
// @Tags weather
// @Produce json
// @Param source path string true "Data source (OpenWeatherMap, WeatherAPI, DB)"
// @Param city query string true "City name"
// @Success 200 {object} models.Observation "Current conditions"
// @Failure 400 {object} map[string]string "Invalid source or missing city"
// @Failure 404 {object} map[string]string "No stored report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /weather/{source} [get]
func (h *Handler) HandleGetBySource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	source := c.Params("source")
	city := c.Query("city")

	obs, err := h.service.GetWeather(c.Context(), source, city)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation failed",
				"reasons": vErr.Reasons,
			})
		case errors.Is(err, ErrInvalidSource):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "source must be one of OpenWeatherMap, WeatherAPI, or DB",
			})
		case errors.Is(err, ErrNoObservation):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Weather query failed", zap.String("source", source), zap.String("city", city), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(obs)
}

// HandleHistory returns all stored reports for a city.
// @Summary City history
// @Description Returns all stored reports for a city, newest first.
// @Tags weather
// @Produce json
// @Param city path string true "City name"
// @Success 200 {object} models.HistoryResponse "History"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /weather/history/{city} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	city := c.Params("city")
	resp, err := h.service.History(c.Context(), city)
	if err != nil {
		l.Error("Weather history query failed", zap.String("city", city), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(resp)
}

// HandleSave persists a manual weather report.
// @Summary Save a weather report
// @Description Persists a manual weather report in the local store.
// @Tags weather
// @Accept json
// @Produce json
// @Param report body models.SaveRequest true "Report submission"
// @Success 201 {object} models.SaveResponse "Saved"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /weather [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	resp, err := h.service.SaveReport(c.Context(), req)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation failed",
				"reasons": vErr.Reasons,
			})
		}
		l.Error("Weather save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleDelete removes a stored report by id.
// @Summary Delete a stored report
// @Description Deletes a stored report by its storage identifier.
// @Tags weather
// @Produce json
// @Param id path int true "Storage identifier"
// @Success 200 {object} models.DeleteResponse "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /weather/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a positive integer",
		})
	}

	resp, err := h.service.Delete(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrNoObservation) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Weather delete failed", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(resp)
}
