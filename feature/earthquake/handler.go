package earthquake

import (
	"errors"

	"quake-manager/core/logger"
	"quake-manager/feature/earthquake/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for seismic events.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the earthquake routes.
// The history route is registered before the source route so that
// "/history/:country" is not swallowed by "/:source".
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/earthquakes")
	group.Get("/history/:country", h.HandleHistory)
	group.Get("/:source", h.HandleGetBySource)
	group.Post("/", h.HandleSave)
	group.Delete("/:id", h.HandleDelete)
}

// HandleGetBySource returns recent events for a source.
// @Summary Query seismic events by source
// @Description Returns recent events from USGS, EMSC or the local store (DB), optionally filtered by country.
// @Tags earthquakes
// @Accept json
// @Produce json
// @Param source path string true "Data source (USGS, EMSC, DB)"
// @Param country query string false "Country filter (case-insensitive substring)"
// @Param limit query int false "Maximum results (default 10)"
// @Success 200 {array} models.Event "Events or NoData marker"
// @Failure 400 {object} map[string]string "Invalid source"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /earthquakes/{source} [get]
func (h *Handler) HandleGetBySource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	source := c.Params("source")
	countryFilter := c.Query("country")
	limit := c.QueryInt("limit", DefaultQueryLimit)

	events, noData, err := h.service.GetEarthquakes(c.Context(), source, countryFilter, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidSource) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "source must be one of USGS, EMSC, or DB",
			})
		}
		l.Error("Earthquake query failed", zap.String("source", source), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	if noData != nil {
		return c.JSON(noData)
	}
	return c.JSON(events)
}

// HandleHistory returns the stored history for a country.
// @Summary Country history
// @Description Returns stored events for a country, newest first. Reads the local store only.
// @Tags earthquakes
// @Accept json
// @Produce json
// @Param country path string true "Country name"
// @Param limit query int false "Maximum results (default 50)"
// @Success 200 {object} models.HistoryResponse "History"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /earthquakes/history/{country} [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	countryName := c.Params("country")
	limit := c.QueryInt("limit", DefaultHistoryLimit)

	resp, err := h.service.HistoryByCountry(c.Context(), countryName, limit)
	if err != nil {
		l.Error("History query failed", zap.String("country", countryName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(resp)
}

// HandleSave persists a manual report or an upstream import.
// @Summary Save a seismic event
// @Description Persists a manual report, or imports an upstream event when eventId and a valid source are supplied.
// @Tags earthquakes
// @Accept json
// @Produce json
// @Param event body models.SaveRequest true "Event submission"
// @Success 201 {object} models.SaveResponse "Saved"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 404 {object} map[string]string "External event not found"
// @Failure 409 {object} map[string]string "Duplicate eventId"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /earthquakes [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	resp, err := h.service.Save(c.Context(), req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation failed",
				"reasons": vErr.Reasons,
			})
		case errors.Is(err, ErrEventNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, ErrDuplicateEvent):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleDelete removes a stored event by id.
// @Summary Delete a stored event
// @Description Deletes a stored event by its storage identifier.
// @Tags earthquakes
// @Accept json
// @Produce json
// @Param id path int true "Storage identifier"
// @Success 200 {object} models.DeleteResponse "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /earthquakes/{id} [delete]
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
		if errors.Is(err, ErrEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Delete failed", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(resp)
}
