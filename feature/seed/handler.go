package seed

import (
	"errors"

	"nb-init/core/journal"
	"nb-init/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for seed runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the seed routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/seed")
	group.Post("/", h.HandleStart)
	group.Get("/status", h.HandleStatus)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
	group.Get("/catalog", h.HandleCatalog)
}

// HandleStart starts a seed run in the background.
// @Summary Start Seed Run
// @Description Reconciles every seed document into NetBox in the background. Body fields override the configured options.
// @Tags seed
// @Accept json
// @Produce json
// @Param request body RunRequest false "Run options"
// @Success 202 {object} RunAccepted "Run started"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Run in progress"
// @Router /seed [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
		}
	}
	if req.Workers < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "workers must not be negative"})
	}

	id, err := h.service.Start(req)
	if errors.Is(err, ErrRunInProgress) {
		running, _ := h.service.Status()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "run_id": running})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Seed run started", zap.String("run_id", id))
	return c.Status(fiber.StatusAccepted).JSON(RunAccepted{RunID: id})
}

// HandleStatus reports the active run and the last finished report.
// @Summary Seed Status
// @Description Returns whether a run is active and the full report of the last finished run.
// @Tags seed
// @Produce json
// @Success 200 {object} StatusResponse "Status"
// @Router /seed/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	running, last := h.service.Status()
	return c.JSON(StatusResponse{Running: running != "", RunID: running, Last: last})
}

// HandleListRuns lists journaled runs.
// @Summary List Runs
// @Description Lists journaled runs, most recent first.
// @Tags seed
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} journal.Run "Runs"
// @Failure 501 {object} map[string]string "Journal disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /seed/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", 20))
	if errors.Is(err, ErrJournalDisabled) {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}

// HandleGetRun returns a journaled run with its items.
// @Summary Get Run
// @Description Returns one journaled run with every item outcome.
// @Tags seed
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} journal.Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 501 {object} map[string]string "Journal disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /seed/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.GetRun(c.Context(), c.Params("id"))
	switch {
	case errors.Is(err, ErrJournalDisabled):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, journal.ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to get run", zap.String("run_id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(run)
}

// HandleCatalog lists the supported entity types in processing order.
// @Summary Entity Catalog
// @Description Lists every supported entity type with its rank, NetBox path and unique key.
// @Tags seed
// @Produce json
// @Success 200 {array} CatalogEntry "Catalog"
// @Router /seed/catalog [get]
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	descriptors := h.service.Catalog()
	entries := make([]CatalogEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, newCatalogEntry(d))
	}
	return c.JSON(entries)
}
