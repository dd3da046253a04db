package integrity

import (
	"catalog-sync/core/logger"
	"catalog-sync/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.DatabaseReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs the storage (bucket folders, feed object) and database (report tables) checks.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	result := h.storageReport(c, false)

	if dbReport, err := h.service.CheckDatabase(); err != nil {
		result["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		result["database"] = dbReport
	}

	return c.JSON(result)
}

// HandleStorageCheck checks the bucket layout and the feed object.
// @Summary Check Storage
// @Description Checks the bucket folders and the feed object. Optionally creates missing folders.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	return c.JSON(h.storageReport(c, c.Query("fix") == "true"))
}

func (h *Handler) storageReport(c *fiber.Ctx, fix bool) map[string]interface{} {
	l := logger.WithRayID(h.service.logger, c)
	ctx := c.UserContext()
	result := make(map[string]interface{})

	missing, err := h.service.CheckStructure(ctx)
	switch {
	case err != nil:
		l.Error("Structure check failed", zap.Error(err))
		result["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	case len(missing) > 0 && fix:
		l.Info("Attempting to fix missing folders", zap.Strings("missing", missing))
		if err := h.service.FixStructure(ctx, missing); err != nil {
			result["structure"] = map[string]interface{}{"status": "error", "error": err.Error(), "missing": missing}
		} else {
			result["structure"] = map[string]interface{}{"status": "fixed", "fixed": missing}
		}
	default:
		if len(missing) > 0 {
			l.Warn("Missing folders detected", zap.Strings("missing", missing))
		}
		result["structure"] = map[string]interface{}{"status": "checked", "missing": missing}
	}

	feed, err := h.service.CheckFeed(ctx)
	switch {
	case err != nil:
		l.Error("Feed check failed", zap.Error(err))
		result["feed"] = map[string]interface{}{"status": "error", "error": err.Error()}
	case feed == nil:
		result["feed"] = map[string]interface{}{"status": "skipped"}
	default:
		if feed.Status != "ok" {
			l.Warn("Feed object is not usable", zap.String("object", feed.Object), zap.String("status", feed.Status))
		}
		result["feed"] = feed
	}

	return result
}

// HandleDatabaseCheck checks the report tables.
// @Summary Check Database Schema
// @Description Checks that the run report tables match the expected models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.DatabaseReport "Database Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting database schema check")

	report, err := h.service.CheckDatabase()
	if err != nil {
		l.Error("Database schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
