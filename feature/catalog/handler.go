package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// PlanView is the JSON form of a plan.
type PlanView struct {
	Actions         []reconcile.Action              `json:"actions"`
	Rejected        []reconcile.MalformedRecordError `json:"rejected"`
	SkippedListings []reconcile.MalformedRecordError `json:"skipped_listings"`
	Summary         reconcile.PlanSummary           `json:"summary"`
}

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
	timeout time.Duration
}

// NewHandler creates a new HTTP handler. timeout bounds runs triggered over HTTP.
func NewHandler(service *Service, timeout time.Duration) *Handler {
	return &Handler{service: service, timeout: timeout}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")

	trigger := []fiber.Handler{}
	if n := h.service.cfg.TriggersPerMinute; n > 0 {
		trigger = append(trigger, limiter.New(limiter.Config{
			Max:        n,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many sync triggers"})
			},
		}))
	}
	group.Post("/", append(trigger, h.HandleSync)...)
	group.Get("/plan", h.HandlePlan)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
}

func (h *Handler) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// HandleSync triggers a sync run.
// @Summary Trigger Sync
// @Description Fetches the feed and the marketplace listings, reconciles them and applies the plan. Concurrent triggers share the run in flight.
// @Tags sync
// @Produce json
// @Param dry_run query bool false "Plan only, do not call the marketplace"
// @Success 200 {object} reconcile.RunReport "Run Report"
// @Failure 429 {object} map[string]string "Too Many Requests"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dryRun := h.service.DefaultDryRun()
	if v := c.Query("dry_run"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dry_run must be a boolean"})
		}
		dryRun = parsed
	}

	ctx, cancel := h.context(c)
	defer cancel()

	rep, shared, err := h.service.Sync(ctx, dryRun)
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("X-Sync-Shared", strconv.FormatBool(shared))
	return c.JSON(rep)
}

// HandlePlan returns the plan for the current feed.
// @Summary Get Sync Plan
// @Description Builds the plan without executing it. Nothing is stored.
// @Tags sync
// @Produce json
// @Success 200 {object} PlanView "Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	ctx, cancel := h.context(c)
	defer cancel()

	plan, err := h.service.Plan(ctx)
	if err != nil {
		l.Error("Planning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(PlanView{
		Actions:         plan.Actions,
		Rejected:        plan.Rejected,
		SkippedListings: plan.SkippedListings,
		Summary:         plan.Summary,
	})
}

// HandleListRuns returns the most recent runs.
// @Summary List Sync Runs
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {array} report.Run "Runs"
// @Failure 503 {object} map[string]string "History Disabled"
// @Router /sync/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.UserContext(), parseLimit(c.Query("limit")))
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one run.
// @Summary Get Sync Run
// @Description Returns the stored summary and outcomes of a run, or the archived report with full=true.
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Param full query bool false "Return the archived JSON report"
// @Success 200 {object} report.Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sync/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	id := c.Params("id")

	if c.QueryBool("full") {
		rep, err := h.service.ArchivedReport(c.UserContext(), id)
		if err != nil {
			return h.historyError(c, err)
		}
		return c.JSON(rep)
	}

	run, err := h.service.RunDetail(c.UserContext(), id)
	if err != nil {
		return h.historyError(c, err)
	}
	return c.JSON(run)
}

func (h *Handler) historyError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, report.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		status = fiber.StatusServiceUnavailable
	default:
		logger.WithRayID(h.service.logger, c).Error("Run history query failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
