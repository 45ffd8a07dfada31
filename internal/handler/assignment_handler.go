package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/pkg/logger"
	"staffboard/prometheus"
)

// State returns the full roster snapshot for read-tier sessions.
func State(c echo.Context) error {
	log := logger.FromEcho(c)

	snap, err := roster.Snapshot()
	if err != nil {
		log.Error("Failed to read snapshot", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read state"})
	}

	return c.JSON(http.StatusOK, snap)
}

// Assign places a worker into an area, or unassigns it when area_id is null.
func Assign(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		WorkerID uint  `json:"worker_id"`
		AreaID   *uint `json:"area_id"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.Assign(req.WorkerID, req.AreaID); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker assigned",
		zap.Uint("worker_id", req.WorkerID),
		zap.Any("area_id", req.AreaID))
	mutated("assign")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Distribute runs the fair-distribution pass. An empty eligible set is a
// successful no-op with an explanatory reason, never an error.
func Distribute(c echo.Context) error {
	log := logger.FromEcho(c)

	start := time.Now()
	result, err := roster.Distribute()
	if err != nil {
		log.Error("Distribution pass failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "distribution failed"})
	}
	prometheus.DistributeDuration.Observe(time.Since(start).Seconds())

	log.Info("Distribution pass completed",
		zap.Int("assigned", result.Assigned),
		zap.Int("eligible", result.Eligible),
		zap.String("reason", result.Reason))
	mutated("distribute")
	return c.JSON(http.StatusOK, echo.Map{
		"ok":       true,
		"assigned": result.Assigned,
		"eligible": result.Eligible,
		"reason":   result.Reason,
	})
}

// Reset unassigns every worker.
func Reset(c echo.Context) error {
	log := logger.FromEcho(c)

	if err := roster.ResetAll(); err != nil {
		return storeError(c, log, err)
	}

	log.Info("All assignments reset")
	mutated("reset")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
