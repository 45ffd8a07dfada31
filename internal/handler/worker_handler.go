package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/internal/model"
	"staffboard/pkg/database"
	"staffboard/pkg/logger"
)

// ListWorkersPublic returns id and name for every worker. Unauthenticated:
// the self-service login picker needs it before any token exists.
func ListWorkersPublic(c echo.Context) error {
	log := logger.FromEcho(c)

	var workers []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	result := database.GetDB().Model(&model.Worker{}).Order("name").Find(&workers)
	if result.Error != nil {
		log.Error("Failed to list workers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve workers"})
	}

	return c.JSON(http.StatusOK, workers)
}

// CreateWorker handles creating a new worker and its unassigned placement.
func CreateWorker(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name  string `json:"name"`
		Radio string `json:"radio"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	worker, err := roster.CreateWorker(req.Name, req.Radio)
	if err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker created",
		zap.Uint("worker_id", worker.ID),
		zap.String("name", worker.Name))
	mutated("create_worker")
	return c.JSON(http.StatusCreated, worker)
}

// UpdateWorker handles editing a worker's name, radio label and status.
func UpdateWorker(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid worker id"})
	}

	var req struct {
		Name   string `json:"name"`
		Radio  string `json:"radio"`
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.UpdateWorker(id, req.Name, req.Radio, req.Status); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker updated", zap.Uint("worker_id", id))
	mutated("update_worker")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteWorker removes a worker; its placement row goes with it.
func DeleteWorker(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid worker id"})
	}

	if err := roster.DeleteWorker(id); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker deleted", zap.Uint("worker_id", id))
	mutated("delete_worker")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// SetStatus handles the admin status change for any worker.
func SetStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		WorkerID uint   `json:"worker_id"`
		Status   string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.SetStatus(req.WorkerID, req.Status); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker status changed",
		zap.Uint("worker_id", req.WorkerID),
		zap.String("status", req.Status))
	mutated("set_status")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// SelfSetStatus lets a worker change its own status with a self-service token.
func SelfSetStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	workerID, ok := selfWorkerID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is not bound to a worker"})
	}

	if err := roster.SetStatus(workerID, req.Status); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker self-service status change",
		zap.Uint("worker_id", workerID),
		zap.String("status", req.Status))
	mutated("self_set_status")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// SelfAssign lets a worker move itself into an area (or out of all areas).
// Capacity is enforced the same way as on the admin path.
func SelfAssign(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		AreaID *uint `json:"area_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	workerID, ok := selfWorkerID(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "token is not bound to a worker"})
	}

	if err := roster.Assign(workerID, req.AreaID); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker self-service area change", zap.Uint("worker_id", workerID))
	mutated("self_assign")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// selfWorkerID resolves which worker a self-service request acts on: the
// worker id bound into the token.
func selfWorkerID(c echo.Context) (uint, bool) {
	id, ok := c.Get("worker_id").(uint)
	return id, ok
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
