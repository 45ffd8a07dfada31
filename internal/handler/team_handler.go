package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/pkg/logger"
)

// CreateTeam handles creating a new team label.
func CreateTeam(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	team, err := roster.CreateTeam(req.Name)
	if err != nil {
		return storeError(c, log, err)
	}

	log.Info("Team created", zap.Uint("team_id", team.ID), zap.String("name", team.Name))
	mutated("create_team")
	return c.JSON(http.StatusCreated, team)
}

// DeleteTeam removes a team; workers referencing it lose the label only.
func DeleteTeam(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}

	if err := roster.DeleteTeam(id); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Team deleted", zap.Uint("team_id", id))
	mutated("delete_team")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// AssignTeam sets or clears a worker's team label.
func AssignTeam(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		WorkerID uint  `json:"worker_id"`
		TeamID   *uint `json:"team_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.AssignTeam(req.WorkerID, req.TeamID); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Worker team changed",
		zap.Uint("worker_id", req.WorkerID),
		zap.Any("team_id", req.TeamID))
	mutated("assign_team")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
