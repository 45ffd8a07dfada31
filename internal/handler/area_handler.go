package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/internal/model"
	"staffboard/pkg/database"
	"staffboard/pkg/logger"
)

// ListAreasPublic returns id and name for every area. Unauthenticated, used
// alongside the worker login picker.
func ListAreasPublic(c echo.Context) error {
	log := logger.FromEcho(c)

	var areas []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	result := database.GetDB().Model(&model.Area{}).Order("name").Find(&areas)
	if result.Error != nil {
		log.Error("Failed to list areas", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve areas"})
	}

	return c.JSON(http.StatusOK, areas)
}

// CreateArea handles creating a new area.
func CreateArea(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	area, err := roster.CreateArea(req.Name, req.Capacity)
	if err != nil {
		return storeError(c, log, err)
	}

	log.Info("Area created",
		zap.Uint("area_id", area.ID),
		zap.String("name", area.Name),
		zap.Int("capacity", area.Capacity))
	mutated("create_area")
	return c.JSON(http.StatusCreated, area)
}

// UpdateArea handles editing an area's name and capacity.
func UpdateArea(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area id"})
	}

	var req struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.UpdateArea(id, req.Name, req.Capacity); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Area updated", zap.Uint("area_id", id))
	mutated("update_area")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// SetAreaAutoAssign toggles whether the distribution pass may touch the area.
func SetAreaAutoAssign(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area id"})
	}

	var req struct {
		AutoAssignable bool `json:"auto_assignable"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := roster.SetAreaAutoAssign(id, req.AutoAssignable); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Area auto-assign toggled",
		zap.Uint("area_id", id),
		zap.Bool("auto_assignable", req.AutoAssignable))
	mutated("toggle_auto_assign")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteArea removes an area; every placement pointing at it becomes
// unassigned, workers are untouched.
func DeleteArea(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area id"})
	}

	if err := roster.DeleteArea(id); err != nil {
		return storeError(c, log, err)
	}

	log.Info("Area deleted", zap.Uint("area_id", id))
	mutated("delete_area")
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
