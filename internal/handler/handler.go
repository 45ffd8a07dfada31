package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"staffboard/internal/hub"
	"staffboard/internal/store"
	"staffboard/prometheus"
)

var (
	roster   *store.Store
	stateHub *hub.Hub
)

// Init wires the handler package to the roster store and the broadcast hub.
// Call once at startup before registering routes.
func Init(st *store.Store, h *hub.Hub) {
	roster = st
	stateHub = h
}

// mutated records a committed mutation and pushes the new snapshot to every
// connected observer.
func mutated(operation string) {
	prometheus.RecordMutation(operation)
	stateHub.BroadcastState()
}

// storeError maps store errors onto HTTP responses. Rejections never leave
// partial state behind, so plain status mapping is enough.
func storeError(c echo.Context, log *zap.Logger, err error) error {
	if ce, ok := store.IsCapacityError(err); ok {
		prometheus.CapacityRejectionCounter.Inc()
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    ce.Error(),
			"capacity": ce.Capacity,
		})
	}
	switch {
	case errors.Is(err, store.ErrWorkerNotFound),
		errors.Is(err, store.ErrAreaNotFound),
		errors.Is(err, store.ErrTeamNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNameRequired),
		errors.Is(err, store.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		log.Error("store operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
