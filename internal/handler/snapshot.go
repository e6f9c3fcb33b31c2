package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

// SnapshotReader fetches a stored snapshot by id.
type SnapshotReader interface {
	GetSnapshot(ctx context.Context, id int64) (*domain.Snapshot, error)
}

// SnapshotHandler serves stored snapshots, raw sample included.
type SnapshotHandler struct {
	reader SnapshotReader
	logger logger.Logger
}

// NewSnapshotHandler creates a SnapshotHandler.
func NewSnapshotHandler(reader SnapshotReader, log logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{reader: reader, logger: log}
}

// GetSnapshot returns one snapshot.
// GET /snapshots/:id
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "invalid snapshot id",
		})
		return
	}

	snap, readErr := h.reader.GetSnapshot(c.Request.Context(), id)
	if readErr != nil {
		if errors.Is(readErr, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "snapshot not found",
			})
			return
		}

		h.logger.Error("Snapshot lookup failed",
			logger.Int64("snapshot_id", id),
			logger.Error(readErr),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "storage unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, snap)
}
