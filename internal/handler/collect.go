// Package handler contains the gin HTTP handlers for trend-tracker.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/trend-tracker/internal/domain"
	"github.com/jonesrussell/north-cloud/trend-tracker/internal/logger"
)

// CollectionRunner runs one collection pass.
type CollectionRunner interface {
	Run(ctx context.Context) (*domain.CollectionResult, error)
}

// CollectHandler triggers collection runs over HTTP. The endpoint is meant
// for an external cron; it performs the run synchronously and reports the
// outcome in the response.
type CollectHandler struct {
	runner CollectionRunner
	logger logger.Logger
}

// NewCollectHandler creates a CollectHandler.
func NewCollectHandler(runner CollectionRunner, log logger.Logger) *CollectHandler {
	return &CollectHandler{runner: runner, logger: log}
}

// HandleCollect runs a collection pass. An upstream feed failure maps to 502,
// a storage failure to 500; both leave the store untouched. The top_words
// summary keeps the [word, count] tuple shape consumers already parse.
func (h *CollectHandler) HandleCollect(c *gin.Context) {
	result, err := h.runner.Run(c.Request.Context())
	if err != nil {
		c.JSON(collectErrorStatus(err), gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"snapshot_id": result.SnapshotID,
		"top_words":   wordTuples(result.TopWords),
	})
}

// collectErrorStatus maps an error kind to an HTTP status code.
func collectErrorStatus(err error) int {
	if errors.Is(err, domain.ErrFeedUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// wordTuples renders word counts as [word, count] pairs.
func wordTuples(counts []domain.WordCount) [][]any {
	tuples := make([][]any, 0, len(counts))
	for _, wc := range counts {
		tuples = append(tuples, []any{wc.Word, wc.Count})
	}
	return tuples
}
