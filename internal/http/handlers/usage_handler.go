// README: Operator endpoint for NLU classification statistics.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UsageStats is the usage-service surface the transport needs.
type UsageStats interface {
	Stats(ctx context.Context, window time.Duration) (map[string]int64, error)
}

type UsageHandler struct {
	usage UsageStats
}

func NewUsageHandler(usage UsageStats) *UsageHandler {
	return &UsageHandler{usage: usage}
}

// Stats handles GET /api/usage/stats. The optional "window" query
// parameter takes a Go duration string and defaults to 24h.
func (h *UsageHandler) Stats(c *gin.Context) {
	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(c, http.StatusBadRequest, "invalid window")
			return
		}
		window = d
	}

	counts, err := h.usage.Stats(c.Request.Context(), window)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"window": window.String(),
		"counts": counts,
	})
}
