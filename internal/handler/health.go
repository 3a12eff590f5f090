package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/selimb1/conta100/internal/infra"

	"github.com/gin-gonic/gin"
)

// Health returns a JSON health check response.
// Probes the Conta API and reports the breaker state; never exposes internals.
func Health(api *infra.ContaClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		apiStatus := "connected"
		if api.Ping(ctx) != nil {
			apiStatus = "error"
		}

		status := http.StatusOK
		if apiStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"api":     apiStatus,
			"circuit": api.BreakerState().String(),
		})
	}
}
