package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mindpage/app-journal/internal/config"
	"github.com/mindpage/app-journal/internal/observability"
	"github.com/mindpage/app-journal/internal/utils"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports service health including MongoDB and Redis connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is degraded"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "health_check"),
		attribute.String("service", "health"),
	)

	logger := observability.Logger()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	_, mongoSpan := utils.TraceExternalService(ctx, "mongodb", "ping")
	if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
		health.Status = "degraded"
		health.Services["mongodb"] = "unhealthy"
		logger.Error("mongodb health check failed", zap.Error(err))
	} else {
		health.Services["mongodb"] = "healthy"
	}
	mongoSpan.End()

	_, redisSpan := utils.TraceExternalService(ctx, "redis", "ping")
	if err := config.Redis.Ping(ctx).Err(); err != nil {
		health.Status = "degraded"
		health.Services["redis"] = "unhealthy"
		logger.Error("redis health check failed", zap.Error(err))
	} else {
		health.Services["redis"] = "healthy"
	}
	redisSpan.End()

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	_, responseSpan := utils.TraceResponseSerialization(ctx, "success")
	c.JSON(status, health)
	responseSpan.End()

	logger.Debug("HealthCheck completed",
		zap.String("status", health.Status),
		zap.Duration("total_duration", time.Since(startTime)))
}
