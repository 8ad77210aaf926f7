package handlers

import (
	"attendance/db"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Workers  int    `json:"workers,omitempty"`
	Busy     int    `json:"busy"`
	Storage  string `json:"storage"`
}

type poolStats interface {
	Workers() int
	Busy() int
}

func (s *Services) Health(c *gin.Context) {
	result := HealthResponse{Status: "ok", Storage: "none"}
	if sqlDB, err := db.Instance.DB(); err == nil && sqlDB.PingContext(c.Request.Context()) == nil {
		result.Database = true
	}
	if stats, ok := s.Recognition.(poolStats); ok {
		result.Workers = stats.Workers()
		result.Busy = stats.Busy()
	}
	if s.Snapshots != nil {
		result.Storage = s.Snapshots.String()
	}
	status := http.StatusOK
	if !result.Database {
		result.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
