package service

import (
	"context"
	"database/sql"
	"os"
	"runtime"

	"github.com/rafacas/sysstats"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-fin-advisor/src/client"
	"gitlab.com/open-soft/go-fin-advisor/src/model"
	"gitlab.com/open-soft/go-fin-advisor/src/utils"
)

type HealthService struct {
	DB          *sql.DB
	RDB         *redis.Client
	Ctx         *context.Context
	Backend     client.AnalysisBackendInterface
	TimeService utils.TimeServiceInterface
}

func (h *HealthService) HealthCheck() model.AppHealth {
	dbStatus := model.StatusOk
	if h.DB.Ping() != nil {
		dbStatus = model.StatusFail
	}

	redisStatus := model.StatusOk
	if h.RDB.Ping(*h.Ctx).Err() != nil {
		redisStatus = model.StatusFail
	}

	backendStatus := model.StatusOk
	if _, err := h.Backend.Health(); err != nil {
		backendStatus = model.StatusFail
	}

	features := []string{"Advisor Chat", "Market Data Pages", "Mock Fallbacks"}
	if len(os.Getenv("TWELVE_DATA_API_KEY")) == 0 {
		features = []string{"Advisor Chat (degraded)", "Mock Fallbacks"}
	}
	if backendStatus == model.StatusOk {
		features = append(features, "Document Analysis", "SEC Filings Analysis")
	}

	memStats, _ := sysstats.GetMemStats()
	loadAvg, _ := sysstats.GetLoadAvg()

	status := model.StatusOk
	if dbStatus == model.StatusFail || redisStatus == model.StatusFail {
		status = model.StatusFail
	}

	return model.AppHealth{
		Status:        status,
		DbStatus:      dbStatus,
		RedisStatus:   redisStatus,
		BackendStatus: backendStatus,
		Features:      features,
		Memory:        memStats,
		LoadAvg:       loadAvg,
		Cores:         runtime.NumCPU(),
		Goroutines:    runtime.NumGoroutine(),
		DateTime:      h.TimeService.GetNowDateTimeString(),
	}
}
