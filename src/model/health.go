package model

import (
	"github.com/rafacas/sysstats"
)

const (
	StatusOk   = "ok"
	StatusFail = "fail"
)

type AppHealth struct {
	Status        string            `json:"status"`
	DbStatus      string            `json:"dbStatus"`
	RedisStatus   string            `json:"redisStatus"`
	BackendStatus string            `json:"backendStatus"`
	Features      []string          `json:"features"`
	Memory        sysstats.MemStats `json:"memory"`
	LoadAvg       sysstats.LoadAvg  `json:"loadAvg"`
	Cores         int               `json:"cores"`
	Goroutines    int               `json:"goroutines"`
	DateTime      string            `json:"dateTime"`
}
