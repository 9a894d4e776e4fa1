package controller

import (
	"encoding/json"
	"net/http"

	"gitlab.com/open-soft/go-fin-advisor/src/service"
)

type HealthController struct {
	HealthService *service.HealthService
}

func (h *HealthController) GetHealthCheckAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	encoded, _ := json.Marshal(h.HealthService.HealthCheck())
	_, _ = w.Write(encoded)
}
