package controllers

import (
	"encoding/json"
	"net/http"

	"compass/compass/config"
)

type HealthController struct {
	providers map[string]string
}

func NewHealthController(cfg config.Config) *HealthController {
	return &HealthController{providers: map[string]string{
		"search":  cfg.SearchProvider,
		"news":    cfg.NewsSource,
		"llm":     cfg.LLMProvider,
		"model":   cfg.LLMModel,
		"fetcher": cfg.ScrapeFetcher,
		"body":    cfg.ScrapeBodyMode,
	}}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Providers map[string]string `json:"providers"`
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{Status: "ok", Providers: h.providers})
}
