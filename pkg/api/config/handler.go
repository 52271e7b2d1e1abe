package config

import (
	"net/http"
	"strings"

	"hagwon_strategy/pkg/api/respond"
	"hagwon_strategy/pkg/core/agent"
	"hagwon_strategy/pkg/models"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	AgentMgr *agent.Manager
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{AgentMgr: agentMgr}
}

// HandleConfig reports the active text provider and the configured ones.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodGet) {
		return
	}
	respond.JSON(w, http.StatusOK, h.current())
}

// HandleSwitch changes the provider used by every later generation.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	if !respond.CORS(w, r, http.MethodPost) {
		return
	}

	var req SwitchRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}
	name := strings.TrimSpace(req.Provider)
	if name == "" {
		respond.Error(w, r, models.NewValidationError(nil, models.FieldError{Field: "provider", Error: "is required"}))
		return
	}
	if err := h.AgentMgr.SetGlobalProvider(name); err != nil {
		respond.Error(w, r, models.NewValidationError(nil, models.FieldError{Field: "provider", Error: err.Error()}))
		return
	}
	respond.JSON(w, http.StatusOK, h.current())
}

func (h *Handler) current() Response {
	return Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      h.AgentMgr.ProviderNames(),
	}
}
