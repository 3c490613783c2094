package api

import "net/http"

type docsResponse struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

type endpointInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// handleDocs serves a JSON description of the API, available on both the docs
// and redoc paths.
func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := docsResponse{
		Title:       h.meta.Title,
		Description: h.meta.Description,
		Version:     h.meta.Version,
		Endpoints: []endpointInfo{
			{Method: http.MethodGet, Path: "/api/health", Description: "Service health and version"},
			{Method: http.MethodGet, Path: "/api/states", Description: "Supported and loaded states"},
			{Method: http.MethodGet, Path: "/api/states/{state}", Description: "Compliance rules for a state"},
			{Method: http.MethodPut, Path: "/api/states/{state}", Description: "Store compliance rules for a state"},
			{Method: http.MethodPost, Path: "/api/calculate", Description: "Calculate a salary breakdown for an employee"},
			{Method: http.MethodPost, Path: "/api/reports", Description: "Generate and persist a payroll report"},
		},
	}
	writeJSON(w, http.StatusOK, resp)
}
