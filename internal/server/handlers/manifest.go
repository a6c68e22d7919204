package handlers

import (
	"net/http"

	"github.com/agentstation/unitmap/internal/server/response"
)

// Tool describes one callable tool in the MCP-style manifest.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Method      string         `json:"method"`
	Path        string         `json:"path"`
	InputSchema map[string]any `json:"input_schema"`
}

// Manifest lists the tools exposed by the server.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Tools   []Tool `json:"tools"`
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// HandleManifest handles GET /api/v1/mcp/manifest.
func (h *Handlers) HandleManifest(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Path[:len(r.URL.Path)-len("/mcp/manifest")]

	response.OK(w, Manifest{
		Name:    "unitmap",
		Version: h.version,
		Tools: []Tool{
			{
				Name:        "resolve_unit",
				Description: "Map a free-form faculty, centre or department name to its canonical unit.",
				Method:      http.MethodPost,
				Path:        base + "/tools/resolve_unit",
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{"query": stringProp("Unit name, acronym or alias as typed by the user")},
					"required":   []string{"query"},
				},
			},
			{
				Name:        "staff_search",
				Description: "Search the staff directory. The faculty is resolved to a unit before searching.",
				Method:      http.MethodPost,
				Path:        base + "/tools/staff_search",
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"faculty":    stringProp("Faculty, centre or division; empty for all"),
						"department": stringProp("Department code; empty for all"),
						"name":       stringProp("Staff name fragment"),
						"expertise":  stringProp("Area of expertise"),
					},
				},
			},
		},
	})
}
