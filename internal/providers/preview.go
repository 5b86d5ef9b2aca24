package providers

import (
	"context"
	"fmt"

	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/workspace"
)

// Preview lets the agent request a sandbox document explicitly, outside the
// automatic rebuild-on-write cycle.
type Preview struct {
	manager *workspace.Manager
}

// NewPreview creates the preview provider.
func NewPreview(manager *workspace.Manager) *Preview {
	return &Preview{manager: manager}
}

// Definition returns the service definition
func (p *Preview) Definition() types.Service {
	return types.Service{
		ID:           "preview",
		Name:         "Sandbox Preview",
		Description:  "Build the self-contained sandbox document for a workspace",
		Category:     types.CategoryPreview,
		Capabilities: []string{"build_preview"},
		Tools: []types.Tool{
			{
				ID:          "preview.render",
				Name:        "Render Preview",
				Description: "Build the sandbox HTML document from the current workspace snapshot",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a preview tool
func (p *Preview) Execute(ctx context.Context, toolID string, params map[string]interface{}, wsCtx *types.Context) (*types.Result, error) {
	if toolID != "preview.render" {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	w, err := resolveWorkspace(p.manager, wsCtx)
	if err != nil {
		return Failure(err.Error())
	}

	result := w.Build()
	return Success(map[string]interface{}{
		"html":     result.HTML,
		"seq":      result.Seq,
		"revision": result.Revision,
	})
}
