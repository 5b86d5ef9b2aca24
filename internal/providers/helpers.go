package providers

import (
	"fmt"

	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/workspace"
)

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	return &types.Result{Success: false, Error: &message}, nil
}

// resolveWorkspace extracts the target workspace from the call context.
func resolveWorkspace(manager *workspace.Manager, wsCtx *types.Context) (*workspace.Workspace, error) {
	if wsCtx == nil || wsCtx.WorkspaceID == nil || *wsCtx.WorkspaceID == "" {
		return nil, fmt.Errorf("workspace_id required in context")
	}
	w, ok := manager.Get(*wsCtx.WorkspaceID)
	if !ok {
		return nil, fmt.Errorf("workspace not found: %s", *wsCtx.WorkspaceID)
	}
	return w, nil
}

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}
