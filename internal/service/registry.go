// Package service implements the tool registry exposed to the agent layer.
// Providers register tool definitions; the agent discovers and executes them
// by dotted tool ID.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/codecanvas/studio/internal/types"
)

// Provider interface for tool implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, wsCtx *types.Context) (*types.Result, error)
}

// Registry manages tool discovery and execution
type Registry struct {
	services sync.Map
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.services.Store(def.ID, provider)
	return nil
}

// Get retrieves a provider by service ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered service definitions
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a tool. Tool IDs are "service.tool" shaped; everything before
// the first dot selects the provider.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, wsCtx *types.Context) (*types.Result, error) {
	parts := strings.SplitN(toolID, ".", 2)
	if len(parts) < 2 {
		return failure(fmt.Sprintf("invalid tool ID format: %s", toolID)),
			fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, ok := r.Get(parts[0])
	if !ok {
		return failure(fmt.Sprintf("service not found: %s", parts[0])),
			fmt.Errorf("service not found: %s", parts[0])
	}

	return provider.Execute(ctx, toolID, params, wsCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
