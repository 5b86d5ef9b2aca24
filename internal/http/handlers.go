// Package http contains the gin handlers for the studio REST API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/monitoring"
	"github.com/codecanvas/studio/internal/service"
	"github.com/codecanvas/studio/internal/templates"
	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/workspace"
	"github.com/codecanvas/studio/internal/ws"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	manager   *workspace.Manager
	registry  *service.Registry
	templates *templates.Registry
	publisher *ws.Handler
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	manager *workspace.Manager,
	registry *service.Registry,
	templateReg *templates.Registry,
	publisher *ws.Handler,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		manager:   manager,
		registry:  registry,
		templates: templateReg,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "CodeCanvas Studio",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"workspaces": h.manager.Stats(),
		"services":   h.registry.Stats(),
	})
}

// CreateWorkspace spawns a new workspace, optionally from a template.
func (h *Handlers) CreateWorkspace(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Template string `json:"template"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w := h.manager.Create(req.Name)
	if req.Template != "" {
		if err := h.templates.Apply(req.Template, w); err != nil {
			h.manager.Close(w.ID)
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown template: " + req.Template})
			return
		}
	}

	h.metrics.WorkspacesActive.Inc()
	h.syncFileGauge()
	h.logger.Info("workspace created",
		zap.String("id", w.ID),
		zap.String("template", req.Template))

	c.JSON(http.StatusCreated, w.Describe())
}

// ListWorkspaces lists all live workspaces
func (h *Handlers) ListWorkspaces(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"workspaces": h.manager.List(),
		"stats":      h.manager.Stats(),
	})
}

// CloseWorkspace destroys a workspace
func (h *Handlers) CloseWorkspace(c *gin.Context) {
	id := c.Param("id")
	if !h.manager.Close(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}
	h.metrics.WorkspacesActive.Dec()
	h.syncFileGauge()
	c.JSON(http.StatusOK, gin.H{"closed": id})
}

// Preview builds and returns the sandbox document for a workspace. The
// response is the full HTML text; callers load it into an isolated,
// script-enabled iframe.
func (h *Handlers) Preview(c *gin.Context) {
	w, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}

	result := w.Build()
	c.Header("X-Build-Seq", uintString(result.Seq))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(result.HTML))
}

// ListServices lists all registered tool services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if s := c.Query("category"); s != "" {
		cat := types.Category(s)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteTool runs one tool call on behalf of the agent layer. Successful
// file mutations trigger a preview rebuild pushed to subscribers.
func (h *Handlers) ExecuteTool(c *gin.Context) {
	var req struct {
		ToolID  string                 `json:"tool_id" binding:"required"`
		Params  map[string]interface{} `json:"params"`
		Context *types.Context         `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.metrics.ToolCalls.WithLabelValues(req.ToolID).Inc()

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, req.Context)
	if err != nil {
		h.metrics.ToolErrors.WithLabelValues(req.ToolID).Inc()
	}

	if result != nil && result.Success && mutatesFiles(req.ToolID) {
		h.syncFileGauge()
		if w, ok := h.workspaceFromContext(req.Context); ok {
			h.publisher.Publish(w)
		}
	}

	c.JSON(http.StatusOK, result)
}

// ListTemplates lists available starter templates
func (h *Handlers) ListTemplates(c *gin.Context) {
	all := h.templates.List()
	out := make([]gin.H, 0, len(all))
	for _, m := range all {
		out = append(out, gin.H{
			"id":          m.ID,
			"name":        m.Name,
			"description": m.Description,
			"files":       len(m.Files),
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

// syncFileGauge refreshes the file-count gauge after any operation that
// changes the file population.
func (h *Handlers) syncFileGauge() {
	h.metrics.FilesTotal.Set(float64(h.manager.Stats().TotalFiles))
}

func (h *Handlers) workspaceFromContext(ctx *types.Context) (*workspace.Workspace, bool) {
	if ctx == nil || ctx.WorkspaceID == nil {
		return nil, false
	}
	return h.manager.Get(*ctx.WorkspaceID)
}

// mutatesFiles reports whether a successful call to this tool changed VFS
// content and therefore requires a rebuild.
func mutatesFiles(toolID string) bool {
	return toolID == "files.create" || toolID == "files.delete"
}
