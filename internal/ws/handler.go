// Package ws pushes freshly built preview documents to connected UI clients
// over WebSocket. Every VFS mutation triggers a full rebuild; clients always
// receive whole documents, never patches, and stale builds are dropped so an
// older document can never overwrite a newer one.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/monitoring"
	"github.com/codecanvas/studio/internal/workspace"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Message is the frame sent to preview clients.
type Message struct {
	Type     string `json:"type"`
	Seq      uint64 `json:"seq,omitempty"`
	Revision uint64 `json:"revision,omitempty"`
	HTML     string `json:"html,omitempty"`
	Text     string `json:"message,omitempty"`
}

// Handler manages preview subscriptions.
type Handler struct {
	manager *workspace.Manager
	metrics *monitoring.Metrics
	logger  *logging.Logger

	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn

	// mu orders writes; lastSeq enforces last-submitted-wins delivery.
	mu      sync.Mutex
	lastSeq uint64
}

// NewHandler creates a new WebSocket handler.
func NewHandler(manager *workspace.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		manager: manager,
		metrics: metrics,
		logger:  logger,
		subs:    make(map[string]map[*subscriber]struct{}),
	}
}

// HandleConnection upgrades the request and streams preview builds for one
// workspace until the client disconnects. A "refresh" frame from the client
// forces a rebuild from the current snapshot.
func (h *Handler) HandleConnection(c *gin.Context) {
	w, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "workspace not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := &subscriber{conn: conn}
	h.register(w.ID, sub)
	defer h.unregister(w.ID, sub)

	h.metrics.WSConnections.Inc()
	defer h.metrics.WSConnections.Dec()

	// Initial document so the sandbox renders immediately.
	h.deliver(sub, w.Build())

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "refresh" {
			h.deliver(sub, h.timedBuild(w))
		}
	}
}

// Publish rebuilds the workspace and fans the result out to every
// subscriber. Handlers call this after each VFS mutation.
func (h *Handler) Publish(w *workspace.Workspace) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subs[w.ID]))
	for sub := range h.subs[w.ID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	result := h.timedBuild(w)
	for _, sub := range subs {
		h.deliver(sub, result)
	}
}

func (h *Handler) timedBuild(w *workspace.Workspace) workspace.BuildResult {
	start := time.Now()
	result := w.Build()
	h.metrics.ObserveBuild(time.Since(start))
	return result
}

// deliver writes one build frame, dropping it if a newer build has already
// been sent on this connection.
func (h *Handler) deliver(sub *subscriber, result workspace.BuildResult) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if result.Seq <= sub.lastSeq {
		h.metrics.BuildsSuperseded.Inc()
		return
	}
	sub.lastSeq = result.Seq

	if err := sub.conn.WriteJSON(Message{
		Type:     "preview",
		Seq:      result.Seq,
		Revision: result.Revision,
		HTML:     result.HTML,
	}); err != nil {
		h.logger.Debug("preview write failed", zap.Error(err))
	}
}

func (h *Handler) register(workspaceID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[workspaceID] == nil {
		h.subs[workspaceID] = make(map[*subscriber]struct{})
	}
	h.subs[workspaceID][sub] = struct{}{}
}

func (h *Handler) unregister(workspaceID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[workspaceID], sub)
	if len(h.subs[workspaceID]) == 0 {
		delete(h.subs, workspaceID)
	}
}
