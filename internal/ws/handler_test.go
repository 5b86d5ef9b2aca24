package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecanvas/studio/internal/logging"
	"github.com/codecanvas/studio/internal/monitoring"
	"github.com/codecanvas/studio/internal/workspace"
)

func newTestHandler(t *testing.T) (*Handler, *workspace.Manager, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := workspace.NewManager()
	handler := NewHandler(manager, monitoring.NewWith(prometheus.NewRegistry()), logging.NewNop())

	router := gin.New()
	router.GET("/workspaces/:id/ws", handler.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return handler, manager, srv
}

func dial(t *testing.T, srv *httptest.Server, workspaceID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/workspaces/" + workspaceID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestInitialPreviewFrame(t *testing.T) {
	_, manager, srv := newTestHandler(t)
	w := manager.Create("demo")

	conn := dial(t, srv, w.ID)
	msg := readFrame(t, conn)

	assert.Equal(t, "preview", msg.Type)
	assert.Equal(t, uint64(1), msg.Seq)
	assert.Contains(t, msg.HTML, "<html")
}

func TestPublishAfterMutation(t *testing.T) {
	handler, manager, srv := newTestHandler(t)
	w := manager.Create("demo")

	conn := dial(t, srv, w.ID)
	readFrame(t, conn)

	require.NoError(t, w.FS.Create("src/main.js", "export const x = 1;"))
	handler.Publish(w)

	msg := readFrame(t, conn)
	assert.Equal(t, "preview", msg.Type)
	assert.Equal(t, uint64(2), msg.Seq)
	assert.Contains(t, msg.HTML, "importmap")
}

func TestRefreshFrame(t *testing.T) {
	_, manager, srv := newTestHandler(t)
	w := manager.Create("demo")

	conn := dial(t, srv, w.ID)
	readFrame(t, conn)

	require.NoError(t, conn.WriteJSON(Message{Type: "refresh"}))
	msg := readFrame(t, conn)
	assert.Equal(t, uint64(2), msg.Seq)
}

func TestStaleBuildDropped(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	sub := &subscriber{lastSeq: 5}
	handler.deliver(sub, workspace.BuildResult{Seq: 3, HTML: "old"})
	assert.Equal(t, uint64(5), sub.lastSeq)
}

func TestUnknownWorkspaceRejected(t *testing.T) {
	_, _, srv := newTestHandler(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/workspaces/ghost/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
