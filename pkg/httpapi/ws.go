package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

const (
	wsMaxMessageSize = 4096
	wsWriteWait      = 10 * time.Second
	wsIdleTimeout    = 5 * time.Minute
)

// WSHello is the first frame sent on a new connection.
type WSHello struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connection_id"`
}

// WSResult wraps one evaluation. Seq counts input frames from 1 so clients
// can discard results for stale input.
type WSResult struct {
	Type   string      `json:"type"`
	Seq    int         `json:"seq"`
	Report interface{} `json:"report"`
}

// WSError reports an input frame that could not be evaluated. The
// connection stays open.
type WSError struct {
	Type  string `json:"type"`
	Seq   int    `json:"seq"`
	Error string `json:"error"`
}

// WSHandler re-evaluates on every text frame, mirroring a form field that
// updates on each keystroke. Each frame is the full current input.
type WSHandler struct {
	Meter    Evaluator
	Logger   types.DebugLogger
	Upgrader websocket.Upgrader
}

// NewWSHandler creates a websocket handler. With no allowed origins the
// upgrader's same-origin check applies.
func NewWSHandler(meter Evaluator, logger types.DebugLogger, allowedOrigins []string) *WSHandler {
	if logger == nil {
		logger = types.NoopLogger{}
	}
	h := &WSHandler{
		Meter:  meter,
		Logger: logger,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	if len(allowedOrigins) > 0 {
		allowed := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			allowed[o] = true
		}
		h.Upgrader.CheckOrigin = func(r *http.Request) bool {
			return allowed["*"] || allowed[r.Header.Get("Origin")]
		}
	}
	return h
}

// Serve handles GET /api/v1/ws.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		h.Logger.Log("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	h.Logger.Log("websocket %s connected", id)
	defer h.Logger.Log("websocket %s closed", id)

	conn.SetReadLimit(wsMaxMessageSize)

	if err := h.write(conn, WSHello{Type: "hello", ConnectionID: id}); err != nil {
		return
	}

	for seq := 1; ; seq++ {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text frames only"),
				time.Now().Add(wsWriteWait))
			return
		}

		if types.TooLong(string(msg)) {
			if err := h.write(conn, WSError{Type: "error", Seq: seq, Error: tooLongMessage}); err != nil {
				return
			}
			continue
		}

		res := WSResult{Type: "result", Seq: seq, Report: result(h.Meter, string(msg), false)}
		if err := h.write(conn, res); err != nil {
			return
		}
	}
}

func (h *WSHandler) write(conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
