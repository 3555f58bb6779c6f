package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/praetorian-inc/pwmeter"
	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMeter(t *testing.T, opts ...pwmeter.Option) *pwmeter.Meter {
	t.Helper()
	if len(opts) == 0 {
		opts = []pwmeter.Option{pwmeter.WithWords("password1!")}
	}
	m, err := pwmeter.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func newServer(t *testing.T, meter Evaluator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(RouterConfig{Meter: meter, Quiet: true}))
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    Meta            `json:"meta"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// fakeReady implements ReadyChecker.
type fakeReady struct {
	ready bool
	size  int
}

func (f fakeReady) IsReady() bool { return f.ready }
func (f fakeReady) Len() int      { return f.size }

func TestHealthz(t *testing.T) {
	h := &HealthHandler{}
	w := httptest.NewRecorder()
	h.Healthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		dict       ReadyChecker
		wantStatus int
		wantData   string
	}{
		{name: "no dictionary", dict: nil, wantStatus: http.StatusServiceUnavailable, wantData: "not ready"},
		{name: "loading", dict: fakeReady{}, wantStatus: http.StatusServiceUnavailable, wantData: "not ready"},
		{name: "loaded", dict: fakeReady{ready: true, size: 3}, wantStatus: http.StatusOK, wantData: "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{Dict: tt.dict}
			w := httptest.NewRecorder()
			h.Readyz(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Data map[string]interface{} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantData, body.Data["status"])
		})
	}
}

func TestRouter_ReadyzFollowsDictionary(t *testing.T) {
	dict := dictionary.NewStore()
	srv := newServer(t, newMeter(t, pwmeter.WithDictionary(dict)))

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	dict.LoadString("hunter2\n")

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Evaluate(t *testing.T) {
	srv := newServer(t, newMeter(t))

	resp, err := http.Post(srv.URL+"/api/v1/evaluate", "application/json", strings.NewReader(`{"password":"Password1!"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Meta.RequestID)

	var data struct {
		Tier          string `json:"tier"`
		Score         int    `json:"score"`
		CrackTimeText string `json:"crack_time_text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "good", data.Tier, "Password1! is in the word list")
	assert.Equal(t, 65, data.Score)
	assert.Contains(t, data.CrackTimeText, "to crack")
}

func TestRouter_EvaluateExplain(t *testing.T) {
	srv := newServer(t, newMeter(t))

	resp, err := http.Post(srv.URL+"/api/v1/evaluate", "application/json", strings.NewReader(`{"password":"aaaaaaaa","explain":true}`))
	require.NoError(t, err)
	env := decode(t, resp)

	var data struct {
		Patterns struct {
			Penalty float64 `json:"penalty"`
		} `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 50.0, data.Patterns.Penalty)
}

func TestRouter_EvaluateBadBody(t *testing.T) {
	srv := newServer(t, newMeter(t))

	resp, err := http.Post(srv.URL+"/api/v1/evaluate", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decode(t, resp)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_body", env.Error.Code)
}

func TestRouter_EvaluateBodyTooLarge(t *testing.T) {
	srv := newServer(t, newMeter(t))

	body := `{"password":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	resp, err := http.Post(srv.URL+"/api/v1/evaluate", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_EvaluatePasswordTooLong(t *testing.T) {
	srv := newServer(t, newMeter(t))

	body, err := json.Marshal(EvaluateRequest{Password: strings.Repeat("x", types.MaxLength+1)})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/v1/evaluate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decode(t, resp)
	require.NotNil(t, env.Error)
	assert.Equal(t, "password_too_long", env.Error.Code)

	// Exactly MaxLength multi-byte characters is accepted
	body, err = json.Marshal(EvaluateRequest{Password: strings.Repeat("é", types.MaxLength)})
	require.NoError(t, err)
	resp, err = http.Post(srv.URL+"/api/v1/evaluate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	srv := newServer(t, newMeter(t))

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/evaluate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocket_EvaluatesEachFrame(t *testing.T) {
	srv := newServer(t, newMeter(t))
	conn := dialWS(t, srv)

	var hello WSHello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello.Type)
	_, err := uuid.Parse(hello.ConnectionID)
	assert.NoError(t, err)

	// Simulate typing: each frame carries the full current value
	inputs := []string{"T", "Tr0ub4dor", "Tr0ub4dor&3x", ""}
	wantTiers := []string{"too-short", "good", "strong", "none"}

	for i, in := range inputs {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(in)))

		var res struct {
			Type   string `json:"type"`
			Seq    int    `json:"seq"`
			Report struct {
				Tier string `json:"tier"`
			} `json:"report"`
		}
		require.NoError(t, conn.ReadJSON(&res))
		assert.Equal(t, "result", res.Type)
		assert.Equal(t, i+1, res.Seq)
		assert.Equal(t, wantTiers[i], res.Report.Tier, "input %q", in)
	}
}

func TestWebSocket_TooLongFrameKeepsConnection(t *testing.T) {
	srv := newServer(t, newMeter(t))
	conn := dialWS(t, srv)

	var hello WSHello
	require.NoError(t, conn.ReadJSON(&hello))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("x", types.MaxLength+1))))
	var wsErr WSError
	require.NoError(t, conn.ReadJSON(&wsErr))
	assert.Equal(t, "error", wsErr.Type)
	assert.Equal(t, 1, wsErr.Seq)
	assert.Contains(t, wsErr.Error, "exceeds")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Tr0ub4dor&3x")))
	var res WSResult
	require.NoError(t, conn.ReadJSON(&res))
	assert.Equal(t, "result", res.Type)
	assert.Equal(t, 2, res.Seq)
}

func TestWebSocket_RejectsBinary(t *testing.T) {
	srv := newServer(t, newMeter(t))
	conn := dialWS(t, srv)

	var hello WSHello
	require.NoError(t, conn.ReadJSON(&hello))

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseUnsupportedData))
}

func TestWebSocket_OriginCheck(t *testing.T) {
	meter := newMeter(t)
	srv := httptest.NewServer(NewRouter(RouterConfig{Meter: meter, Quiet: true, AllowedOrigins: []string{"https://app.example"}}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://app.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	resp.Body.Close()
	conn.Close()
}
