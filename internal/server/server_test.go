package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gopipe/internal/colebrook"
	"github.com/alexiusacademia/gopipe/internal/config"
	"github.com/alexiusacademia/gopipe/internal/darcy"
	"github.com/alexiusacademia/gopipe/internal/flow"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(config.Default()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestDarcyEndpoint(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		value  float64
	}{
		{
			name:   "head loss",
			body:   `{"unknown":"headloss","length":100,"diameter":0.1,"velocity":2,"friction_factor":0.02}`,
			status: http.StatusOK,
			value:  4.0775,
		},
		{
			name:   "diameter",
			body:   `{"unknown":"diameter","length":100,"velocity":2,"head_loss":5,"friction_factor":0.02}`,
			status: http.StatusOK,
			value:  0.0815,
		},
		{
			name:   "zero head loss",
			body:   `{"unknown":"diameter","length":100,"velocity":2,"head_loss":0,"friction_factor":0.02}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "missing unknown",
			body:   `{"length":100}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "bad unknown",
			body:   `{"unknown":"pressure"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"unknown":"velocity","len":100}`,
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, "/api/darcy", tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				var e errorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
				assert.NotEmpty(t, e.Error)
				return
			}
			var res darcy.Result
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
			assert.InDelta(t, tt.value, res.Value, 1e-4)
		})
	}
}

func TestColebrookEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/api/colebrook", `{"reynolds":100000,"rel_roughness":0.001}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res colebrook.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.02217, res.F, 1e-4)

	resp = post(t, ts, "/api/colebrook", `{"reynolds":0,"rel_roughness":0.001}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestFlowEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"length":100,"diameter":0.1,"head_loss":5,"rel_roughness":0.001,"viscosity":1e-6}`
	resp := post(t, ts, "/api/flow", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res flow.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.True(t, res.Converged)
	assert.InDelta(t, 2.1645, res.Velocity, 1e-3)
	assert.Len(t, res.History, res.Iterations)

	resp = post(t, ts, "/api/flow", `{"length":100,"diameter":0.1,"head_loss":5,"viscosity":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = post(t, ts, "/api/flow", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/flow")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 0.001
	cfg.Server.Burst = 2
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()

	body := `{"reynolds":100000,"rel_roughness":0.001}`
	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Post(ts.URL+"/api/colebrook", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Health checks are not rate limited
	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebsocketStreamsSteps(t *testing.T) {
	ts := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	in := flow.Input{Length: 100, Diameter: 0.1, HeadLoss: 5, RelRoughness: 0.001, Viscosity: 1e-6}
	require.NoError(t, conn.WriteJSON(in))

	var steps []flow.Step
	var final *flow.Result
	for final == nil {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg.Type {
		case MsgStep:
			steps = append(steps, *msg.Step)
		case MsgResult:
			final = msg.Result
		default:
			t.Fatalf("unexpected message %+v", msg)
		}
	}
	assert.Len(t, steps, final.Iterations)
	assert.Equal(t, final.Velocity, steps[len(steps)-1].Velocity)

	// A domain error is reported on the same connection
	in.Viscosity = 0
	require.NoError(t, conn.WriteJSON(in))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "kinematic viscosity")
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
}

func TestWebsocketRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 0.001
	cfg.Server.Burst = 2
	ts := httptest.NewServer(New(cfg).Handler())
	defer ts.Close()

	// The upgrade spends the first token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	in := flow.Input{Length: 100, Diameter: 0.1, HeadLoss: 5, RelRoughness: 0.001, Viscosity: 1e-6}
	require.NoError(t, conn.WriteJSON(in))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == MsgResult {
			break
		}
		require.Equal(t, MsgStep, msg.Type)
	}

	// The bucket is empty now, so further frames are refused
	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteJSON(in))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, MsgError, msg.Type)
		assert.Equal(t, "too many requests", msg.Error)
	}

	// So is a new connection from the same client
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestWebsocketRejectsOversizedFrame(t *testing.T) {
	ts := newTestServer(t)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	big := `{"length":100,"pad":"` + strings.Repeat("x", 2*maxFrameSize) + `"}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(cfg).Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
