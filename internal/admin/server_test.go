package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danmuck/tuioctl/internal/osc"
	"github.com/danmuck/tuioctl/internal/stream"
	"github.com/danmuck/tuioctl/internal/testutil/testlog"
	"github.com/danmuck/tuioctl/internal/tuio"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*Server, *tuio.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	client := tuio.NewClientWithListener(tuio.Options{}, nil)
	frame, err := osc.Marshal(tuio.EncodeFrame(tuio.ProfileCursor, []int32{7}, []tuio.Command{
		tuio.CursorSet{SessionID: 7, X: 0.25, Y: 0.5},
	}, 1))
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	if err := client.ProcessPacket(frame, nil); err != nil {
		t.Fatalf("process frame: %v", err)
	}
	return New("tuioctl-test", "127.0.0.1:0", nil, client, stream.NewHub(4)), client
}

func doJSON(t *testing.T, h http.Handler, method, path string, body []byte, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHealthAndReady(t *testing.T) {
	testlog.Start(t)
	s, _ := newTestServer(t)

	var health map[string]any
	if code := doJSON(t, s.Handler(), http.MethodGet, "/health", nil, &health); code != http.StatusOK || health["status"] != "ok" {
		t.Fatalf("unexpected health: %d %v", code, health)
	}

	var ready map[string]any
	if code := doJSON(t, s.Handler(), http.MethodGet, "/ready", nil, &ready); code != http.StatusServiceUnavailable || ready["ready"] != false {
		t.Fatalf("unconnected client must not be ready: %d %v", code, ready)
	}
}

func TestCursorSnapshotRoutes(t *testing.T) {
	testlog.Start(t)
	s, _ := newTestServer(t)

	var list struct {
		Count   int           `json:"count"`
		Cursors []tuio.Cursor `json:"cursors"`
	}
	if code := doJSON(t, s.Handler(), http.MethodGet, "/cursors", nil, &list); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if list.Count != 1 || list.Cursors[0].SessionID != 7 || list.Cursors[0].State != tuio.StateAdded {
		t.Fatalf("unexpected cursors: %+v", list)
	}

	var one tuio.Cursor
	if code := doJSON(t, s.Handler(), http.MethodGet, "/cursors/7", nil, &one); code != http.StatusOK || one.X != 0.25 {
		t.Fatalf("unexpected cursor lookup: %d %+v", code, one)
	}
	if code := doJSON(t, s.Handler(), http.MethodGet, "/cursors/8", nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", code)
	}
	if code := doJSON(t, s.Handler(), http.MethodGet, "/blobs/abc", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad session, got %d", code)
	}
}

func TestFilteringToggle(t *testing.T) {
	testlog.Start(t)
	s, client := newTestServer(t)

	var out map[string]any
	code := doJSON(t, s.Handler(), http.MethodPost, "/filtering", []byte(`{"enabled":true}`), &out)
	if code != http.StatusOK || !client.ProfileFiltering() {
		t.Fatalf("expected filtering enabled: %d %v", code, out)
	}
	if code := doJSON(t, s.Handler(), http.MethodPost, "/filtering", []byte(`{}`), nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing field, got %d", code)
	}

	var status map[string]any
	doJSON(t, s.Handler(), http.MethodGet, "/status", nil, &status)
	if status["profile_filtering"] != true || status["cursors_filtered"] != false || status["cursors"] != float64(1) {
		t.Fatalf("unexpected status: %v", status)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	testlog.Start(t)
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
