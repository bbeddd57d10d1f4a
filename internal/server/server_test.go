package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestDocumentRoute(t *testing.T) {
	srv := New(Config{Port: 0})

	// No document loaded yet.
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before a document is loaded, got %d", w.Code)
	}

	if err := srv.LoadDocument("<!DOCTYPE html><html><body>map</body></html>"); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(w.Body.String(), "map") {
		t.Errorf("body = %q, want the loaded document", w.Body.String())
	}
}

// dial connects a test WebSocket client to the server under test.
func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	return conn
}

func TestWebSocketDeliversMessages(t *testing.T) {
	srv := New(Config{Port: 0})

	received := make(chan []byte, 1)
	srv.OnMessage(func(data []byte) { received <- data })

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	payload := `{"type":"markerPress","marker":{"latitude":1,"longitude":2}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	select {
	case got := <-received:
		if string(got) != payload {
			t.Errorf("received %s, want %s", got, payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the message")
	}
}

func TestLoadDocumentBroadcastsReload(t *testing.T) {
	srv := New(Config{Port: 0})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	// Give the server a moment to register the client.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.RLock()
		n := len(srv.clients)
		srv.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := srv.LoadDocument("<html></html>"); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if string(data) != `{"type":"reload"}` {
		t.Errorf("broadcast = %s, want reload control frame", data)
	}
}

func TestBridgeURL(t *testing.T) {
	srv := New(Config{Port: 8750})
	if got := srv.BridgeURL(); got != "ws://localhost:8750/ws" {
		t.Errorf("BridgeURL = %q, want ws://localhost:8750/ws", got)
	}
	if got := srv.URL(); got != "http://localhost:8750" {
		t.Errorf("URL = %q, want http://localhost:8750", got)
	}
}
