package stream

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitForSubscribers(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		cur := len(hub.subs)
		hub.mu.Unlock()
		if cur >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d subscribers", n)
}

func TestStreamServer_SSE(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewServer(hub).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events")
	if err != nil {
		t.Fatalf("GET /events failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	waitForSubscribers(t, hub, 1)
	hub.Publish([]byte("data: {\"InstrumentID\":\"rb2405\"}\n\n"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if want := "data: {\"InstrumentID\":\"rb2405\"}\n"; line != want {
		t.Errorf("Line = %q, want %q", line, want)
	}
}

func TestStreamServer_WebSocket(t *testing.T) {
	hub := NewHub(8)
	srv := httptest.NewServer(NewServer(hub).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	waitForSubscribers(t, hub, 1)
	hub.Publish([]byte("data: {\"InstrumentID\":\"au2601\"}\n\n"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if want := "{\"InstrumentID\":\"au2601\"}"; string(payload) != want {
		t.Errorf("Payload = %q, want %q", payload, want)
	}
}
