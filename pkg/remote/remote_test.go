package remote

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelfault/dmgboy/pkg/palette"
)

func TestPublishStreamsRGBAFrame(t *testing.T) {
	s := NewServer(palette.Named(palette.Greyscale), nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// give the server goroutine time to register the client before
	// publishing, since registration happens asynchronously relative
	// to the dial completing.
	time.Sleep(20 * time.Millisecond)

	frame := make([]uint8, 4)
	frame[0], frame[1], frame[2], frame[3] = 0, 1, 2, 3
	s.Publish(frame)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("len(data) = %d, want 16 (4 pixels * RGBA)", len(data))
	}
	if data[3] != 0xFF {
		t.Fatalf("alpha byte = %#x, want 0xFF", data[3])
	}
}
