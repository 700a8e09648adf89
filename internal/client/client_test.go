package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerrooms/internal/protocol"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestWebSocketURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:3000", want: "ws://localhost:3000/ws"},
		{in: "https://poker.example.com", want: "wss://poker.example.com/ws"},
		{in: "ws://127.0.0.1:9000/", want: "ws://127.0.0.1:9000/ws"},
		{in: "ftp://nope", wantErr: true},
	}
	for _, tt := range tests {
		got, err := WebSocketURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

// echoServer replies to every join with a welcome naming the joiner
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			var msg protocol.Message
			if err := ws.ReadJSON(&msg); err != nil {
				return
			}
			var join protocol.Join
			if err := msg.Decode(&join); err != nil {
				return
			}
			reply := protocol.MustMessage(protocol.TypeWelcome, protocol.Welcome{
				ClientID: "c1",
				Room:     join.Room,
				Name:     join.Name,
			})
			if err := ws.WriteJSON(reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	ts := echoServer(t)

	c := NewClient(ts.URL, testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	assert.True(t, c.IsConnected())

	require.NoError(t, c.Join("felt", "Alice", "pw"))

	select {
	case msg := <-c.Messages():
		require.Equal(t, protocol.TypeWelcome, msg.Type)
		var welcome protocol.Welcome
		require.NoError(t, msg.Decode(&welcome))
		assert.Equal(t, "felt", welcome.Room)
		assert.Equal(t, "Alice", welcome.Name)
	case <-ctx.Done():
		t.Fatal("no welcome received")
	}

	require.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())
	assert.Error(t, c.Join("felt", "Alice", "pw"))
}

func TestConnectFailure(t *testing.T) {
	t.Parallel()
	c := NewClient("http://127.0.0.1:1", testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, c.Connect(ctx))
}

func TestLoadClientConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cfg, err := LoadClientConfig(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultClientConfig(), cfg)
	assert.Error(t, cfg.Validate(), "name, room and password are required")

	path := filepath.Join(dir, "client.hcl")
	src := `
player {
  name     = "Alice"
  room     = "felt"
  password = "pw"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	cfg, err = LoadClientConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:3000", cfg.Server.URL)
	assert.Equal(t, "Alice", cfg.Player.Name)
	assert.Equal(t, "warn", cfg.UI.LogLevel)
}
