package alerts

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestTelegramSend(t *testing.T) {
	var gotPath, gotChatID, gotText string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("token123", "chat42", 2*time.Second)
	n.BaseURL = srv.URL

	err := n.Send("[BTCUSDT] attack signal")

	require.NoError(t, err)
	assert.Equal(t, "/bottoken123/sendMessage", gotPath)
	assert.Equal(t, "chat42", gotChatID)
	assert.Equal(t, "[BTCUSDT] attack signal", gotText)
}

// -----------------------------------------------------------------------------

func TestTelegramSendBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := NewTelegramNotifier("bad", "chat", 2*time.Second)
	n.BaseURL = srv.URL

	assert.Error(t, n.Send("hello"))
}

// -----------------------------------------------------------------------------

func TestTelegramSendUnreachable(t *testing.T) {
	n := NewTelegramNotifier("token", "chat", 200*time.Millisecond)
	n.BaseURL = "http://127.0.0.1:1"

	assert.Error(t, n.Send("hello"))
}
