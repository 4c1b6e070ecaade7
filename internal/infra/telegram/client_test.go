package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func newTestBot(t *testing.T, handler http.HandlerFunc) *telebot.Bot {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b, err := NewBot("test-token", srv.URL, nil)
	require.NoError(t, err)
	return b
}

func TestTelebotAdapter_SendMessage(t *testing.T) {
	var got map[string]any
	b := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	})

	err := NewTelebotAdapter(b).SendMessage(42, "привет")
	require.NoError(t, err)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "привет", got["text"])
}

func TestTelebotAdapter_SendMessageError(t *testing.T) {
	b := newTestBot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	err := NewTelebotAdapter(b).SendMessage(42, "привет")
	assert.Error(t, err)
}
