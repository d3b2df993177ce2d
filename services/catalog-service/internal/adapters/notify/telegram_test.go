package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTelegramNotifier_Validation(t *testing.T) {
	_, err := NewTelegramNotifier("", "", "42")
	assert.Error(t, err)

	_, err = NewTelegramNotifier("", "token", "")
	assert.Error(t, err)

	n, err := NewTelegramNotifier("", "token", "42")
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestTelegramNotifier_Notify(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n, err := NewTelegramNotifier(server.URL, "test-token", "100500")
	require.NoError(t, err)

	err = n.Notify(context.Background(), "Загрузка завершена: 10 успешно, 2 с ошибками")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "100500", gotQuery["chat_id"][0])
	assert.Equal(t, "Загрузка завершена: 10 успешно, 2 с ошибками", gotQuery["text"][0])
	assert.Equal(t, "HTML", gotQuery["parse_mode"][0])
}

func TestTelegramNotifier_NotifyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	n, err := NewTelegramNotifier(server.URL, "test-token", "100500")
	require.NoError(t, err)

	err = n.Notify(context.Background(), "сообщение")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
