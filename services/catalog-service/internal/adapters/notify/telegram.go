package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
)

// DefaultAPIBase адрес Telegram Bot API по умолчанию
const DefaultAPIBase = "https://api.telegram.org"

// TelegramNotifier отправляет уведомления в чат через Telegram Bot API
type TelegramNotifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
}

// NewTelegramNotifier создает новый экземпляр TelegramNotifier.
// apiBase позволяет переопределить адрес API (используется в тестах)
func NewTelegramNotifier(apiBase, botToken, chatID string) (interfaces.NotifierPort, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id is empty")
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	return &TelegramNotifier{
		apiBase:  strings.TrimRight(apiBase, "/"),
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Notify отправляет текстовое сообщение в настроенный чат
func (t *TelegramNotifier) Notify(ctx context.Context, message string) error {
	params := url.Values{}
	params.Set("chat_id", t.chatID)
	params.Set("text", message)
	params.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage?%s", t.apiBase, t.botToken, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса к Telegram API: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка отправки уведомления в Telegram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram API вернул статус %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
