package interfaces

import "context"

// NotifierPort определяет интерфейс канала оповещений
// Реализация может использовать Telegram, email, Slack и т.д.
type NotifierPort interface {
	// Notify отправляет текстовое сообщение в канал оповещений
	Notify(ctx context.Context, message string) error
}
