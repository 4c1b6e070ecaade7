package telegram

// Client sends plain-text messages to a Telegram chat.
// The app layer depends on this instead of the bot library.
type Client interface {
	SendMessage(chatID int64, text string) error
}
