package telegram

import (
	"fmt"
	"strings"
	"time"

	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands wires /start and /status. Commands are answered only in
// chatID, the chat notifications go to, whoever sends them.
func RegisterBotCommands(
	b *telebot.Bot,
	chatID int64,
	statusSvc app.StatusService,
	pollInterval time.Duration,
	baseLogger *logrus.Entry, // For contextual logging
) {
	logger := baseLogger.WithField("handler_group", "commands")

	g := b.Group()
	g.Use(onlyChat(chatID))

	g.Handle("/start", func(c telebot.Context) error {
		logger.WithField("command", "/start").WithField("chat_id", c.Chat().ID).Info("Processing /start command")
		return c.Send(startReply(pollInterval))
	})

	g.Handle("/status", func(c telebot.Context) error {
		logger.WithField("command", "/status").WithField("chat_id", c.Chat().ID).Info("Processing /status command")
		return c.Send(statusReply(statusSvc.Snapshot()))
	})
}

// onlyChat drops updates that did not come from chatID. Group chats have
// negative IDs that never equal a user ID, so the sender is not checked.
func onlyChat(chatID int64) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if chat := c.Chat(); chat == nil || chat.ID != chatID {
				return nil
			}
			return next(c)
		}
	}
}

func startReply(pollInterval time.Duration) string {
	return fmt.Sprintf("Привет! Я проверяю статус домашней работы раз в %s и пишу сюда, когда он меняется.\n\n"+
		"/status - показать последний известный статус.", pollInterval)
}

func statusReply(snap app.Snapshot) string {
	var sb strings.Builder

	if snap.LastStatus == "" {
		sb.WriteString("Статус работы ещё не получен.\n")
	} else {
		verdict, ok := snap.LastStatus.Verdict()
		if !ok {
			verdict = string(snap.LastStatus)
		}
		fmt.Fprintf(&sb, "Работа \"%s\": %s\n", snap.LastHomework, verdict)
	}

	if snap.Polls == 0 {
		sb.WriteString("Опросов API ещё не было.\n")
	} else {
		fmt.Fprintf(&sb, "Последний опрос: %s (всего %d)\n", snap.LastPollAt.Format("2006-01-02 15:04:05"), snap.Polls)
	}
	fmt.Fprintf(&sb, "Изменения ищутся с: %s", time.Unix(snap.Cursor, 0).Format("2006-01-02 15:04:05"))

	if snap.LastFault != "" {
		fmt.Fprintf(&sb, "\nПоследний сбой: %s", snap.LastFault)
	}
	return sb.String()
}
