package telegram

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/telebot.v3"
)

// NewBot builds the bot without contacting Telegram, so an unreachable API at
// startup only affects sends, which report it as a chat-unreachable fault.
// An empty apiURL means the public Bot API.
func NewBot(token, apiURL string, onError func(error, telebot.Context)) (*telebot.Bot, error) {
	return telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		Offline: true,
		OnError: onError,
	})
}

// LoadIdentity fills b.Me via getMe. Command routing needs the bot username
// only for "/cmd@botname" in groups; plain "/cmd" works without it.
func LoadIdentity(b *telebot.Bot) error {
	data, err := b.Raw("getMe", nil)
	if err != nil {
		return fmt.Errorf("getMe failed: %w", err)
	}

	var resp struct {
		Result *telebot.User `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("could not decode getMe response: %w", err)
	}
	if resp.Result == nil {
		return fmt.Errorf("getMe returned no user")
	}
	b.Me = resp.Result
	return nil
}
