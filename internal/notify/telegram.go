// Package notify pushes surveillance alerts to Telegram. It is strictly
// downstream of the analysis engine and never feeds anything back into
// scoring.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tapan77777/Transpera/models"
)

// Notifier sends flag alerts to a Telegram chat. A nil Notifier is valid
// and drops everything, so callers can wire it unconditionally.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "notify").Logger(),
	}, nil
}

// HighSeverity sends one message summarizing the HIGH severity flags in
// the batch, if any. Delivery failures are logged, not returned; alerting
// never blocks a scoring response.
func (n *Notifier) HighSeverity(flags []models.Flag) {
	if n == nil {
		return
	}

	var lines []string
	for _, f := range flags {
		if f.Severity == models.SeverityHigh {
			lines = append(lines, fmt.Sprintf("[%s] %s", f.Type, f.Message))
		}
	}
	if len(lines) == 0 {
		return
	}

	text := fmt.Sprintf("Transpera: %d HIGH severity flag(s)\n%s", len(lines), strings.Join(lines, "\n"))
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		n.logger.Error().Err(err).Msg("failed to send alert")
		return
	}
	n.logger.Info().Int("flags", len(lines)).Msg("alert sent")
}
