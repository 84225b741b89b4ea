package alerts

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"crypto-sniper/src/helpers"
	"crypto-sniper/src/logger"
)

// -----------------------------------------------------------------------------
// Telegram bot notifier. Fire-and-forget: one POST per alert, bounded
// timeout, no retries. The caller decides whether to swallow the error.
// -----------------------------------------------------------------------------

const telegramAPIBase = "https://api.telegram.org"

type TelegramNotifier struct {
	Token   string
	ChatID  string
	BaseURL string
	Client  *http.Client
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewTelegramNotifier(token, chatID string, timeout time.Duration) *TelegramNotifier {
	return &TelegramNotifier{
		Token:   token,
		ChatID:  chatID,
		BaseURL: telegramAPIBase,
		Client: &http.Client{
			Timeout: timeout,
		},
		Logger: logger.NewLogger(nil, "TelegramNotifier"),
	}
}

// -----------------------------------------------------------------------------

// Send dispatches one free-text message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)

	form := url.Values{
		"chat_id": {t.ChatID},
		"text":    {text},
	}

	resp, err := t.Client.PostForm(endpoint, form)
	if err != nil {
		return &helpers.NotificationError{SniperError: helpers.SniperError{
			Message: "telegram send failed",
			Cause:   err,
		}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &helpers.NotificationError{SniperError: helpers.SniperError{
			Message: fmt.Sprintf("telegram send failed: status %d", resp.StatusCode),
		}}
	}

	return nil
}
