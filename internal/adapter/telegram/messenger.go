// Package telegram provides the outbound messaging channel.
package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger is the outbound side of the chat transport. Both operations
// are fire-and-forget notifications: delivery failures are logged, never
// surfaced to the conversation flow.
type Messenger interface {
	// Reply sends text to the chat.
	Reply(chatID int64, text string)
	// SendTyping shows a typing indicator in the chat.
	SendTyping(chatID int64)
}

// BotMessenger sends messages through the Telegram Bot API.
type BotMessenger struct {
	api *tgbotapi.BotAPI
}

// Ensure BotMessenger implements Messenger interface.
var _ Messenger = (*BotMessenger)(nil)

// NewBotMessenger wraps an authorized Bot API client.
func NewBotMessenger(api *tgbotapi.BotAPI) *BotMessenger {
	return &BotMessenger{api: api}
}

// Reply sends text to the chat.
func (m *BotMessenger) Reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := m.api.Send(msg); err != nil {
		log.Printf("ERROR: failed to send reply to chat %d: %v", chatID, err)
	}
}

// SendTyping shows a typing indicator in the chat.
func (m *BotMessenger) SendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := m.api.Request(action); err != nil {
		log.Printf("WARN: failed to send typing action to chat %d: %v", chatID, err)
	}
}
