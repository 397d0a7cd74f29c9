// Package telegram runs the inbound update loop.
package telegram

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iprilbot/ipril/internal/service"
)

// pollTimeoutSeconds is the long-poll timeout for GetUpdates.
const pollTimeoutSeconds = 30

// Poller consumes Telegram updates and dispatches them to the service.
type Poller struct {
	api *tgbotapi.BotAPI
	svc *service.Service
	wg  sync.WaitGroup
}

// NewPoller creates a Poller over an authorized Bot API client.
func NewPoller(api *tgbotapi.BotAPI, svc *service.Service) *Poller {
	return &Poller{api: api, svc: svc}
}

// Run consumes updates until ctx is canceled. Each update is handled on
// its own goroutine; ordering per user is enforced by the session lock, so
// one user's slow correction never blocks another's.
func (p *Poller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := p.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || msg.From == nil || msg.Text == "" {
				continue
			}
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				// Shutdown cancels polling, not in-flight handlers; those
				// get the grace period from Wait.
				p.dispatch(context.WithoutCancel(ctx), msg)
			}()
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		p.svc.HandleCommand(ctx, userID, chatID, msg.Command(), msg.CommandArguments())
		return
	}
	p.svc.HandleMessage(ctx, userID, chatID, msg.Text, time.Now())
}

// Wait blocks until in-flight handlers finish, or grace expires. Reports
// whether everything drained in time.
func (p *Poller) Wait(grace time.Duration) bool {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(grace):
		return false
	}
}
