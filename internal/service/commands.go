package service

import (
	"context"
	"log"
	"strings"

	"github.com/iprilbot/ipril/domain"
	"github.com/iprilbot/ipril/internal/session"
)

// HandleCommand processes a slash command. Commands only read or write the
// session language; they never touch the confirmation state machine.
func (s *Service) HandleCommand(ctx context.Context, userID, chatID int64, command, args string) {
	sess := s.getOrCreate(ctx, userID)

	sess.Lock()
	langChanged := false
	switch command {
	case "start":
		s.messenger.Reply(chatID, welcomeText)
	case "help":
		s.messenger.Reply(chatID, helpText)
	case "setlang":
		langChanged = s.setLanguage(sess, chatID, args)
	case "currentlang":
		s.messenger.Reply(chatID, currentLangText(sess.Language))
	default:
		log.Printf("WARN: unknown command /%s from user %d", command, userID)
	}
	sess.Unlock()

	if langChanged {
		s.saveSnapshot()
	}
}

// setLanguage validates and applies a /setlang argument. Invalid input
// produces a correction message and no state change.
func (s *Service) setLanguage(sess *session.Session, chatID int64, args string) bool {
	code := strings.ToLower(strings.TrimSpace(args))
	if code == "" {
		s.messenger.Reply(chatID, setLangUsageText)
		return false
	}
	if !domain.IsSupported(code) {
		s.messenger.Reply(chatID, unsupportedLangText())
		return false
	}

	sess.Language = code
	s.sessions.SetLanguage(sess.UserID, code)
	s.messenger.Reply(chatID, langSetText(code))
	return true
}
