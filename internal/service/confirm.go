package service

import (
	"context"
	"strings"
	"time"

	"github.com/iprilbot/ipril/domain"
	"github.com/iprilbot/ipril/internal/session"
)

// resolveConfirmation handles the reply to an outstanding language-switch
// question. Pending state is cleared only by a yes/no answer; anything
// else re-prompts and leaves the confirmation in place. Reports whether
// the session language changed.
func (s *Service) resolveConfirmation(ctx context.Context, sess *session.Session, chatID int64, text string, now time.Time) bool {
	pending := sess.Pending

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes":
		old := sess.Language
		sess.Language = pending.DetectedLanguage
		s.sessions.SetLanguage(sess.UserID, sess.Language)
		sess.Pending = nil
		s.messenger.Reply(chatID, switchedLangText(old, sess.Language))
		s.replayOriginal(ctx, sess, chatID, pending.OriginalText, now)
		return true

	case "no":
		sess.Pending = nil
		s.messenger.Reply(chatID, keptLangText(sess.Language))
		s.replayOriginal(ctx, sess, chatID, pending.OriginalText, now)
		return false

	default:
		s.messenger.Reply(chatID, confirmRepromptText)
		return false
	}
}

// replayOriginal pushes the message that triggered the confirmation back
// through the correction pipeline under the now-decided language, so the
// triggering message is never lost.
func (s *Service) replayOriginal(ctx context.Context, sess *session.Session, chatID int64, original string, now time.Time) {
	if original == "" {
		return
	}
	sess.History.AppendUser(original)
	s.archiveTurn(ctx, sess.UserID, domain.RoleUser, original)
	s.correct(ctx, sess, chatID, original, now)
}
