package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iprilbot/ipril/domain"
	"github.com/iprilbot/ipril/internal/adapter/llm"
	"github.com/iprilbot/ipril/internal/session"
)

// detectionBypassRunes is the minimum message length for language
// detection; shorter messages are assumed to be in the session language so
// a one-word reply cannot spuriously re-trigger detection.
const detectionBypassRunes = 3

// HandleMessage processes one inbound text message. All replies go out
// through the messenger; no error reaches the transport.
func (s *Service) HandleMessage(ctx context.Context, userID, chatID int64, text string, now time.Time) {
	sess := s.getOrCreate(ctx, userID)

	sess.Lock()
	langChanged := s.handleLocked(ctx, sess, chatID, text, now)
	sess.Unlock()

	if langChanged {
		s.saveSnapshot()
	}
}

// handleLocked runs the correction algorithm under the session lock. It
// reports whether the session language changed, so the caller can persist
// the snapshot after releasing the lock.
func (s *Service) handleLocked(ctx context.Context, sess *session.Session, chatID int64, text string, now time.Time) bool {
	if !sess.Limiter.Admit(now) {
		s.messenger.Reply(chatID, rateLimitText)
		return false
	}

	// History is updated regardless of the downstream branch so the next
	// correction request sees the whole conversation.
	sess.History.AppendUser(text)
	s.archiveTurn(ctx, sess.UserID, domain.RoleUser, text)

	if sess.Pending != nil {
		return s.resolveConfirmation(ctx, sess, chatID, text, now)
	}

	detected := s.detectLanguage(sess, text)
	if detected != sess.Language && domain.IsSupported(detected) {
		sess.Pending = &domain.PendingConfirmation{
			DetectedLanguage: detected,
			OriginalText:     text,
		}
		s.messenger.Reply(chatID, confirmPromptText(detected, sess.Language))
		return false
	}

	s.correct(ctx, sess, chatID, text, now)
	return false
}

// detectLanguage applies the short-message bypass, then the external
// detector. Detection failures and unsupported codes fall back to the
// session's configured language.
func (s *Service) detectLanguage(sess *session.Session, text string) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "yes" || trimmed == "no" || utf8.RuneCountInString(trimmed) < detectionBypassRunes {
		return sess.Language
	}

	code, err := s.detector.Detect(text)
	if err != nil {
		log.Printf("WARN: language detection failed for user %d: %v", sess.UserID, err)
		return sess.Language
	}
	if !domain.IsSupported(code) {
		return sess.Language
	}
	return code
}

// correct issues the completion request over the session's history and
// emits the reply. Quota is consumed here: only messages that actually
// reach the correction service count against the window.
func (s *Service) correct(ctx context.Context, sess *session.Session, chatID int64, original string, now time.Time) {
	sess.Limiter.Record(now)
	s.messenger.SendTyping(chatID)

	raw, err := s.complete(ctx, sess)
	if err != nil {
		log.Printf("ERROR: completion request failed for user %d: %v", sess.UserID, err)
		s.messenger.Reply(chatID, serviceErrorText)
		return
	}

	parsed, err := parseReply(raw, domain.CorrectionLabel(sess.Language))
	if err != nil {
		log.Printf("ERROR: completion reply for user %d violates contract: %v", sess.UserID, err)
		s.messenger.Reply(chatID, serviceErrorText)
		return
	}

	if parsed.Corrected == strings.TrimSpace(original) && parsed.FollowUp != "" {
		// Input needed no change: acknowledge with just the follow-up.
		s.messenger.Reply(chatID, parsed.FollowUp)
	} else {
		s.messenger.Reply(chatID, raw)
	}

	sess.History.AppendAssistant(raw)
	s.archiveTurn(ctx, sess.UserID, domain.RoleAssistant, raw)
}

// complete builds and sends the correction request for the session's
// current language and history.
func (s *Service) complete(ctx context.Context, sess *session.Session) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.LLMTimeout)
	defer cancel()

	req := &llm.ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    llm.NewMessages(systemPrompt(sess.Language), sess.History.Turns()),
		Temperature: &s.config.Temperature,
		MaxTokens:   &s.config.MaxTokens,
	}

	resp, err := s.llm.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", fmt.Errorf("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
