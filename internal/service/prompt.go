package service

import (
	"fmt"
	"strings"

	"github.com/iprilbot/ipril/domain"
)

// systemPromptTemplate is the correction instruction; CORRECTION_LABEL is
// substituted with the session language's label so the reply contract can
// be parsed back deterministically.
const systemPromptTemplate = `You are a grammar correction assistant. Your task is to:
1. Correct grammar mistakes in the given text while keeping it in the same language
2. Provide a friendly follow-up question in the user's chosen language
3. Format your response as: "[CORRECTION_LABEL CORRECTED_TEXT] FOLLOW_UP_QUESTION"
`

// systemPrompt builds the system instruction for a session language.
func systemPrompt(language string) string {
	return strings.ReplaceAll(systemPromptTemplate, "CORRECTION_LABEL", domain.CorrectionLabel(language))
}

// parsedReply is a completion response split per the reply contract:
// "[<label> <corrected text>] <follow-up question>".
type parsedReply struct {
	Corrected string
	FollowUp  string
}

// parseReply enforces the reply contract. The corrected segment is the
// bracketed block (closing bracket matched at depth zero, so corrected
// text may itself contain brackets) prefixed with the language's
// correction label. A malformed reply is a service-contract violation,
// not a "needs correction" signal.
func parseReply(raw, label string) (*parsedReply, error) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "[") {
		return nil, fmt.Errorf("%w: missing opening bracket", errMalformedReply)
	}

	depth := 0
	end := -1
	for i, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets", errMalformedReply)
	}

	inner := strings.TrimSpace(text[1:end])
	if !strings.HasPrefix(inner, label) {
		return nil, fmt.Errorf("%w: correction label %q not found", errMalformedReply, label)
	}

	return &parsedReply{
		Corrected: strings.TrimSpace(strings.TrimPrefix(inner, label)),
		FollowUp:  strings.TrimSpace(text[end+1:]),
	}, nil
}
