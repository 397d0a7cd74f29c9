package service

import (
	"fmt"
	"strings"

	"github.com/iprilbot/ipril/domain"
)

// User-facing texts. Kept in one place so the conversation reads
// consistently across the command surface and the correction flow.
const (
	welcomeText = "Welcome to Ipril - Your Grammar Assistant! 🎓\n\n" +
		"I can help you improve your writing in 6 languages:\n" +
		"🇬🇧 English (en)\n" +
		"🇪🇸 Spanish (es)\n" +
		"🇫🇷 French (fr)\n" +
		"🇩🇪 German (de)\n" +
		"🇮🇹 Italian (it)\n" +
		"🇷🇺 Russian (ru)\n\n" +
		"Commands:\n" +
		"/setlang [code] - Change language\n" +
		"/currentlang - Show current language\n" +
		"/help - Show help message\n\n" +
		"Just send me a message and I'll help correct it!"

	helpText = "📚 Ipril Help Guide 📚\n\n" +
		"How to use me:\n" +
		"1. Send me any text message\n" +
		"2. I'll correct the grammar and ask a follow-up question\n" +
		"3. Continue the conversation naturally!\n\n" +
		"Available commands:\n" +
		"/start - Welcome message\n" +
		"/setlang [code] - Change language (e.g., /setlang es)\n" +
		"/currentlang - Show your current language\n" +
		"/help - This help message\n\n" +
		"Supported languages: en, es, fr, de, it, ru"

	rateLimitText = "You've reached the rate limit. Please wait a minute before sending more messages."

	serviceErrorText = "Sorry, I encountered an error with the grammar service. Please try again later."

	confirmRepromptText = "Please respond with 'yes' or 'no'."

	setLangUsageText = "Please specify a language code. Example: /setlang en"
)

func unsupportedLangText() string {
	return fmt.Sprintf("Unsupported language. Available codes: %s", strings.Join(domain.LanguageCodes(), ", "))
}

func langSetText(code string) string {
	return fmt.Sprintf("Language set to %s!", domain.LanguageName(code))
}

func currentLangText(code string) string {
	return fmt.Sprintf("Your current language is %s", domain.LanguageName(code))
}

func confirmPromptText(detected, current string) string {
	return fmt.Sprintf(
		"Your message is in %s, but your selected language is %s. Would you like to switch the language? (yes/no)",
		strings.ToUpper(detected), strings.ToUpper(current))
}

func switchedLangText(old, code string) string {
	return fmt.Sprintf(
		"Language switched from %s to %s. You can now continue chatting in %s",
		strings.ToUpper(old), strings.ToUpper(code), domain.LanguageName(code))
}

func keptLangText(current string) string {
	return fmt.Sprintf(
		"Keeping the current language (%s). You can continue chatting in %s",
		strings.ToUpper(current), domain.LanguageName(current))
}
