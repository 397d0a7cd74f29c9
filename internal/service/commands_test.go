package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandStartAndHelp(t *testing.T) {
	env := newTestEnv()

	env.svc.HandleCommand(context.Background(), 1, 1, "start", "")
	env.svc.HandleCommand(context.Background(), 1, 1, "help", "")

	require.Len(t, env.out.replies, 2)
	assert.Equal(t, welcomeText, env.out.replies[0])
	assert.Equal(t, helpText, env.out.replies[1])
}

func TestCommandSetLang(t *testing.T) {
	env := newTestEnv()

	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "es")

	assert.Equal(t, "Language set to Spanish!", env.out.last())
	assert.Equal(t, "es", env.session(1).Language)
	assert.Equal(t, "es", env.snap.langs[1])
}

func TestCommandSetLangInvalid(t *testing.T) {
	env := newTestEnv()
	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "es")
	saves := env.snap.saves

	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "xx")
	assert.Contains(t, env.out.last(), "Unsupported language")
	assert.Equal(t, "es", env.session(1).Language)
	assert.Equal(t, saves, env.snap.saves)

	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "")
	assert.Equal(t, setLangUsageText, env.out.last())
	assert.Equal(t, "es", env.session(1).Language)
}

func TestCommandSetLangNormalizesInput(t *testing.T) {
	env := newTestEnv()

	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "  DE ")

	assert.Equal(t, "de", env.session(1).Language)
}

func TestCommandCurrentLang(t *testing.T) {
	env := newTestEnv()

	env.svc.HandleCommand(context.Background(), 1, 1, "currentlang", "")
	assert.Equal(t, "Your current language is English", env.out.last())

	env.svc.HandleCommand(context.Background(), 1, 1, "setlang", "ru")
	env.svc.HandleCommand(context.Background(), 1, 1, "currentlang", "")
	assert.Equal(t, "Your current language is Russian", env.out.last())
}

func TestCommandsLeaveConfirmationPending(t *testing.T) {
	env := newTestEnv()
	env.det.code = "fr"

	env.svc.HandleMessage(context.Background(), 1, 1, "Bonjour tout le monde", time.Now())
	require.NotNil(t, env.session(1).Pending)

	env.svc.HandleCommand(context.Background(), 1, 1, "currentlang", "")
	env.svc.HandleCommand(context.Background(), 1, 1, "help", "")

	// Commands never resolve or drop an outstanding confirmation.
	assert.NotNil(t, env.session(1).Pending)
}

func TestRestoreLanguages(t *testing.T) {
	env := newTestEnv()
	env.snap.langs = map[int64]string{3: "it", 4: "xx"}

	require.NoError(t, env.svc.RestoreLanguages())

	assert.Equal(t, "it", env.session(3).Language)
	assert.Equal(t, 1, env.sessions.Len())
}

func TestStats(t *testing.T) {
	env := newTestEnv()
	env.svc.HandleCommand(context.Background(), 1, 1, "start", "")
	env.svc.HandleCommand(context.Background(), 2, 2, "start", "")

	stats, err := env.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sessions)
}
