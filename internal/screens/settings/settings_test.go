package settings

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/rahulnair/neuroplay/internal/storage"
)

func keyPress(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestCycleSavesImmediately(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := New(kv)

	// First option is the theme; cycle it forward once.
	next, _ := s.Update(keyPress(tea.KeyRight))
	s = next.(*SettingsScreen)

	saved := storage.GetSettings(kv, settingsGame)
	assert.NotEqual(t, storage.DefaultSettings().Theme, saved.Theme)
}

func TestCycleWrapsAround(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := New(kv)

	themes := s.options[0].values
	for range themes {
		next, _ := s.Update(keyPress(tea.KeyRight))
		s = next.(*SettingsScreen)
	}

	saved := storage.GetSettings(kv, settingsGame)
	assert.Equal(t, storage.DefaultSettings().Theme, saved.Theme)
}

func TestToggleTimer(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := New(kv)

	// Move to the timer row and toggle it.
	for range 2 {
		next, _ := s.Update(keyPress(tea.KeyDown))
		s = next.(*SettingsScreen)
	}
	next, _ := s.Update(keyPress(tea.KeyEnter))
	s = next.(*SettingsScreen)

	saved := storage.GetSettings(kv, settingsGame)
	assert.False(t, saved.ShowTimer)
}

func TestViewListsEveryOption(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := New(kv)
	view := s.View(80, 24)

	for _, opt := range s.options {
		assert.Contains(t, view, opt.label)
	}
}
