package dashboard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

func testDashboard() (*DashboardScreen, *sessionclock.Clock) {
	kv := storage.NewMemoryKV()
	clock := sessionclock.New(kv, sessionclock.SystemSource{})
	statsSvc := stats.NewService(kv, sessionclock.SystemSource{}, levels.Names())
	return New(kv, clock, statsSvc), clock
}

func TestFreezesClockWhileOpen(t *testing.T) {
	d, clock := testDashboard()
	clock.StartSession()

	d.Init()
	assert.True(t, clock.IsFrozen())

	d.Close()
	assert.False(t, clock.IsFrozen())
}

func TestArrowKeysSwitchGames(t *testing.T) {
	d, _ := testDashboard()
	d.Init()
	defer d.Close()

	assert.Equal(t, 0, d.selected)

	next, _ := d.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	d = next.(*DashboardScreen)
	assert.Equal(t, 1, d.selected)

	next, _ = d.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	d = next.(*DashboardScreen)
	assert.Equal(t, 0, d.selected)
}

func TestViewShowsEachGame(t *testing.T) {
	d, _ := testDashboard()
	d.Init()
	defer d.Close()

	for range d.games {
		view := d.View(100, 30)
		assert.Contains(t, view, "Level 1/")
		next, _ := d.Update(tea.KeyPressMsg{Code: tea.KeyRight})
		d = next.(*DashboardScreen)
	}
}
