package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lexai/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lexai/internal/core/domain"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Len(t, view.Items(), 5)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Same(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
}

func TestView_Navigation(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.Selected())

	for range 10 {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(view.Items())-1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, len(view.Items())-2, view.Selected())
}

func TestView_Enter_ChangesView(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewSearch},
		{1, messages.ViewUpgrade},
		{2, messages.ViewSettings},
		{3, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.Items()) - 1

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_QuotaLine(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	assert.NotContains(t, view.View(), "Free plan")

	view.Update(messages.QuotaLoaded{State: domain.QuotaState{Count: 1}})
	assert.Contains(t, view.View(), "Free plan: 2 of 3 searches left today")

	view.SetQuota(domain.QuotaState{IsPremium: true})
	assert.Contains(t, view.View(), "Premium: unlimited searches")
}

func TestView_View_ListsItems(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	out := view.View()

	assert.Contains(t, out, "Precedence AI")
	for _, item := range view.Items() {
		assert.Contains(t, out, item.Label)
	}
}
