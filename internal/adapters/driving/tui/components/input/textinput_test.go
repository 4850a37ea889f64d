package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchInput_Focused(t *testing.T) {
	f := NewSearchInput(nil)

	require.NotNil(t, f)
	assert.True(t, f.Focused())
	assert.Equal(t, "Search: ", f.Label())
	assert.Empty(t, f.Value())
}

func TestNewField_Unfocused(t *testing.T) {
	f := NewField(nil, "Court: ", "e.g. Constitutional Court", 64)

	assert.False(t, f.Focused())
	assert.Contains(t, f.View(), "Court:")
}

func TestField_FocusBlur(t *testing.T) {
	f := NewField(nil, "Year: ", "", 4)

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_TypingUpdatesValue(t *testing.T) {
	f := NewSearchInput(nil)

	for _, r := range "delict" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "delict", f.Value())
}

func TestField_CharLimit(t *testing.T) {
	f := NewField(nil, "Year: ", "", 4)
	f.Focus()

	for _, r := range "202345" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "2023", f.Value())
}

func TestField_SetValueAndReset(t *testing.T) {
	f := NewSearchInput(nil)

	f.SetValue("contract")
	assert.Equal(t, "contract", f.Value())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewSearchInput(nil)

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())

	f.SetWidth(5)
	assert.Equal(t, 5, f.Width())
}

func TestField_Init(t *testing.T) {
	assert.NotNil(t, NewSearchInput(nil).Init())
}
