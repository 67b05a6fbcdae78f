package repl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/javpy/log"
)

func newTestModel(t *testing.T, lines ...string) model {
	t.Helper()

	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range lines {
		_, err := h.Write(line)
		require.NoError(t, err)
	}

	return newModel(t.Context(), newSession(log.Logger{}), h, log.Logger{})
}

func typeText(m model, text string) model {
	for _, r := range text {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestModel_ExecuteInput(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, "total: 40 + 2")
	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, "total = 42 (number)", m.session.describe("total"))
	assert.Equal(t, []string{"total: 40 + 2"}, m.history.Entries())
	assert.Equal(t, 1, m.historyIdx)
}

func TestModel_Commands(t *testing.T) {
	t.Run("reset", func(t *testing.T) {
		m := newTestModel(t)

		_, err := m.session.eval(t.Context(), "x: 1")
		require.NoError(t, err)

		m = typeText(m, ":reset")
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Empty(t, m.session.names())
	})

	t.Run("quit", func(t *testing.T) {
		m := newTestModel(t)

		m = typeText(m, ":quit")
		m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
		assert.True(t, m.quitting)
		assert.NotNil(t, cmd)
		assert.Empty(t, m.View())
	})

	t.Run("ctrl_d_on_empty_line", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
		assert.True(t, m.quitting)
	})

	t.Run("ctrl_c_clears_line", func(t *testing.T) {
		m := newTestModel(t)

		m = typeText(m, "print 1")
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.False(t, m.quitting)
		assert.Empty(t, m.input.Value())
	})
}

func TestModel_Completion(t *testing.T) {
	m := newTestModel(t)

	_, err := m.session.eval(t.Context(), "price: 3 prize: 4")
	require.NoError(t, err)

	m = typeText(m, "print pri")
	require.NotEmpty(t, m.matches)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.tabActive)
	first := m.input.Value()
	assert.NotEqual(t, "print pri", first)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.NotEqual(t, first, m.input.Value(), "tab cycles candidates")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.tabActive)
	assert.Equal(t, "print pri", m.input.Value(), "esc restores the typed word")
}

func TestModel_CompletionSingle(t *testing.T) {
	m := newTestModel(t)

	m = typeText(m, ":vars")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Len(t, m.matches, 1)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ":vars", m.input.Value())
	assert.False(t, m.tabActive)
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t, "x: 1", "print x")

	m = typeText(m, "draft")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "print x", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "x: 1", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "x: 1", m.input.Value(), "stops at the oldest entry")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "draft", m.input.Value(), "draft restored past the newest entry")
	assert.Equal(t, m.history.Len(), m.historyIdx)
}
