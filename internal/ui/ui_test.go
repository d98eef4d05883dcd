package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbered(t *testing.T) {
	got := numbered([]string{"First", "Tab\there", "New\nline"})
	assert.Equal(t, "0\tFirst\n1\tTab here\n2\tNew line\n", got)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr error
	}{
		{"first", "0\tFirst\n", 0, nil},
		{"last", "2\tThird", 2, nil},
		{"empty", "\n", -1, ErrCancelled},
		{"out of range", "7\tGhost", -1, nil},
		{"garbage", "abc\tdef", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := parseSelection(tt.out, 3)
			assert.Equal(t, tt.want, idx)
			if tt.want >= 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSelectArgsHideIndex(t *testing.T) {
	args := strings.Join(selectArgs("Pick"), " ")
	assert.Contains(t, args, "--prompt Pick > ")
	assert.Contains(t, args, "--with-nth 2..")
	assert.NotContains(t, args, "--preview")
}

func TestSelectRejectsEmpty(t *testing.T) {
	_, err := Select("Pick", nil)
	assert.Error(t, err)
}

func TestReadLine(t *testing.T) {
	got, err := readLine(strings.NewReader("  one piece  \nrest"))
	require.NoError(t, err)
	assert.Equal(t, "one piece", got)

	got, err = readLine(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)

	_, err = readLine(strings.NewReader("\n"))
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestPlatformBadge(t *testing.T) {
	assert.Contains(t, PlatformBadge("DramaBox", "red"), "DramaBox")
	assert.Contains(t, PlatformBadge("Unknown", "no-such-color"), "Unknown")
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("Loading")
	assert.Contains(t, m.View(), "Loading")

	boom := errors.New("boom")
	next, cmd := m.Update(doneMsg{err: boom})
	require.NotNil(t, cmd)
	done := next.(spinnerModel)
	assert.True(t, done.done)
	assert.Equal(t, boom, done.err)
	assert.Empty(t, done.View())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.ErrorIs(t, next.(spinnerModel).err, ErrCancelled)
}

func TestWithSpinnerWithoutTerminal(t *testing.T) {
	// go test runs without a terminal on stdin.
	if IsInteractive() {
		t.Skip("running in a terminal")
	}
	called := false
	err := WithSpinner("Loading", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
