// Package player launches external media players.
// All player invocations use exec.Command with explicit argument slices;
// nothing is passed through a shell.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"reelhub/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play blocks until the player exits. A comic chapter is opened as an
	// image playlist.
	Play(ref media.VideoRef, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}

// sources returns the media arguments for ref.
func sources(ref media.VideoRef) ([]string, error) {
	if ref.Empty() {
		return nil, fmt.Errorf("nothing to play")
	}
	if ref.IsImages() {
		return ref.Images, nil
	}
	return []string{ref.URL}, nil
}

// run starts the player attached to the terminal. Players exit non-zero
// when the user closes them, so exit errors are not failures.
func run(name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
