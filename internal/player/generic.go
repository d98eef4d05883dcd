package player

import (
	"os/exec"

	"reelhub/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the generic player.
func (g *Generic) Play(ref media.VideoRef, title string) error {
	srcs, err := sources(ref)
	if err != nil {
		return err
	}

	// Both iina and celluloid accept mpv-style flags
	args := append([]string{}, srcs...)
	args = append(args, "--force-media-title="+title)
	if ref.IsImages() {
		args = append(args, "--image-display-duration=inf")
	}
	return run(g.name, args)
}
