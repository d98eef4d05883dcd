package player

import (
	"os/exec"

	"reelhub/internal/media"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv with the given reference.
func (m *MPV) Play(ref media.VideoRef, title string) error {
	args, err := mpvArgs(ref, title)
	if err != nil {
		return err
	}
	return run("mpv", args)
}

// mpvArgs builds the argument list. Page images stay on screen until the
// user moves to the next one.
func mpvArgs(ref media.VideoRef, title string) ([]string, error) {
	srcs, err := sources(ref)
	if err != nil {
		return nil, err
	}

	args := append([]string{}, srcs...)
	args = append(args,
		"--force-media-title="+title,
		"--really-quiet",
	)
	if ref.IsImages() {
		args = append(args,
			"--image-display-duration=inf",
			"--keep-open=yes",
		)
	}
	return args, nil
}
