package player

import (
	"os/exec"

	"reelhub/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC.
func (v *VLC) Play(ref media.VideoRef, title string) error {
	args, err := vlcArgs(ref, title)
	if err != nil {
		return err
	}
	return run("vlc", args)
}

func vlcArgs(ref media.VideoRef, title string) ([]string, error) {
	srcs, err := sources(ref)
	if err != nil {
		return nil, err
	}

	args := append([]string{}, srcs...)
	args = append(args, "--meta-title", title)
	if ref.IsImages() {
		// Images would otherwise flash past at the default 10 seconds.
		args = append(args, "--image-duration=-1")
	} else {
		args = append(args, "--play-and-exit")
	}
	return args, nil
}
