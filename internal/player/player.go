// Package player hands a resolved stream URL to mpv. This is
// host-integration glue: the core produces URLs, mpv does the playing.
package player

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/dafilmscz/godafilms/internal/util"
)

// Play launches mpv with the stream URL and blocks until playback ends.
// The media title shows up in mpv's window and OSD instead of the opaque
// CDN URL.
func Play(streamURL, title string) error {
	if _, err := exec.LookPath("mpv"); err != nil {
		return fmt.Errorf("mpv not found in PATH, install it from https://mpv.io/installation/")
	}

	args := []string{
		fmt.Sprintf("--force-media-title=%s", title),
		"--no-terminal",
		streamURL,
	}

	util.Debug("starting mpv", "title", title)

	cmd := exec.Command("mpv", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mpv exited with error: %w (stderr: %s)", err, stderr.String())
	}
	return nil
}
