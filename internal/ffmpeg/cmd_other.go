//go:build !windows

// Package ffmpeg decodes audio files through an ffmpeg subprocess.
package ffmpeg

import "os/exec"

// configureCmd is a no-op outside Windows.
func configureCmd(cmd *exec.Cmd) {
	_ = cmd
}
