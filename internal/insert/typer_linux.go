//go:build linux

package insert

import (
	"context"
	"os"
	"os/exec"
)

type linuxTyper struct {
	useWayland bool
}

func newTyper() typer {
	return &linuxTyper{useWayland: os.Getenv("WAYLAND_DISPLAY") != ""}
}

func (t *linuxTyper) Type(ctx context.Context, text string) error {
	if t.useWayland {
		return exec.CommandContext(ctx, "wtype", text).Run()
	}
	return exec.CommandContext(ctx, "xdotool", "type", "--clearmodifiers", "--", text).Run()
}
