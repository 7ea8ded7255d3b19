//go:build darwin

package insert

import (
	"context"
	"os/exec"
	"strings"
)

type darwinTyper struct{}

func newTyper() typer {
	return darwinTyper{}
}

// Type drives System Events keystroke injection. Requires the
// accessibility permission for the host process.
func (darwinTyper) Type(ctx context.Context, text string) error {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(text)
	script := `tell application "System Events" to keystroke "` + escaped + `"`
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}
