//go:build linux

package window

import (
	"os/exec"
	"strconv"
	"strings"

	"murmur/internal/domain"
)

func activeWindow() (*domain.WindowContext, error) {
	id, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return nil, err
	}
	windowID := strings.TrimSpace(string(id))

	win := &domain.WindowContext{}
	if name, err := exec.Command("xdotool", "getwindowname", windowID).Output(); err == nil {
		win.WindowTitle = strings.TrimSpace(string(name))
	}
	if pid, err := exec.Command("xdotool", "getwindowpid", windowID).Output(); err == nil {
		win.ProcessID, _ = strconv.Atoi(strings.TrimSpace(string(pid)))
	}
	return win, nil
}
