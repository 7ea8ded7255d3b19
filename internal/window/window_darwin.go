//go:build darwin

package window

import (
	"os/exec"
	"strconv"
	"strings"

	"murmur/internal/domain"
)

const frontmostScript = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set appPid to unix id of frontApp
	set winTitle to ""
	try
		set winTitle to name of front window of frontApp
	end try
	return appName & "\n" & appPid & "\n" & winTitle
end tell`

func activeWindow() (*domain.WindowContext, error) {
	out, err := exec.Command("osascript", "-e", frontmostScript).Output()
	if err != nil {
		return nil, err
	}

	lines := strings.SplitN(strings.TrimSpace(string(out)), "\n", 3)
	win := &domain.WindowContext{}
	if len(lines) > 0 {
		win.ApplicationName = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		win.ProcessID, _ = strconv.Atoi(strings.TrimSpace(lines[1]))
	}
	if len(lines) > 2 {
		win.WindowTitle = strings.TrimSpace(lines[2])
	}
	return win, nil
}
