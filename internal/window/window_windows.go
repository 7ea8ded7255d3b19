//go:build windows

package window

import (
	"syscall"
	"unicode/utf16"
	"unsafe"

	"murmur/internal/domain"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

func activeWindow() (*domain.WindowContext, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return nil, syscall.EINVAL
	}

	var title [256]uint16
	length, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&title[0])), uintptr(len(title)))

	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))

	return &domain.WindowContext{
		WindowTitle: string(utf16.Decode(title[:length])),
		ProcessID:   int(pid),
	}, nil
}
