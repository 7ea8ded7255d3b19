//go:build windows

package hotkey

import "golang.design/x/hotkey"

// Alt+Space is the push-to-talk binding on Windows.
var (
	pushToTalkModifiers = []hotkey.Modifier{hotkey.ModAlt}
	pushToTalkKey       = hotkey.KeySpace
)
