//go:build linux

package hotkey

import "golang.design/x/hotkey"

// Alt+Space is the push-to-talk binding on Linux.
var (
	pushToTalkModifiers = []hotkey.Modifier{hotkey.Mod1}
	pushToTalkKey       = hotkey.KeySpace
)
