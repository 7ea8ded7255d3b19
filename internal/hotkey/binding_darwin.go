//go:build darwin

package hotkey

import "golang.design/x/hotkey"

// Option+Space is the push-to-talk binding on macOS.
var (
	pushToTalkModifiers = []hotkey.Modifier{hotkey.ModOption}
	pushToTalkKey       = hotkey.KeySpace
)
