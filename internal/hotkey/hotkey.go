// Package hotkey binds the global push-to-talk key.
package hotkey

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// debounceInterval suppresses OS key-repeat keydown storms while the
// key is held. The release edge always passes through.
const debounceInterval = 300 * time.Millisecond

// Listener implements ports.HotkeySource over a registered global key.
// Press and release are edge-triggered; duplicate down edges from key
// repeat are debounced here, and the state machines downstream treat
// any surviving duplicates as silent no-ops anyway.
type Listener struct {
	logger zerolog.Logger

	mu     sync.Mutex
	hk     *hotkey.Hotkey
	stopCh chan struct{}
}

func NewListener(logger zerolog.Logger) *Listener {
	return &Listener{logger: logger}
}

// Start registers the push-to-talk key and begins dispatching edges.
func (l *Listener) Start(onKeyDown, onKeyUp func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hk != nil {
		return fmt.Errorf("hotkey already registered")
	}

	hk := hotkey.New(pushToTalkModifiers, pushToTalkKey)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("failed to register push-to-talk key: %w", err)
	}

	l.hk = hk
	l.stopCh = make(chan struct{})
	go l.listen(hk, l.stopCh, onKeyDown, onKeyUp)

	l.logger.Info().Msg("push-to-talk key registered")
	return nil
}

func (l *Listener) listen(hk *hotkey.Hotkey, stopCh chan struct{}, onKeyDown, onKeyUp func()) {
	var lastKeydown time.Time

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if onKeyDown != nil {
				onKeyDown()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
			if onKeyUp != nil {
				onKeyUp()
			}
		}
	}
}

// Stop unregisters the key and ends dispatch.
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopCh != nil {
		close(l.stopCh)
		l.stopCh = nil
	}
	if l.hk != nil {
		err := l.hk.Unregister()
		l.hk = nil
		return err
	}
	return nil
}

// RunOnMainThread hands the main goroutine to the hotkey runtime, which
// macOS requires for global key monitoring.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
