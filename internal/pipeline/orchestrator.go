// Package pipeline wires the capture, recognition, rewrite, and output
// stages into one push-to-talk dictation flow, at most one utterance in
// flight.
package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"murmur/internal/capture"
	"murmur/internal/domain"
	"murmur/internal/language"
	"murmur/internal/output"
	"murmur/internal/ports"
	"murmur/internal/recognition"
	"murmur/internal/rewrite"
)

// ErrNoActiveUtterance signals a stop or abort with nothing in flight.
var ErrNoActiveUtterance = errors.New("no active utterance")

// Config controls one orchestrator instance.
type Config struct {
	Audio           ports.AudioConfig
	Stream          ports.StreamConfig
	ChunkSize       int
	FinalizeTimeout time.Duration
	RewriteTimeout  time.Duration
	OutputMethod    domain.OutputMethod
}

// UtteranceResult is what one completed utterance produced.
type UtteranceResult struct {
	RawText   string
	FinalText string
	Rewritten bool
	Delivered bool
}

// Orchestrator owns the single live instance of every pipeline entity
// and drives one utterance from hotkey press to delivered text. All
// collaborators are injected; it holds no ambient global state.
type Orchestrator struct {
	audio    ports.AudioSource
	engine   ports.RecognitionEngine
	rewriter ports.RewriteProvider
	rules    ports.RulesEngine
	textSink ports.TextSink
	window   ports.WindowLookup
	sink     ports.EventSink
	logger   zerolog.Logger
	cfg      Config

	languages *language.Set
	shortcut  *Shortcut
	capture   *capture.Session

	mu      sync.Mutex
	current *utterance
}

type utterance struct {
	cancel    context.CancelFunc
	audio     ports.AudioStream
	streams   *recognition.StreamSet
	session   *recognition.Session
	audioDone chan struct{}
}

// New creates an idle orchestrator.
func New(
	audio ports.AudioSource,
	engine ports.RecognitionEngine,
	rewriter ports.RewriteProvider,
	rules ports.RulesEngine,
	textSink ports.TextSink,
	window ports.WindowLookup,
	languages *language.Set,
	shortcut *Shortcut,
	sink ports.EventSink,
	logger zerolog.Logger,
	cfg Config,
) *Orchestrator {
	if sink == nil {
		sink = ports.NopSink{}
	}
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if cfg.OutputMethod == "" {
		cfg.OutputMethod = domain.OutputBoth
	}
	return &Orchestrator{
		audio:     audio,
		engine:    engine,
		rewriter:  rewriter,
		rules:     rules,
		textSink:  textSink,
		window:    window,
		sink:      sink,
		logger:    logger,
		cfg:       cfg,
		languages: languages,
		shortcut:  shortcut,
		capture:   capture.NewSession(sink),
	}
}

// Languages exposes the enabled language set.
func (o *Orchestrator) Languages() *language.Set { return o.languages }

// Shortcut exposes the hotkey gate.
func (o *Orchestrator) Shortcut() *Shortcut { return o.shortcut }

// CaptureStatus reports the capture state machine's current state.
func (o *Orchestrator) CaptureStatus() domain.CaptureStatus { return o.capture.Status() }

// HandleKeyDown reacts to the push-to-talk press edge. Ignored while
// the shortcut is disabled or an utterance is already in flight.
func (o *Orchestrator) HandleKeyDown(ctx context.Context) {
	if !o.shortcut.Enabled() {
		return
	}
	if err := o.StartUtterance(ctx); err != nil {
		o.logger.Error().Err(err).Msg("failed to start utterance")
	}
}

// HandleKeyUp reacts to the release edge.
func (o *Orchestrator) HandleKeyUp(ctx context.Context) {
	if _, err := o.StopUtterance(ctx); err != nil && !errors.Is(err, ErrNoActiveUtterance) {
		o.logger.Warn().Err(err).Msg("utterance ended without delivery")
	}
}

// StartUtterance begins a capture cycle: snapshots the enabled
// languages, opens one recognition stream per language, and starts
// pumping microphone audio into them. A press while not idle is a
// silent no-op.
func (o *Orchestrator) StartUtterance(ctx context.Context) error {
	if !o.capture.Start() {
		return nil
	}

	snapshot := o.languages.Snapshot()

	session := recognition.NewSession(o.sink)
	session.Start(snapshot)

	utterCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	streams := recognition.OpenStreams(utterCtx, o.engine, snapshot, o.cfg.Stream, o.sink, o.logger)

	audioStream, err := o.audio.Start(utterCtx, o.cfg.Audio)
	if err != nil {
		streams.Close()
		session.Fail(err)
		cancel()
		o.capture.Stop()
		o.capture.Complete()
		return err
	}

	active := &utterance{
		cancel:    cancel,
		audio:     audioStream,
		streams:   streams,
		session:   session,
		audioDone: make(chan struct{}),
	}

	o.mu.Lock()
	o.current = active
	o.mu.Unlock()

	go o.pump(active)

	o.logger.Debug().Int("languages", len(snapshot)).Msg("utterance started")
	return nil
}

// StopUtterance ends the capture cycle and drives the tail of the
// pipeline: finalize the recognition streams, rewrite, apply rules, and
// deliver. A release with nothing recording is a silent no-op. An empty
// recognition result fails the cycle, skips rewrite and output, and
// still returns the capture session to idle.
func (o *Orchestrator) StopUtterance(ctx context.Context) (UtteranceResult, error) {
	active, err := o.takeCurrent()
	if err != nil {
		return UtteranceResult{}, err
	}

	if !o.capture.Stop() {
		o.putBack(active)
		return UtteranceResult{}, nil
	}
	active.session.Stop()

	if err := active.audio.Stop(); err != nil {
		o.logger.Warn().Err(err).Msg("failed to stop audio capture cleanly")
	}
	<-active.audioDone

	defer func() {
		active.cancel()
		o.capture.Complete()
	}()

	result, err := active.streams.Finalize(ctx, o.cfg.FinalizeTimeout)
	if err != nil {
		active.session.Fail(err)
		return UtteranceResult{}, err
	}
	active.session.Complete(result)

	raw := result.FullText()
	attempt := rewrite.New(o.sink, raw)
	finalText := rewrite.Run(ctx, attempt, o.rewriter, o.cfg.RewriteTimeout)

	finalText = o.applyRules(finalText)

	out := output.New(o.sink, finalText, o.cfg.OutputMethod)
	deliverErr := out.Execute(ctx, o.textSink, o.lookupWindow())

	res := UtteranceResult{
		RawText:   raw,
		FinalText: finalText,
		Rewritten: attempt.Status() == domain.RewriteCompleted,
		Delivered: deliverErr == nil,
	}
	return res, deliverErr
}

// Abort discards the in-flight utterance without finalizing, for
// shutdown and restart paths.
func (o *Orchestrator) Abort() error {
	active, err := o.takeCurrent()
	if err != nil {
		return err
	}

	active.cancel()
	_ = active.audio.Stop()
	<-active.audioDone
	active.streams.Close()
	active.session.Fail(context.Canceled)

	o.capture.Stop()
	o.capture.Complete()
	return nil
}

func (o *Orchestrator) takeCurrent() (*utterance, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil, ErrNoActiveUtterance
	}
	active := o.current
	o.current = nil
	return active, nil
}

func (o *Orchestrator) putBack(active *utterance) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		o.current = active
	}
}

// pump moves microphone audio into the recognition streams until the
// capture stream ends.
func (o *Orchestrator) pump(active *utterance) {
	defer close(active.audioDone)

	buf := make([]byte, o.cfg.ChunkSize)
	for {
		n, err := active.audio.Read(buf)
		if n > 0 {
			active.streams.Send(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				o.logger.Error().Err(err).Msg("audio capture error")
			}
			return
		}
	}
}

func (o *Orchestrator) applyRules(text string) string {
	if o.rules == nil {
		return text
	}
	transformed, err := o.rules.Apply(text)
	if err != nil {
		o.logger.Error().Err(err).Msg("rules failed, delivering untransformed text")
		return text
	}
	return transformed
}

func (o *Orchestrator) lookupWindow() *domain.WindowContext {
	if o.window == nil {
		return nil
	}
	win, err := o.window.ActiveWindow()
	if err != nil {
		o.logger.Debug().Err(err).Msg("active window lookup failed")
		return nil
	}
	return win
}
