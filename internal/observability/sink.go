package observability

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// MultiSink fans every event out to each wrapped sink in order.
type MultiSink []ports.EventSink

func (m MultiSink) LanguageAdded(lang domain.Language) {
	for _, s := range m {
		s.LanguageAdded(lang)
	}
}

func (m MultiSink) LanguageRemoved(lang domain.Language) {
	for _, s := range m {
		s.LanguageRemoved(lang)
	}
}

func (m MultiSink) ShortcutEnabled() {
	for _, s := range m {
		s.ShortcutEnabled()
	}
}

func (m MultiSink) ShortcutDisabled() {
	for _, s := range m {
		s.ShortcutDisabled()
	}
}

func (m MultiSink) CaptureStarted(sessionID uuid.UUID, startedAt time.Time) {
	for _, s := range m {
		s.CaptureStarted(sessionID, startedAt)
	}
}

func (m MultiSink) CaptureStopped(sessionID uuid.UUID, stoppedAt time.Time) {
	for _, s := range m {
		s.CaptureStopped(sessionID, stoppedAt)
	}
}

func (m MultiSink) CaptureCompleted(sessionID uuid.UUID) {
	for _, s := range m {
		s.CaptureCompleted(sessionID)
	}
}

func (m MultiSink) RecognitionStarted(sessionID uuid.UUID, languages []domain.Language) {
	for _, s := range m {
		s.RecognitionStarted(sessionID, languages)
	}
}

func (m MultiSink) PartialTranscript(lang domain.Language, text string) {
	for _, s := range m {
		s.PartialTranscript(lang, text)
	}
}

func (m MultiSink) RecognitionFinalized(sessionID uuid.UUID, resultID uuid.UUID, fullText string, segments []domain.Segment) {
	for _, s := range m {
		s.RecognitionFinalized(sessionID, resultID, fullText, segments)
	}
}

func (m MultiSink) RecognitionFailed(sessionID uuid.UUID, err error) {
	for _, s := range m {
		s.RecognitionFailed(sessionID, err)
	}
}

func (m MultiSink) RewriteStarted(rewriteID uuid.UUID, rawText string) {
	for _, s := range m {
		s.RewriteStarted(rewriteID, rawText)
	}
}

func (m MultiSink) RewriteCompleted(rewriteID uuid.UUID, rawText, rewrittenText string) {
	for _, s := range m {
		s.RewriteCompleted(rewriteID, rawText, rewrittenText)
	}
}

func (m MultiSink) RewriteFailed(rewriteID uuid.UUID, err error) {
	for _, s := range m {
		s.RewriteFailed(rewriteID, err)
	}
}

func (m MultiSink) OutputCompleted(outputID uuid.UUID, text string, method domain.OutputMethod) {
	for _, s := range m {
		s.OutputCompleted(outputID, text, method)
	}
}

func (m MultiSink) OutputCopied(outputID uuid.UUID, text string) {
	for _, s := range m {
		s.OutputCopied(outputID, text)
	}
}

func (m MultiSink) OutputFailed(outputID uuid.UUID, err error) {
	for _, s := range m {
		s.OutputFailed(outputID, err)
	}
}

func (m MultiSink) TransitionRejected(entity, operation, state string) {
	for _, s := range m {
		s.TransitionRejected(entity, operation, state)
	}
}

// LogSink writes every pipeline event to the structured log.
type LogSink struct {
	Logger zerolog.Logger
}

func (l LogSink) LanguageAdded(lang domain.Language) {
	l.Logger.Info().Str("language", string(lang)).Msg("language enabled")
}

func (l LogSink) LanguageRemoved(lang domain.Language) {
	l.Logger.Info().Str("language", string(lang)).Msg("language disabled")
}

func (l LogSink) ShortcutEnabled() {
	l.Logger.Info().Msg("push-to-talk shortcut enabled")
}

func (l LogSink) ShortcutDisabled() {
	l.Logger.Info().Msg("push-to-talk shortcut disabled")
}

func (l LogSink) CaptureStarted(sessionID uuid.UUID, _ time.Time) {
	l.Logger.Info().Str("session", sessionID.String()).Msg("capture started")
}

func (l LogSink) CaptureStopped(sessionID uuid.UUID, _ time.Time) {
	l.Logger.Info().Str("session", sessionID.String()).Msg("capture stopped")
}

func (l LogSink) CaptureCompleted(sessionID uuid.UUID) {
	l.Logger.Debug().Str("session", sessionID.String()).Msg("capture completed")
}

func (l LogSink) RecognitionStarted(sessionID uuid.UUID, languages []domain.Language) {
	l.Logger.Debug().
		Str("session", sessionID.String()).
		Int("languages", len(languages)).
		Msg("recognition started")
}

func (l LogSink) PartialTranscript(lang domain.Language, text string) {
	l.Logger.Debug().Str("language", string(lang)).Str("text", text).Msg("partial transcript")
}

func (l LogSink) RecognitionFinalized(sessionID uuid.UUID, _ uuid.UUID, fullText string, segments []domain.Segment) {
	l.Logger.Info().
		Str("session", sessionID.String()).
		Int("segments", len(segments)).
		Int("chars", len(fullText)).
		Msg("recognition finalized")
}

func (l LogSink) RecognitionFailed(sessionID uuid.UUID, err error) {
	l.Logger.Warn().Str("session", sessionID.String()).Err(err).Msg("recognition failed")
}

func (l LogSink) RewriteStarted(rewriteID uuid.UUID, _ string) {
	l.Logger.Debug().Str("rewrite", rewriteID.String()).Msg("rewrite started")
}

func (l LogSink) RewriteCompleted(rewriteID uuid.UUID, _, _ string) {
	l.Logger.Info().Str("rewrite", rewriteID.String()).Msg("rewrite completed")
}

func (l LogSink) RewriteFailed(rewriteID uuid.UUID, err error) {
	l.Logger.Warn().Str("rewrite", rewriteID.String()).Err(err).Msg("rewrite failed, using raw text")
}

func (l LogSink) OutputCompleted(outputID uuid.UUID, _ string, method domain.OutputMethod) {
	l.Logger.Info().Str("output", outputID.String()).Str("method", string(method)).Msg("text delivered")
}

func (l LogSink) OutputCopied(outputID uuid.UUID, _ string) {
	l.Logger.Debug().Str("output", outputID.String()).Msg("text copied to clipboard")
}

func (l LogSink) OutputFailed(outputID uuid.UUID, err error) {
	l.Logger.Error().Str("output", outputID.String()).Err(err).Msg("text delivery failed")
}

func (l LogSink) TransitionRejected(entity, operation, state string) {
	l.Logger.Debug().
		Str("entity", entity).
		Str("operation", operation).
		Str("state", state).
		Msg("transition rejected")
}

// MetricsSink turns pipeline events into Prometheus series.
type MetricsSink struct {
	mu       sync.Mutex
	captures map[uuid.UUID]time.Time
}

// NewMetricsSink creates a metrics-recording event sink.
func NewMetricsSink() *MetricsSink {
	return &MetricsSink{captures: make(map[uuid.UUID]time.Time)}
}

func (m *MetricsSink) LanguageAdded(domain.Language)   {}
func (m *MetricsSink) LanguageRemoved(domain.Language) {}
func (m *MetricsSink) ShortcutEnabled()                {}
func (m *MetricsSink) ShortcutDisabled()               {}

func (m *MetricsSink) CaptureStarted(sessionID uuid.UUID, startedAt time.Time) {
	utterancesTotal.Inc()
	m.mu.Lock()
	m.captures[sessionID] = startedAt
	m.mu.Unlock()
}

func (m *MetricsSink) CaptureStopped(sessionID uuid.UUID, stoppedAt time.Time) {
	m.mu.Lock()
	startedAt, ok := m.captures[sessionID]
	delete(m.captures, sessionID)
	m.mu.Unlock()
	if ok {
		utteranceDuration.Observe(stoppedAt.Sub(startedAt).Seconds())
	}
}

func (m *MetricsSink) CaptureCompleted(uuid.UUID) {}

func (m *MetricsSink) RecognitionStarted(uuid.UUID, []domain.Language) {}

func (m *MetricsSink) PartialTranscript(lang domain.Language, _ string) {
	partialTranscripts.WithLabelValues(string(lang)).Inc()
}

func (m *MetricsSink) RecognitionFinalized(uuid.UUID, uuid.UUID, string, []domain.Segment) {
	recognitionResults.WithLabelValues("completed").Inc()
}

func (m *MetricsSink) RecognitionFailed(uuid.UUID, error) {
	recognitionResults.WithLabelValues("failed").Inc()
}

func (m *MetricsSink) RewriteStarted(uuid.UUID, string) {}

func (m *MetricsSink) RewriteCompleted(uuid.UUID, string, string) {
	rewriteResults.WithLabelValues("completed").Inc()
}

func (m *MetricsSink) RewriteFailed(uuid.UUID, error) {
	rewriteResults.WithLabelValues("failed").Inc()
}

func (m *MetricsSink) OutputCompleted(uuid.UUID, string, domain.OutputMethod) {
	outputResults.WithLabelValues("completed").Inc()
}

func (m *MetricsSink) OutputCopied(uuid.UUID, string) {}

func (m *MetricsSink) OutputFailed(uuid.UUID, error) {
	outputResults.WithLabelValues("failed").Inc()
}

func (m *MetricsSink) TransitionRejected(entity, operation, _ string) {
	rejectedTransitions.WithLabelValues(entity, operation).Inc()
}
