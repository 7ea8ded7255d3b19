package domain

import (
	"fmt"
	"strings"
)

// Language identifies one speech recognition language.
type Language string

const (
	LanguageJapanese Language = "ja-JP"
	LanguageEnglish  Language = "en-US"
)

// DisplayName returns a human-readable name for notifications and logs.
func (l Language) DisplayName() string {
	switch l {
	case LanguageJapanese:
		return "日本語"
	case LanguageEnglish:
		return "English"
	default:
		return string(l)
	}
}

// ShortCode returns the two-letter code recognition back-ends expect.
func (l Language) ShortCode() string {
	if idx := strings.IndexByte(string(l), '-'); idx > 0 {
		return string(l)[:idx]
	}
	return string(l)
}

// ParseLanguage accepts either a full tag ("ja-JP") or a short code ("ja").
func ParseLanguage(value string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ja", "ja-jp", "japanese":
		return LanguageJapanese, nil
	case "en", "en-us", "english":
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language %q", value)
	}
}

// CaptureStatus models the push-to-talk capture lifecycle.
type CaptureStatus string

const (
	CaptureIdle       CaptureStatus = "idle"
	CaptureRecording  CaptureStatus = "recording"
	CaptureProcessing CaptureStatus = "processing"
)

// RecognitionStatus models one recognition cycle.
type RecognitionStatus string

const (
	RecognitionIdle        RecognitionStatus = "idle"
	RecognitionRecognizing RecognitionStatus = "recognizing"
	RecognitionFinalizing  RecognitionStatus = "finalizing"
	RecognitionCompleted   RecognitionStatus = "completed"
	RecognitionFailed      RecognitionStatus = "failed"
)

// RewriteStatus models the enhancement pass over recognized text.
type RewriteStatus string

const (
	RewritePending    RewriteStatus = "pending"
	RewriteProcessing RewriteStatus = "processing"
	RewriteCompleted  RewriteStatus = "completed"
	RewriteFailed     RewriteStatus = "failed"
)

// OutputStatus models the delivery of final text.
type OutputStatus string

const (
	OutputPending    OutputStatus = "pending"
	OutputOutputting OutputStatus = "outputting"
	OutputCompleted  OutputStatus = "completed"
	OutputFailed     OutputStatus = "failed"
)

// OutputMethod selects the destination(s) for final text.
type OutputMethod string

const (
	OutputActiveField OutputMethod = "ActiveField"
	OutputClipboard   OutputMethod = "Clipboard"
	OutputBoth        OutputMethod = "Both"
)

// ParseOutputMethod resolves a configured output method name.
func ParseOutputMethod(value string) (OutputMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "activefield", "active-field", "field":
		return OutputActiveField, nil
	case "clipboard":
		return OutputClipboard, nil
	case "both":
		return OutputBoth, nil
	default:
		return "", fmt.Errorf("unsupported output method %q", value)
	}
}

// Segment is one ordered span of recognized text in a single language.
// Full text is built by sorting segments by Order, never by insertion time.
type Segment struct {
	Text     string
	Language Language
	Order    int
}

// TranscriptKind identifies whether a stream event is partial or final text.
type TranscriptKind string

const (
	TranscriptKindPartial TranscriptKind = "partial"
	TranscriptKindFinal   TranscriptKind = "final"
)

// TranscriptEvent represents incremental transcription output from a
// recognition stream.
type TranscriptEvent struct {
	Kind          TranscriptKind
	Text          string
	IsSpeechFinal bool
}

// WindowContext describes the window that owned focus when an utterance
// finished. It may be absent; delivery must not depend on it.
type WindowContext struct {
	ApplicationName string
	WindowTitle     string
	ProcessID       int
}
