package recognition

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"murmur/internal/domain"
	"murmur/internal/ports"
)

// StreamSet holds the per-language recognition streams of one cycle, in
// language enablement order. Streams complete independently; Finalize is
// the join-all barrier that waits for every stream (or a deadline)
// before merging, because a partial merge would be a correctness bug.
type StreamSet struct {
	streams []*languageStream
	sink    ports.EventSink
	logger  zerolog.Logger
}

type languageStream struct {
	lang       domain.Language
	stream     ports.RecognitionStream
	transcript *transcript
	eventsDone chan struct{}

	mu   sync.Mutex
	dead bool
}

// OpenStreams opens one recognition stream per enabled language. An
// unavailable engine or a failed open yields no stream for that
// language; the cycle carries on with the rest.
func OpenStreams(
	ctx context.Context,
	engine ports.RecognitionEngine,
	languages []domain.Language,
	cfg ports.StreamConfig,
	sink ports.EventSink,
	logger zerolog.Logger,
) *StreamSet {
	if sink == nil {
		sink = ports.NopSink{}
	}
	set := &StreamSet{sink: sink, logger: logger}

	for _, lang := range languages {
		if !engine.Available(lang) {
			logger.Warn().Str("language", string(lang)).Msg("recognition engine unavailable, skipping language")
			continue
		}
		stream, err := engine.Open(ctx, lang, cfg)
		if err != nil {
			logger.Error().Err(err).Str("language", string(lang)).Msg("failed to open recognition stream")
			continue
		}
		ls := &languageStream{
			lang:       lang,
			stream:     stream,
			transcript: &transcript{},
			eventsDone: make(chan struct{}),
		}
		set.streams = append(set.streams, ls)
		go set.consume(ls)
	}

	return set
}

// Empty reports whether no stream could be opened.
func (s *StreamSet) Empty() bool { return len(s.streams) == 0 }

// Send broadcasts one audio chunk to every live stream. A stream whose
// send fails is marked dead and logged; the other streams keep going.
func (s *StreamSet) Send(chunk []byte) {
	for _, ls := range s.streams {
		ls.mu.Lock()
		dead := ls.dead
		ls.mu.Unlock()
		if dead {
			continue
		}
		if err := ls.stream.SendAudio(chunk); err != nil {
			ls.mu.Lock()
			ls.dead = true
			ls.mu.Unlock()
			s.logger.Error().Err(err).Str("language", string(ls.lang)).Msg("failed to stream audio")
		}
	}
}

// Finalize signals end-of-audio to every stream, waits for all of them
// to report completion (bounded by timeout), and merges the per-language
// transcripts into one ordered result. For each language with non-empty
// text, one segment holds that language's entire accumulated transcript;
// order follows language enablement order, densely over non-empty
// languages. Returns ErrEmptyResult when nothing was recognized.
func (s *StreamSet) Finalize(ctx context.Context, timeout time.Duration) (*Result, error) {
	for _, ls := range s.streams {
		if err := ls.stream.CloseSend(); err != nil {
			s.logger.Warn().Err(err).Str("language", string(ls.lang)).Msg("failed to close audio send")
		}
	}

	s.await(ctx, timeout)

	result := NewResult()
	order := 0
	for _, ls := range s.streams {
		text := ls.transcript.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		result.AddSegment(domain.Segment{Text: text, Language: ls.lang, Order: order})
		order++
	}

	if result.Empty() {
		return nil, ErrEmptyResult
	}
	return result, nil
}

// Close tears down every stream without merging, for the abort path.
func (s *StreamSet) Close() {
	for _, ls := range s.streams {
		if err := ls.stream.Close(); err != nil {
			s.logger.Debug().Err(err).Str("language", string(ls.lang)).Msg("stream close")
		}
	}
	for _, ls := range s.streams {
		<-ls.eventsDone
	}
}

// await is the explicit wait-for-all-streams-or-timeout barrier. Streams
// that outlive the deadline are force-closed, which unblocks their Wait
// and flushes whatever transcript they accumulated so far.
func (s *StreamSet) await(ctx context.Context, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for _, ls := range s.streams {
			wg.Add(1)
			go func(ls *languageStream) {
				defer wg.Done()
				if err := ls.stream.Wait(); err != nil {
					s.logger.Warn().Err(err).Str("language", string(ls.lang)).Msg("recognition stream ended with error")
				}
				<-ls.eventsDone
			}(ls)
		}
		wg.Wait()
	}()

	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return
	case <-ctx.Done():
	case <-timer.C:
		s.logger.Warn().Dur("timeout", timeout).Msg("finalize deadline hit, cutting off slow streams")
	}

	for _, ls := range s.streams {
		_ = ls.stream.Close()
	}
	<-done
}

// consume drains one stream's transcript events into its accumulator and
// forwards partials to observers.
func (s *StreamSet) consume(ls *languageStream) {
	defer close(ls.eventsDone)

	for event := range ls.stream.Events() {
		if strings.TrimSpace(event.Text) == "" {
			continue
		}
		ls.transcript.Add(event)
		if event.Kind == domain.TranscriptKindPartial {
			s.sink.PartialTranscript(ls.lang, strings.TrimSpace(event.Text))
		}
	}
}
