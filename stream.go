package amigo

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/amigo-ai/amigo-sdk-go/headers"
)

// EventStream is a pull-based handle over an NDJSON conversation stream.
// Callers either iterate with Next or drain with Collect; both leave the
// underlying connection closed when done.
type EventStream struct {
	// RequestID echoes the X-Amigo-Request-Id header returned by the API.
	RequestID string
	stream    *ndjsonStream
}

// Next advances the stream, returning false when the stream is complete.
// It is pull-based: no internal buffering beyond the current NDJSON line,
// so slow consumers backpressure the server naturally.
func (s *EventStream) Next() (ConversationEvent, bool, error) {
	return s.stream.Next()
}

// Close terminates the underlying stream.
func (s *EventStream) Close() error {
	return s.stream.Close()
}

// InteractionResult aggregates a drained event stream.
type InteractionResult struct {
	ConversationID string
	InteractionID  string
	MessageID      string
	// FullMessage is the complete agent reply. The interaction-complete
	// payload is authoritative; accumulated new-message fragments are the
	// fallback when the stream ends without one.
	FullMessage string
	Events      int
}

// Collect drains the stream into an aggregated InteractionResult. It
// returns once the interaction completes (or the stream ends) and respects
// context cancellation. The stream is closed when the call returns.
func (s *EventStream) Collect(ctx context.Context) (*InteractionResult, error) {
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = s.Close() }()

	result := &InteractionResult{}
	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		event, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		result.Events++

		switch event.Type {
		case EventTypeConversationCreated:
			result.ConversationID = event.ConversationID
		case EventTypeNewMessage:
			builder.WriteString(event.Message)
		case EventTypeError:
			msg := strings.TrimSpace(event.ErrorMessage)
			if msg == "" {
				msg = "stream error"
			}
			code := strings.TrimSpace(event.ErrorCode)
			if code == "" {
				code = ErrorCodeServerError
			}
			return nil, &APIError{
				Code:      code,
				Message:   msg,
				RequestID: s.RequestID,
				Body:      event.Raw,
			}
		case EventTypeInteractionComplete:
			result.InteractionID = event.InteractionID
			result.MessageID = event.MessageID
			result.FullMessage = event.FullMessage
			if result.FullMessage == "" {
				result.FullMessage = builder.String()
			}
			return result, nil
		default:
			// user-message-available and current-agent-action carry no text
			// to aggregate.
		}
	}
	result.FullMessage = builder.String()
	return result, nil
}

type ndjsonStream struct {
	ctx       context.Context
	reader    *bufio.Reader
	body      io.ReadCloser
	telemetry TelemetryHooks
	closed    bool
}

func newNDJSONStream(ctx context.Context, body io.ReadCloser, telemetry TelemetryHooks) *ndjsonStream {
	return &ndjsonStream{
		ctx:       ctx,
		reader:    bufio.NewReader(body),
		body:      body,
		telemetry: telemetry,
	}
}

func (s *ndjsonStream) Next() (ConversationEvent, bool, error) {
	if s.closed {
		return ConversationEvent{}, false, nil
	}
	for {
		if err := s.ctx.Err(); err != nil {
			_ = s.Close()
			return ConversationEvent{}, false, err
		}
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(line) == 0 {
					_ = s.Close()
					return ConversationEvent{}, false, nil
				}
				// fall through: decode the final unterminated line
			} else {
				return ConversationEvent{}, false, fmt.Errorf("amigo: read stream: %w", err)
			}
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		event, perr := parseConversationEvent(line)
		if perr != nil {
			return ConversationEvent{}, false, fmt.Errorf("amigo: decode stream event: %w", perr)
		}
		if s.telemetry.OnStreamEvent != nil {
			s.telemetry.OnStreamEvent(s.ctx, event)
		}
		s.telemetry.metric(s.ctx, "sdk_stream_events_total", 1, map[string]string{"event": string(event.Type)})
		return event, true, nil
	}
}

func (s *ndjsonStream) readLine() ([]byte, error) {
	line, err := s.reader.ReadBytes('\n')
	return line, err
}

func (s *ndjsonStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

// openEventStream performs the request with Accept: application/x-ndjson
// and hands the body to an EventStream. Non-2xx responses are decoded into
// *APIError by send before any stream is constructed.
func (c *Client) openEventStream(req *http.Request) (*EventStream, error) {
	req.Header.Set("Accept", "application/x-ndjson")
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return &EventStream{
		RequestID: resp.Header.Get(headers.RequestID),
		stream:    newNDJSONStream(req.Context(), resp.Body, c.telemetry),
	}, nil
}
