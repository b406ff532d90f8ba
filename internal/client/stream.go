package client

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/myrtus0x0/triage/pkg/triage"
)

// lineStream frames a line-delimited JSON response body. A blank line ends
// the sequence even if the connection stays open and more bytes follow; a
// read or decode failure is fatal for the whole stream.
type lineStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
	err    error
}

func newLineStream(body io.ReadCloser) lineStream {
	return lineStream{
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// next returns the next non-blank line with surrounding whitespace trimmed.
func (s *lineStream) next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	line, err := s.reader.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = fmt.Errorf("reading stream: %w", err)

		return nil, s.err
	}

	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		s.err = triage.ErrEndOfStream

		return nil, s.err
	}

	return trimmed, nil
}

func (s *lineStream) fail(err error) error {
	s.err = err

	return err
}

func (s *lineStream) Close() error {
	return s.body.Close()
}

// eventStream implements triage.EventStream.
type eventStream struct {
	lineStream
}

func newEventStream(body io.ReadCloser) *eventStream {
	return &eventStream{lineStream: newLineStream(body)}
}

// Next decodes the next status event.
func (s *eventStream) Next() (*triage.SampleEvent, error) {
	line, err := s.next()
	if err != nil {
		return nil, err
	}

	var event triage.SampleEvent

	err = json.Unmarshal(line, &event)
	if err != nil {
		return nil, s.fail(fmt.Errorf("decoding event: %w", err))
	}

	return &event, nil
}

// logStream implements triage.LogStream.
type logStream struct {
	lineStream
}

func newLogStream(body io.ReadCloser) *logStream {
	return &logStream{lineStream: newLineStream(body)}
}

// Next returns the next kernel log entry as raw JSON.
func (s *logStream) Next() ([]byte, error) {
	line, err := s.next()
	if err != nil {
		return nil, err
	}

	if !json.Valid(line) {
		return nil, s.fail(fmt.Errorf("decoding log entry: %w", errInvalidJSONLine))
	}

	return line, nil
}

var errInvalidJSONLine = errors.New("invalid JSON line")
