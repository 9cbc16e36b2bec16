package surge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// EventKind classifies a server progress event. The set is open: kinds
// the constants below don't name flow through verbatim, so new server
// event types never break a consumer.
type EventKind string

const (
	KindProgress EventKind = "progress"
	KindUpload   EventKind = "upload"
	KindFile     EventKind = "file"
	KindSuccess  EventKind = "success"
	KindInfo     EventKind = "info"
	KindError    EventKind = "error"

	// KindUnknown marks an event whose kind field was missing.
	KindUnknown EventKind = "unknown"
)

// Event is one decoded line of a deploy's progress stream. Raw holds
// the full original JSON object; typed accessors like [Event.Progress]
// and [Event.Info] decode the payloads of well-known kinds from it.
type Event struct {
	Kind    EventKind
	Message string
	Raw     json.RawMessage
}

// ProgressData is the payload of a [KindProgress] event, reporting
// per-file upload progress on the server side.
type ProgressData struct {
	ID      string
	Written int64
	Total   int64
	End     bool
}

// Progress decodes the event's progress payload. Older servers send
// the written count as a string, which is tolerated.
func (e Event) Progress() (ProgressData, error) {
	var raw struct {
		ID      string          `json:"id"`
		Written json.RawMessage `json:"written"`
		Total   int64           `json:"total"`
		End     *bool           `json:"end"`
	}
	if err := json.Unmarshal(e.Raw, &raw); err != nil {
		return ProgressData{}, errors.Wrap(errors.ErrCodeEvent, err, "decode progress payload")
	}
	written, err := flexInt(raw.Written)
	if err != nil {
		return ProgressData{}, errors.Wrap(errors.ErrCodeEvent, err, "decode progress written count")
	}
	return ProgressData{
		ID:      raw.ID,
		Written: written,
		Total:   raw.Total,
		End:     raw.End != nil && *raw.End,
	}, nil
}

// InfoData is the payload of the [KindInfo] event a successful deploy
// ends with: the deployment's URLs, configuration, certificates and
// revision metadata.
type InfoData struct {
	URLs      []URL        `json:"urls"`
	Config    DomainConfig `json:"config"`
	Certs     []Cert       `json:"certs"`
	Metadata  Metadata     `json:"metadata"`
	Instances []Instance   `json:"instances"`
}

// Info decodes the event's info payload.
func (e Event) Info() (InfoData, error) {
	var data InfoData
	if err := json.Unmarshal(e.Raw, &data); err != nil {
		return InfoData{}, errors.Wrap(errors.ErrCodeEvent, err, "decode info payload")
	}
	return data, nil
}

// flexInt decodes a JSON number that some server versions quote.
func flexInt(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

// EventStream decodes a newline-delimited JSON response incrementally.
// It is a forward-only pull decoder: each [EventStream.Next] call
// yields one event regardless of how the network chunked the bytes.
// Streams are not restartable; once drained they only return io.EOF.
type EventStream struct {
	body    io.ReadCloser
	r       *bufio.Reader
	pending error
}

func newEventStream(body io.ReadCloser) *EventStream {
	return &EventStream{body: body, r: bufio.NewReader(body)}
}

// Next returns the next event. It returns io.EOF when the stream ends
// cleanly, an [errors.EventError] for a line that was not valid JSON
// (the stream stays usable; call Next again for the following line),
// and a NETWORK_ERROR if the connection dies mid-stream. A final line
// without a trailing newline is still decoded; if it does not parse it
// is discarded and the stream ends cleanly.
func (s *EventStream) Next() (Event, error) {
	for {
		if s.pending != nil {
			return Event{}, s.pending
		}

		line, err := s.r.ReadBytes('\n')
		if err != nil {
			// A final line without a trailing newline is still
			// decoded below; the terminal error waits one turn.
			if err == io.EOF {
				s.pending = io.EOF
			} else {
				s.pending = errors.Wrap(errors.ErrCodeNetwork, err, "read event stream")
			}
		}

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		ev, decErr := decodeEvent(trimmed)
		if decErr != nil && s.pending == io.EOF {
			// An unterminated remainder that does not decode is a
			// truncated write, not an event; drop it and end cleanly.
			return Event{}, io.EOF
		}
		return ev, decErr
	}
}

// Close releases the underlying connection. Consumers should close
// every stream, drained or not.
func (s *EventStream) Close() error {
	return s.body.Close()
}

func decodeEvent(line []byte) (Event, error) {
	var probe struct {
		Kind    string `json:"kind"`
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return Event{}, &errors.EventError{Line: string(line), Cause: err}
	}

	// Current servers label events with "kind"; older ones used "type".
	kind := probe.Kind
	if kind == "" {
		kind = probe.Type
	}
	if kind == "" {
		kind = string(KindUnknown)
	}
	return Event{
		Kind:    EventKind(kind),
		Message: probe.Message,
		Raw:     json.RawMessage(line),
	}, nil
}
