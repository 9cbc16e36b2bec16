package surge

import (
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// chunkReader yields its payload n bytes at a time, simulating
// arbitrary network chunk boundaries.
type chunkReader struct {
	data []byte
	n    int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.n
	if n > len(r.data) {
		n = len(r.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

// streamOf builds an EventStream over a fixed payload delivered in
// chunkSize-byte reads.
func streamOf(t *testing.T, payload string, chunkSize int) *EventStream {
	t.Helper()
	return newEventStream(io.NopCloser(&chunkReader{data: []byte(payload), n: chunkSize}))
}

// drain reads the stream to EOF, collecting events and per-item errors.
func drain(t *testing.T, s *EventStream) (events []Event, itemErrs []error) {
	t.Helper()
	for {
		ev, err := s.Next()
		if err == io.EOF {
			return events, itemErrs
		}
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		events = append(events, ev)
	}
}

func TestEventStreamChunkBoundaryInvariance(t *testing.T) {
	payload := `{"kind":"file","message":"index.html"}` + "\n" +
		`{"kind":"upload","message":"uploading"}` + "\n" +
		`{"kind":"success","message":"done"}` + "\n"

	want := []EventKind{KindFile, KindUpload, KindSuccess}

	// One-byte chunks, a boundary mid-line, and one giant chunk must
	// all decode to the identical sequence.
	for _, chunkSize := range []int{1, 7, 40, len(payload)} {
		events, itemErrs := drain(t, streamOf(t, payload, chunkSize))
		if len(itemErrs) != 0 {
			t.Fatalf("chunk size %d: unexpected item errors: %v", chunkSize, itemErrs)
		}
		if len(events) != len(want) {
			t.Fatalf("chunk size %d: got %d events, want %d", chunkSize, len(events), len(want))
		}
		for i, ev := range events {
			if ev.Kind != want[i] {
				t.Errorf("chunk size %d: event %d kind = %q, want %q", chunkSize, i, ev.Kind, want[i])
			}
		}
	}
}

func TestEventStreamMalformedLineDoesNotTerminate(t *testing.T) {
	payload := `{"kind":"file","message":"a.html"}` + "\n" +
		`{not json at all` + "\n" +
		`{"kind":"success","message":"done"}` + "\n"

	events, itemErrs := drain(t, streamOf(t, payload, 5))

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != KindFile || events[1].Kind != KindSuccess {
		t.Errorf("events around the bad line = %q, %q", events[0].Kind, events[1].Kind)
	}
	if len(itemErrs) != 1 {
		t.Fatalf("got %d item errors, want 1", len(itemErrs))
	}
	var evErr *errors.EventError
	if !stderrors.As(itemErrs[0], &evErr) {
		t.Fatalf("item error is %T, want *errors.EventError", itemErrs[0])
	}
	if !strings.Contains(evErr.Line, "not json") {
		t.Errorf("EventError.Line = %q, want the raw bad line", evErr.Line)
	}
	if errors.GetCode(itemErrs[0]) != errors.ErrCodeEvent {
		t.Errorf("item error code = %q, want %q", errors.GetCode(itemErrs[0]), errors.ErrCodeEvent)
	}
}

func TestEventStreamTrailingLineWithoutNewline(t *testing.T) {
	payload := `{"kind":"upload","message":"uploading"}` + "\n" +
		`{"kind":"success","message":"done"}` // no trailing newline

	events, itemErrs := drain(t, streamOf(t, payload, 3))
	if len(itemErrs) != 0 {
		t.Fatalf("unexpected item errors: %v", itemErrs)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[1].Kind != KindSuccess {
		t.Errorf("trailing event kind = %q, want %q", events[1].Kind, KindSuccess)
	}
}

func TestEventStreamUnparsableRemainderDroppedSilently(t *testing.T) {
	payload := `{"kind":"upload","message":"uploading"}` + "\n" + `{"kind":"succ` // truncated mid-line

	events, itemErrs := drain(t, streamOf(t, payload, 9))
	if len(events) != 1 || events[0].Kind != KindUpload {
		t.Fatalf("got %d events, want only the complete one", len(events))
	}
	// Truncation is benign transport loss, not a decode failure.
	if len(itemErrs) != 0 {
		t.Errorf("truncated remainder produced errors: %v", itemErrs)
	}
}

func TestEventStreamSkipsBlankLines(t *testing.T) {
	payload := "\n\n" + `{"kind":"success","message":"done"}` + "\n\n"
	events, itemErrs := drain(t, streamOf(t, payload, len(payload)))
	if len(itemErrs) != 0 || len(events) != 1 {
		t.Fatalf("events = %d, errors = %v; want exactly one event", len(events), itemErrs)
	}
}

func TestEventStreamExhaustedStaysAtEOF(t *testing.T) {
	s := streamOf(t, `{"kind":"success"}`+"\n", 64)
	drain(t, s)
	for range 3 {
		if _, err := s.Next(); err != io.EOF {
			t.Fatalf("Next after EOF = %v, want io.EOF", err)
		}
	}
}

func TestDecodeEventKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want EventKind
		msg  string
	}{
		{"kind field", `{"kind":"progress","message":"50%"}`, KindProgress, "50%"},
		{"legacy type field", `{"type":"upload","message":"up"}`, KindUpload, "up"},
		{"kind wins over type", `{"kind":"file","type":"upload"}`, KindFile, ""},
		{"unrecognized kind passes through", `{"kind":"telemetry"}`, EventKind("telemetry"), ""},
		{"missing kind maps to unknown", `{"message":"hello"}`, KindUnknown, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := decodeEvent([]byte(tt.line))
			if err != nil {
				t.Fatalf("decodeEvent(%q) error: %v", tt.line, err)
			}
			if ev.Kind != tt.want {
				t.Errorf("kind = %q, want %q", ev.Kind, tt.want)
			}
			if ev.Message != tt.msg {
				t.Errorf("message = %q, want %q", ev.Message, tt.msg)
			}
			if string(ev.Raw) != tt.line {
				t.Errorf("raw payload not preserved: %s", ev.Raw)
			}
		})
	}
}

func TestEventProgressPayload(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ProgressData
	}{
		{
			"numeric written",
			`{"kind":"progress","id":"index.html","written":1024,"total":2048}`,
			ProgressData{ID: "index.html", Written: 1024, Total: 2048},
		},
		{
			"quoted written from older servers",
			`{"kind":"progress","id":"a.css","written":"512","total":512,"end":true}`,
			ProgressData{ID: "a.css", Written: 512, Total: 512, End: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := decodeEvent([]byte(tt.line))
			if err != nil {
				t.Fatal(err)
			}
			got, err := ev.Progress()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Progress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEventInfoPayload(t *testing.T) {
	line := `{"kind":"info","urls":[{"name":"preview","domain":"123-demo.surge.sh"}],"metadata":{"rev":7}}`
	ev, err := decodeEvent([]byte(line))
	if err != nil {
		t.Fatal(err)
	}
	info, err := ev.Info()
	if err != nil {
		t.Fatal(err)
	}
	if len(info.URLs) != 1 || info.URLs[0].Domain != "123-demo.surge.sh" {
		t.Errorf("URLs = %+v", info.URLs)
	}
	if info.Metadata.Rev != 7 {
		t.Errorf("Metadata.Rev = %d, want 7", info.Metadata.Rev)
	}
}
