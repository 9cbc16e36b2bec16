package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/surge"
)

// =============================================================================
// PublishModel - Live deploy progress
// =============================================================================

// tailLen is how many recently uploaded files stay visible.
const tailLen = 6

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type publishEventMsg surge.Event

type publishSkipMsg struct{ err error }

type publishDoneMsg struct{}

type publishFailMsg struct{ err error }

type spinnerTickMsg time.Time

// PublishModel is the bubbletea model that renders a deploy's progress
// stream: the file currently uploading, a short tail of finished files
// and the closing success line with the deployment's URLs.
type PublishModel struct {
	stream *surge.EventStream

	frame    int
	status   string
	current  string
	written  int64
	perFile  map[string]int64
	recent   []string
	uploaded int
	skipped  int

	success string
	info    *surge.InfoData
	done    bool

	// Err is the stream failure, or context.Canceled after ctrl+c.
	Err error
}

// NewPublishModel creates a progress model reading from stream.
func NewPublishModel(stream *surge.EventStream) PublishModel {
	return PublishModel{stream: stream, status: "Uploading", perFile: map[string]int64{}}
}

func (m PublishModel) Init() tea.Cmd {
	return tea.Batch(m.readEvent(), spinnerTick())
}

// readEvent pulls the next event off the stream in the background.
func (m PublishModel) readEvent() tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		ev, err := stream.Next()
		if err == io.EOF {
			return publishDoneMsg{}
		}
		if err != nil {
			if errors.Is(err, errors.ErrCodeEvent) {
				return publishSkipMsg{err: err}
			}
			return publishFailMsg{err: err}
		}
		return publishEventMsg(ev)
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (m PublishModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Err = context.Canceled
			return m, tea.Quit
		}
		return m, nil

	case spinnerTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, spinnerTick()

	case publishEventMsg:
		m.apply(surge.Event(msg))
		return m, m.readEvent()

	case publishSkipMsg:
		m.skipped++
		return m, m.readEvent()

	case publishDoneMsg:
		m.done = true
		return m, tea.Quit

	case publishFailMsg:
		m.Err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// apply folds one stream event into the display state.
func (m *PublishModel) apply(ev surge.Event) {
	switch ev.Kind {
	case surge.KindFile:
		m.current = ev.Message
	case surge.KindProgress:
		pd, err := ev.Progress()
		if err != nil {
			m.skipped++
			return
		}
		m.current = pd.ID
		// The written count is cumulative per file, so only the
		// growth since the last event counts toward the total.
		if pd.Written > m.perFile[pd.ID] {
			m.written += pd.Written - m.perFile[pd.ID]
			m.perFile[pd.ID] = pd.Written
		}
		if pd.End {
			m.uploaded++
			m.recent = append(m.recent, pd.ID)
			if len(m.recent) > tailLen {
				m.recent = m.recent[1:]
			}
		}
	case surge.KindSuccess:
		m.success = ev.Message
		m.current = ""
		m.status = "Finishing"
	case surge.KindInfo:
		if info, err := ev.Info(); err == nil {
			m.info = &info
		}
	case surge.KindError:
		m.Err = errors.New(errors.ErrCodeAPI, "%s", ev.Message)
	}
}

func (m PublishModel) View() string {
	var b strings.Builder

	for _, f := range m.recent {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(iconSuccess + " " + f))
		b.WriteString("\n")
	}

	if m.done {
		return b.String()
	}

	line := fmt.Sprintf("%s %s", spinnerFrames[m.frame], m.status)
	if m.current != "" {
		line += " " + StyleValue.Render(m.current)
	}
	if m.written > 0 {
		line += " " + StyleDim.Render(fmt.Sprintf("(%d files, %s)", m.uploaded, formatSize(m.written)))
	}
	b.WriteString("  ")
	b.WriteString(styleIconSpinner.Render(line))
	b.WriteString("\n")

	return b.String()
}

// consumeTUI renders the deploy stream as a live progress display and
// prints the closing summary once the program exits, so it survives in
// the scrollback.
func (c *CLI) consumeTUI(ctx context.Context, stream *surge.EventStream) error {
	p := tea.NewProgram(NewPublishModel(stream), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "progress display failed")
	}

	m, ok := final.(PublishModel)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "unexpected model type %T", final)
	}
	if m.Err != nil {
		return m.Err
	}
	if m.skipped > 0 {
		printWarning("Skipped %d undecodable progress events", m.skipped)
	}
	if m.success != "" {
		printSuccess("%s", m.success)
	} else {
		printSuccess("Upload complete (%d files, %s)", m.uploaded, formatSize(m.written))
	}
	if m.info != nil {
		printNewline()
		for _, u := range m.info.URLs {
			printURL(u.Name, u.Domain)
		}
	}
	return nil
}
