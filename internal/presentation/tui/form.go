package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
	"github.com/nocap-placify/placify/pkg/presentation/view"
)

// sessionMsg carries the outcome of a service call.
type sessionMsg struct {
	session *domain.Session
	err     error
}

// resetMsg fires when a submitted session is due for its auto reset.
type resetMsg struct{}

// Form is an interactive terminal wizard bound to one session.
type Form struct {
	ctx       context.Context
	svc       ports.WizardService
	sessionID string

	view   view.View
	inputs []textinput.Model
	focus  int
	status string
	busy   bool
	kiosk  bool

	styles Styles
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithKiosk keeps the form open after a submission; it returns to the first
// step when the session resets, ready for the next user.
func WithKiosk(kiosk bool) FormOption {
	return func(f *Form) {
		f.kiosk = kiosk
	}
}

// NewForm creates a form for an existing session.
func NewForm(ctx context.Context, svc ports.WizardService, s *domain.Session, opts ...FormOption) (*Form, error) {
	f := &Form{
		ctx:       ctx,
		svc:       svc,
		sessionID: s.ID,
		styles:    DefaultStyles(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.load(s); err != nil {
		return nil, err
	}
	return f, nil
}

// Result returns the last rendered view.
func (f *Form) Result() view.View {
	return f.view
}

func (f *Form) load(s *domain.Session) error {
	v, err := f.svc.Render(s)
	if err != nil {
		return err
	}
	stepChanged := v.Step.Index != f.view.Step.Index || len(f.inputs) != len(v.Fields)
	f.view = v

	if stepChanged {
		f.inputs = make([]textinput.Model, len(v.Fields))
		f.focus = 0
	}
	for i, fv := range v.Fields {
		if stepChanged {
			in := textinput.New()
			in.Placeholder = fv.Placeholder
			in.CharLimit = 512
			in.Width = 48
			in.SetValue(fv.Value)
			f.inputs[i] = in
		}
	}
	// Jump to the first flagged field after a refused advance.
	for i, fv := range v.Fields {
		if fv.Error {
			f.focus = i
			break
		}
	}
	f.refocus()
	return nil
}

func (f *Form) refocus() {
	for i := range f.inputs {
		if i == f.focus && f.view.Interactive {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *Form) values() map[string]string {
	values := make(map[string]string, len(f.inputs))
	for i, fv := range f.view.Fields {
		values[fv.Name] = f.inputs[i].Value()
	}
	return values
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		return f.handleSession(msg)
	case resetMsg:
		return f, f.call(func(ctx context.Context) (*domain.Session, error) {
			return f.svc.Session(ctx, f.sessionID)
		})
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return f, tea.Quit
		}
		if f.busy {
			return f, nil
		}
		if !f.view.Interactive {
			if msg.String() == "enter" && !f.kiosk {
				return f, tea.Quit
			}
			return f, nil
		}
		switch msg.String() {
		case "tab", "down":
			f.move(1)
			return f, nil
		case "shift+tab", "up":
			f.move(-1)
			return f, nil
		case "ctrl+b":
			if f.view.CanRetreat {
				return f, f.retreat()
			}
			return f, nil
		case "enter":
			if f.view.Action == view.ActionSubmit {
				return f, f.submit()
			}
			if f.focus < len(f.inputs)-1 {
				f.move(1)
				return f, nil
			}
			return f, f.advance()
		}
	}

	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *Form) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.refocus()
}

func (f *Form) call(fn func(context.Context) (*domain.Session, error)) tea.Cmd {
	f.busy = true
	return func() tea.Msg {
		s, err := fn(f.ctx)
		return sessionMsg{session: s, err: err}
	}
}

func (f *Form) advance() tea.Cmd {
	values := f.values()
	return f.call(func(ctx context.Context) (*domain.Session, error) {
		if _, err := f.svc.SetValues(ctx, f.sessionID, values); err != nil {
			return nil, err
		}
		return f.svc.Advance(ctx, f.sessionID)
	})
}

func (f *Form) retreat() tea.Cmd {
	values := f.values()
	return f.call(func(ctx context.Context) (*domain.Session, error) {
		if len(values) > 0 {
			if _, err := f.svc.SetValues(ctx, f.sessionID, values); err != nil {
				return nil, err
			}
		}
		return f.svc.Retreat(ctx, f.sessionID)
	})
}

func (f *Form) submit() tea.Cmd {
	f.status = "Submitting..."
	return f.call(func(ctx context.Context) (*domain.Session, error) {
		return f.svc.Submit(ctx, f.sessionID)
	})
}

func (f *Form) handleSession(msg sessionMsg) (tea.Model, tea.Cmd) {
	f.busy = false
	f.status = ""
	switch {
	case errors.Is(msg.err, domain.ErrStepInvalid):
		f.status = "Please correct the highlighted fields."
	case msg.err != nil:
		f.status = msg.err.Error()
	}
	if msg.session == nil {
		return f, nil
	}
	if err := f.load(msg.session); err != nil {
		f.status = err.Error()
		return f, nil
	}

	if msg.session.Submitted && f.kiosk {
		wait := time.Until(msg.session.ResetAt)
		return f, tea.Tick(max(wait, 0), func(time.Time) tea.Msg { return resetMsg{} })
	}
	return f, nil
}

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder
	v := f.view
	s := f.styles

	b.WriteString(s.Title.Render(v.WizardTitle) + "\n")
	b.WriteString(s.Progress.Render(fmt.Sprintf("Step %d of %d  %s", v.Progress.Current, v.Progress.Total, bar(v.Progress.Percent, 20))) + "\n\n")
	b.WriteString(s.Title.Render(v.Step.Title) + "\n")
	if v.Step.Subtitle != "" {
		b.WriteString(s.Subtitle.Render(v.Step.Subtitle) + "\n")
	}
	b.WriteString("\n")

	for i, fv := range v.Fields {
		line := s.Label.Render(fv.Label) + f.inputs[i].View()
		if fv.Error {
			line += " " + s.Invalid.Render("invalid")
		}
		b.WriteString(line + "\n")
	}
	for _, fv := range v.Review {
		b.WriteString(s.Label.Render(fv.Label) + fv.Value + "\n")
	}
	b.WriteString("\n")

	switch {
	case v.Message != "":
		b.WriteString(s.Success.Render(v.Message) + "\n")
	case v.Failure != nil:
		b.WriteString(s.Failure.Render(fmt.Sprintf("Submission failed (%s): %s", v.Failure.Reason, v.Failure.Message)) + "\n")
	}
	if f.status != "" {
		b.WriteString(s.Invalid.Render(f.status) + "\n")
	}

	b.WriteString("\n" + s.Help.Render(f.help()) + "\n")
	return b.String()
}

func (f *Form) help() string {
	switch {
	case f.view.Submitted && f.kiosk:
		return "resetting for the next user... • esc quit"
	case !f.view.Interactive:
		return "enter/esc quit"
	case f.view.Action == view.ActionSubmit:
		return "enter submit • ctrl+b back • esc quit"
	case f.view.CanRetreat:
		return "tab next field • enter continue • ctrl+b back • esc quit"
	default:
		return "tab next field • enter continue • esc quit"
	}
}

func bar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
