package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/armview/internal/config"
)

var presetInfo = map[string]string{
	"gentle":   "low torque, early release",
	"standard": "45° release",
	"steep":    "wound back, late release",
	"reverse":  "clockwise launch",
}

type formState int

const (
	stateMenu formState = iota
	stateEdit
)

type param struct {
	name string
	step float64
	get  func(*config.Experiment) *float64
}

var params = []param{
	{"torque", 0.1, func(e *config.Experiment) *float64 { return &e.MotorTorque }},
	{"start", 5, func(e *config.Experiment) *float64 { return &e.StartAngleDeg }},
	{"release", 5, func(e *config.Experiment) *float64 { return &e.ReleaseAngleDeg }},
}

// Form lets the user pick a preset and adjust the experiment before a run.
type Form struct {
	state     formState
	cursor    int
	presets   []string
	exp       config.Experiment
	initial   config.Experiment
	paramIdx  int
	editing   bool
	editBuf   string
	err       error
	submitted bool
	styles    styles
}

// NewForm starts at the preset menu. The last menu entry keeps initial.
func NewForm(initial config.Experiment, theme Theme) Form {
	return Form{
		state:   stateMenu,
		presets: append(config.ListPresets(), "custom"),
		exp:     initial,
		initial: initial,
		styles:  newStyles(theme),
	}
}

// Experiment returns the submitted experiment; ok is false when the user
// quit without starting.
func (f Form) Experiment() (exp config.Experiment, ok bool) {
	return f.exp, f.submitted
}

func (f Form) Init() tea.Cmd { return nil }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	switch f.state {
	case stateMenu:
		return f.menuKey(key)
	default:
		return f.editKey(key)
	}
}

func (f Form) menuKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return f, tea.Quit
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.presets)-1 {
			f.cursor++
		}
	case "enter", " ":
		if p := config.GetPreset(f.presets[f.cursor]); p != nil {
			f.exp = *p
		} else {
			f.exp = f.initial
		}
		f.state, f.paramIdx, f.err = stateEdit, 0, nil
	}
	return f, nil
}

func (f Form) editKey(msg tea.KeyMsg) (Form, tea.Cmd) {
	if f.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(f.editBuf, 64); err == nil {
				*params[f.paramIdx].get(&f.exp) = v
				f.err = nil
			} else {
				f.err = fmt.Errorf("%s: not a number", params[f.paramIdx].name)
			}
			f.editing, f.editBuf = false, ""
		case "esc":
			f.editing, f.editBuf = false, ""
		case "backspace":
			if len(f.editBuf) > 0 {
				f.editBuf = f.editBuf[:len(f.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				f.editBuf += s
			}
		}
		return f, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return f, tea.Quit
	case "q", "esc":
		f.state = stateMenu
	case "up", "k":
		if f.paramIdx > 0 {
			f.paramIdx--
		}
	case "down", "j":
		if f.paramIdx < len(params)-1 {
			f.paramIdx++
		}
	case "enter", " ":
		f.editing = true
		f.editBuf = strconv.FormatFloat(*params[f.paramIdx].get(&f.exp), 'f', -1, 64)
	case "left", "h":
		*params[f.paramIdx].get(&f.exp) -= params[f.paramIdx].step
	case "right", "l":
		*params[f.paramIdx].get(&f.exp) += params[f.paramIdx].step
	case "s":
		if err := f.exp.Validate(); err != nil {
			f.err = err
			return f, nil
		}
		f.submitted = true
		return f, tea.Quit
	}
	return f, nil
}

func (f Form) View() string {
	if f.state == stateMenu {
		return f.viewMenu()
	}
	return f.viewEdit()
}

func (f Form) viewMenu() string {
	st := f.styles
	var b strings.Builder
	b.WriteString("\n\n    " + st.accent.Render("ARMVIEW") + "\n    " + st.muted.Render("rotating arm launcher") + "\n    " + st.muted.Render("─────────────────────────") + "\n\n")
	for i, name := range f.presets {
		desc := presetInfo[name]
		if name == "custom" {
			desc = "start from current settings"
		}
		if i == f.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.accent.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-10s", name)), st.graph.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.muted.Render(fmt.Sprintf("%-10s", name)), st.muted.Render(desc)))
		}
	}
	b.WriteString("\n    " + st.keyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (f Form) viewEdit() string {
	st := f.styles
	var b strings.Builder
	b.WriteString("\n\n    " + st.accent.Render("EXPERIMENT") + "\n    " + st.muted.Render("─────────────────────────") + "\n\n")
	for i, p := range params {
		val := fmt.Sprintf("%8.2f", *p.get(&f.exp))
		if f.editing && i == f.paramIdx {
			val = fmt.Sprintf("%8s", f.editBuf+"_")
		}
		if i == f.paramIdx {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", st.accent.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-10s", p.name)), st.accent.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", st.muted.Render(fmt.Sprintf("%-10s", p.name)), st.muted.Render(val)))
		}
	}
	if f.err != nil {
		b.WriteString("\n    " + st.bad.Render(f.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.keyHint.Render("j/k select  h/l adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

// RunForm shows the form full screen and returns the chosen experiment.
func RunForm(initial config.Experiment, theme Theme) (config.Experiment, bool, error) {
	m, err := tea.NewProgram(NewForm(initial, theme), tea.WithAltScreen()).Run()
	if err != nil {
		return initial, false, err
	}
	exp, ok := m.(Form).Experiment()
	return exp, ok, nil
}
