package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the run view by role.
type Theme struct {
	Name       string
	Arm        lipgloss.Color // launcher scene
	Trajectory lipgloss.Color // scatter, x(t) and y(t)
	Release    lipgloss.Color // release marker and launch figures
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Attached   lipgloss.Color
	Partial    lipgloss.Color // dropped or incomplete frames
	Lost       lipgloss.Color // failed or interrupted runs
}

func newTheme(name string, c ...string) Theme {
	return Theme{
		Name:       name,
		Arm:        lipgloss.Color(c[0]),
		Trajectory: lipgloss.Color(c[1]),
		Release:    lipgloss.Color(c[2]),
		Text:       lipgloss.Color(c[3]),
		Muted:      lipgloss.Color(c[4]),
		Attached:   lipgloss.Color(c[5]),
		Partial:    lipgloss.Color(c[6]),
		Lost:       lipgloss.Color(c[7]),
	}
}

// Themes lists the built-in themes; the first is the default.
var Themes = []Theme{
	//                     arm        trajectory release    text       muted      attached   partial    lost
	newTheme("cyberpunk", "#ff00ff", "#00ffff", "#ffff00", "#ffffff", "#666666", "#00ff00", "#ff8800", "#ff0000"),
	newTheme("retro", "#00ff00", "#00cc00", "#ccff66", "#00ff00", "#005500", "#88ff88", "#ffff00", "#ff3300"),
	newTheme("minimal", "#ffffff", "#bbbbbb", "#0088ff", "#ffffff", "#808080", "#00d000", "#ffaa00", "#ff0000"),
	newTheme("ocean", "#0077be", "#00a8cc", "#ffd700", "#e0f0ff", "#4488aa", "#00ff88", "#ffcc00", "#ff4444"),
	newTheme("sunset", "#ff6b6b", "#feca57", "#ff9ff3", "#fff5f5", "#8b6b8c", "#5fd068", "#ffc048", "#ff4757"),
}

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
