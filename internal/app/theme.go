package app

import (
	"github.com/treykane/cli-gearing/internal/config"
	"github.com/treykane/cli-gearing/internal/store"
)

type themeName string

const (
	themeLight themeName = "light"
	themeDark  themeName = "dark"
)

func (t themeName) other() themeName {
	if t == themeDark {
		return themeLight
	}
	return themeDark
}

// resolveTheme picks the starting palette: a saved choice wins, then the
// configured theme, then the terminal background.
func resolveTheme(kv store.KV, configured string, darkBackground func() bool) themeName {
	if kv != nil {
		if saved, ok := kv.Get(themeKey); ok {
			switch themeName(saved) {
			case themeLight, themeDark:
				return themeName(saved)
			}
		}
	}
	switch configured {
	case config.ThemeLight:
		return themeLight
	case config.ThemeDark:
		return themeDark
	}
	if darkBackground != nil && !darkBackground() {
		return themeLight
	}
	return themeDark
}

// applyTheme switches palettes and restyles every widget.
func (m *Model) applyTheme(t themeName) {
	m.theme = t
	p := palettes[t]
	m.styles = newStyles(p)
	for i := range m.inputs {
		applyInputTheme(&m.inputs[i], p)
	}
	m.chooserTable.SetStyles(tableStyles(p))
	m.flyoutRendered = ""
}

// toggleTheme flips the palette and remembers the choice.
func (m *Model) toggleTheme() {
	m.applyTheme(m.theme.other())
	m.status = "Theme: " + string(m.theme)
	if m.kv == nil {
		return
	}
	if err := m.kv.Set(themeKey, string(m.theme)); err != nil {
		m.setStatusWarn("Theme changed but could not be saved", err)
	}
}
