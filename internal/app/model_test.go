package app

import (
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-gearing/internal/form"
	"github.com/treykane/cli-gearing/internal/gearing"
	"github.com/treykane/cli-gearing/internal/store"
)

func newTestModel(t *testing.T, kv store.KV) *Model {
	t.Helper()
	m := New(Options{Store: kv, Theme: "dark", DarkBackground: func() bool { return true }})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func filledStore(t *testing.T) *store.Memory {
	t.Helper()
	kv := &store.Memory{}
	for field, v := range map[form.Field]string{
		form.FieldInternal:  "2.6",
		form.FieldCurPinion: "20",
		form.FieldCurSpur:   "48",
		form.FieldCurTire:   "62",
		form.FieldNewPinion: "21",
		form.FieldNewSpur:   "48",
	} {
		if err := kv.Set(field.Key(), v); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return kv
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestTypingUpdatesFormAndStore(t *testing.T) {
	kv := &store.Memory{}
	m := newTestModel(t, kv)

	if got := fieldOrder[m.focus]; got != form.FieldCurPinion {
		t.Fatalf("expected initial focus on current pinion, got %s", got)
	}
	press(m, keyRunes("2"), keyRunes("0"))

	if got := m.form.Value(form.FieldCurPinion); got != "20" {
		t.Fatalf("expected form value 20, got %q", got)
	}
	if got, _ := kv.Get(form.FieldCurPinion.Key()); got != "20" {
		t.Fatalf("expected stored value 20, got %q", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got, _ := kv.Get(form.FieldCurPinion.Key()); got != "2" {
		t.Fatalf("expected stored value 2 after backspace, got %q", got)
	}
}

func TestNonNumericRunesDoNotReachInputs(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, keyRunes("a"), keyRunes("Z"))
	if got := m.inputs[m.focus].Value(); got != "" {
		t.Fatalf("expected letters ignored, got %q", got)
	}
}

func TestTerminalRepliesAreIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, keyRunes("\x1b]11;rgb:0000/0000/0000\x1b\\"))
	if got := m.inputs[m.focus].Value(); got != "" {
		t.Fatalf("expected terminal reply ignored, got %q", got)
	}
}

func TestRestoreOnStartComputesResults(t *testing.T) {
	m := newTestModel(t, filledStore(t))

	if got := m.inputs[indexOfField(form.FieldCurSpur)].Value(); got != "48" {
		t.Fatalf("expected restored spur 48, got %q", got)
	}
	if !m.comparison.Current.Valid || !m.comparison.Next.Valid {
		t.Fatal("expected both setups valid after restore")
	}
	if got := gearing.FormatNumber(m.comparison.Current.FDR, gearing.MetricPlaces); got != "6.24" {
		t.Fatalf("expected FDR 6.24, got %s", got)
	}
	if got := gearing.FormatPercent(m.comparison.RolloutDelta); got != "+5%" {
		t.Fatalf("expected rollout delta +5%%, got %s", got)
	}
}

func TestFocusWrapsBothWays(t *testing.T) {
	m := newTestModel(t, nil)
	start := m.focus

	for i := 0; i < len(fieldOrder); i++ {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.focus != start {
		t.Fatalf("expected a full Tab cycle to return to %d, got %d", start, m.focus)
	}

	m.setFocus(0)
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != len(fieldOrder)-1 {
		t.Fatalf("expected Shift+Tab from first field to wrap to last, got %d", m.focus)
	}
}

func TestNoTransmissionKeepsStoredInternalRatio(t *testing.T) {
	kv := filledStore(t)
	m := newTestModel(t, kv)

	m.setFocus(indexOfField(form.FieldNoTransmission))
	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.form.NoTransmission() {
		t.Fatal("expected bypass enabled")
	}
	if got := gearing.FormatNumber(m.comparison.Current.FDR, gearing.MetricPlaces); got != "2.4" {
		t.Fatalf("expected FDR to equal the spur/pinion ratio while bypassed, got %s", got)
	}

	m.setFocus(indexOfField(form.FieldInternal))
	press(m, keyRunes("9"))
	if got, _ := kv.Get(form.FieldInternal.Key()); got != "2.6" {
		t.Fatalf("expected stored internal ratio untouched while bypassed, got %q", got)
	}

	m.setFocus(indexOfField(form.FieldNoTransmission))
	press(m, keyRunes("x"))
	if got, _ := kv.Get(form.FieldInternal.Key()); got != "2.69" {
		t.Fatalf("expected internal ratio persisted once bypass is off, got %q", got)
	}
	if got, _ := kv.Get(form.FieldNoTransmission.Key()); got != "false" {
		t.Fatalf("expected bypass flag persisted as false, got %q", got)
	}
}

func TestChooserOpensOnCurrentCount(t *testing.T) {
	m := newTestModel(t, filledStore(t))
	m.setFocus(indexOfField(form.FieldCurPinion))
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.isOverlay(overlayChooser) {
		t.Fatal("expected chooser overlay open")
	}
	if got := len(m.chooserRows); got != 66 {
		t.Fatalf("expected 66 pinion rows, got %d", got)
	}
	if got := m.chooserRows[m.chooserTable.Cursor()].Count; got != 20 {
		t.Fatalf("expected cursor on 20T, got %d", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.isOverlay(overlayNone) {
		t.Fatal("expected Esc to close the chooser")
	}
	if m.chooserRows != nil {
		t.Fatal("expected chooser rows cleared on close")
	}
}

func TestChooserPickWritesAndPersists(t *testing.T) {
	kv := filledStore(t)
	m := newTestModel(t, kv)
	m.setFocus(indexOfField(form.FieldNewSpur))
	press(m, keyRunes("s"))

	if got := len(m.chooserRows); got != 141 {
		t.Fatalf("expected 141 spur rows, got %d", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.isOverlay(overlayNone) {
		t.Fatal("expected chooser closed after pick")
	}
	if got := m.form.Value(form.FieldNewSpur); got != "50" {
		t.Fatalf("expected new spur 50, got %q", got)
	}
	if got := m.inputs[indexOfField(form.FieldNewSpur)].Value(); got != "50" {
		t.Fatalf("expected input synced to 50, got %q", got)
	}
	if got, _ := kv.Get(form.FieldNewSpur.Key()); got != "50" {
		t.Fatalf("expected stored new spur 50, got %q", got)
	}
	if fieldOrder[m.focus] != form.FieldNewSpur {
		t.Fatalf("expected focus back on new spur, got %s", fieldOrder[m.focus])
	}
}

func TestChooserRefreshesWhenUpstreamChanges(t *testing.T) {
	m := newTestModel(t, filledStore(t))
	m.openChooser(gearing.GearPinion, form.SideCurrent)
	before := m.chooserRows[m.chooserTable.Cursor()]

	m.form.Set(form.FieldCurSpur, "50")

	after := m.chooserRows[m.chooserTable.Cursor()]
	if after.Count != before.Count {
		t.Fatalf("expected cursor to stay on %d, got %d", before.Count, after.Count)
	}
	want := gearing.FinalDriveRatio(50, after.Count, 2.6)
	if after.FDR != want {
		t.Fatalf("expected refreshed FDR %v, got %v", want, after.FDR)
	}
	if !strings.Contains(m.View(), "spur 50") {
		t.Fatal("expected chooser header to show the new fixed spur")
	}
}

func TestChooserWithoutCounterpartShowsPlaceholders(t *testing.T) {
	m := newTestModel(t, nil)
	m.openChooser(gearing.GearPinion, form.SideNew)
	if got := m.chooserTable.Rows()[0][1]; got != gearing.Placeholder {
		t.Fatalf("expected placeholder ratio, got %q", got)
	}
}

func TestFlyoutTrapsFocusAndRestoresIt(t *testing.T) {
	m := newTestModel(t, filledStore(t))
	m.setFocus(indexOfField(form.FieldCurTire))
	press(m, keyRunes("?"))

	if !m.isOverlay(overlayFlyout) {
		t.Fatal("expected flyout open")
	}
	if m.inputs[m.focus].Focused() {
		t.Fatal("expected field inputs blurred while flyout is open")
	}

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.flyoutFocus != len(flyoutLinks)-1 {
		t.Fatalf("expected Shift+Tab on first link to wrap to last, got %d", m.flyoutFocus)
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.flyoutFocus != 0 {
		t.Fatalf("expected Tab on last link to wrap to first, got %d", m.flyoutFocus)
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.flyoutFocus != 2 {
		t.Fatalf("expected focus on third link, got %d", m.flyoutFocus)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.isOverlay(overlayNone) {
		t.Fatal("expected Esc to close the flyout")
	}
	if fieldOrder[m.focus] != form.FieldCurTire || !m.inputs[m.focus].Focused() {
		t.Fatalf("expected focus restored to current tire, got %s", fieldOrder[m.focus])
	}
}

func TestFlyoutShowsVersionAndHelp(t *testing.T) {
	m := newTestModel(t, nil)
	m.openFlyout()
	view := m.View()
	if !strings.Contains(view, "cli-gearing (dev)") {
		t.Fatal("expected version label in flyout")
	}
	if m.flyoutRendered == "" {
		t.Fatal("expected help content rendered")
	}
}

func TestFlyoutLinkRunsAndCloses(t *testing.T) {
	kv := &store.Memory{}
	m := newTestModel(t, kv)
	m.openFlyout()

	for m.flyoutFocus != 3 {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.isOverlay(overlayNone) {
		t.Fatal("expected link activation to close the flyout")
	}
	if m.theme != themeLight {
		t.Fatalf("expected theme toggled to light, got %s", m.theme)
	}
	if got, _ := kv.Get(themeKey); got != "light" {
		t.Fatalf("expected theme persisted, got %q", got)
	}
}

func TestResetClearsInputs(t *testing.T) {
	m := newTestModel(t, filledStore(t))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	for i, field := range fieldOrder {
		if field.IsToggle() {
			continue
		}
		if got := m.inputs[i].Value(); got != "" {
			t.Fatalf("expected %s cleared, got %q", field, got)
		}
	}
	if m.comparison.Current.Valid {
		t.Fatal("expected results undefined after reset")
	}
}

func TestResolveTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }
	saved := &store.Memory{}
	_ = saved.Set(themeKey, "light")
	junk := &store.Memory{}
	_ = junk.Set(themeKey, "purple")

	tests := []struct {
		name       string
		kv         store.KV
		configured string
		detect     func() bool
		want       themeName
	}{
		{"saved wins", saved, "dark", dark, themeLight},
		{"configured", nil, "light", dark, themeLight},
		{"detect light", nil, "auto", light, themeLight},
		{"detect dark", junk, "auto", dark, themeDark},
		{"no detector", nil, "", nil, themeDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTheme(tt.kv, tt.configured, tt.detect); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCopyResultsToClipboard(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t, nil)
	press(m, keyRunes("y"))
	if !strings.Contains(m.status, "incomplete") || copied != "" {
		t.Fatalf("expected incomplete-setup status without copy, got %q", m.status)
	}

	m = newTestModel(t, filledStore(t))
	press(m, keyRunes("y"))
	if m.status != "Copied results" {
		t.Fatalf("expected copy confirmation, got %q", m.status)
	}
	for _, want := range []string{"rollout  31.215 mm", "Change: fdr -4.76%, rollout +5%"} {
		if !strings.Contains(copied, want) {
			t.Fatalf("expected clipboard to contain %q, got:\n%s", want, copied)
		}
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	press(m, keyRunes("y"))
	if m.status != "Clipboard copy failed" {
		t.Fatalf("expected clipboard failure status, got %q", m.status)
	}
}

type failingStore struct {
	mu sync.Mutex
	n  int
}

func (s *failingStore) Get(string) (string, bool) { return "", false }

func (s *failingStore) Set(string, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return errors.New("read-only")
}

func TestPersistFailureKeepsWorking(t *testing.T) {
	kv := &failingStore{}
	m := newTestModel(t, kv)
	press(m, keyRunes("2"))

	if m.status != "Could not save inputs" {
		t.Fatalf("expected warning status, got %q", m.status)
	}
	if got := m.form.Value(form.FieldCurPinion); got != "2" {
		t.Fatalf("expected in-memory value kept, got %q", got)
	}
	if kv.n == 0 {
		t.Fatal("expected a write attempt")
	}
}

func TestViewShowsPlaceholdersAndResults(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"Inputs", "Results", "Rollout (mm)", gearing.Placeholder} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	m = newTestModel(t, filledStore(t))
	view = m.View()
	for _, want := range []string{"6.24", "31.215", "+5%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}

	press(m, keyRunes("f"))
	if !strings.Contains(m.View(), "ratio   = spur ÷ pinion = 48 ÷ 20 = 2.4") {
		t.Fatal("expected formulas spelled out for the current setup")
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{DarkBackground: func() bool { return true }})
	defer m.Close()
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}
