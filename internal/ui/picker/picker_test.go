package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docreview/internal/guideline"
)

func sampleSet() *guideline.Set {
	return guideline.NewSet([]guideline.Guideline{
		{Title: "Summary", Expectation: guideline.Present, Exist: "yes"},
		{Title: "Ads", Expectation: guideline.Absent, Exist: "no"},
		{Title: "Pricing", Expectation: guideline.NotApplicable, Exist: "no relevant"},
	})
}

func press(t *testing.T, model tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		model, _ = model.Update(msg)
	}
	return model
}

// TestPickerToggleAndConfirm verifies edits reach the set only on confirm.
func TestPickerToggleAndConfirm(t *testing.T) {
	set := sampleSet()
	model := press(t, NewModel(set, true), "down", " ")
	if len(set.Selected()) != 3 {
		t.Fatalf("set changed before confirm")
	}
	model = press(t, model, "enter")
	picked := model.(Model)
	if !picked.Confirmed() || picked.Aborted() {
		t.Fatalf("expected confirmed picker")
	}
	picked.Apply(set)
	selected := set.Selected()
	if len(selected) != 2 || selected[0].Title != "Summary" || selected[1].Title != "Pricing" {
		t.Fatalf("unexpected selection %+v", selected)
	}
}

func TestPickerToggleAll(t *testing.T) {
	model := press(t, NewModel(sampleSet(), true), "a")
	if model.(Model).SelectedCount() != 0 {
		t.Fatalf("expected all cleared when everything was selected")
	}
	model = press(t, model, "a")
	if model.(Model).SelectedCount() != 3 {
		t.Fatalf("expected all selected")
	}
}

func TestPickerAbort(t *testing.T) {
	model := press(t, NewModel(sampleSet(), true), "esc")
	if !model.(Model).Aborted() {
		t.Fatalf("expected aborted picker")
	}
}

func TestPickerViewAndCursorBounds(t *testing.T) {
	model := press(t, NewModel(sampleSet(), true), "up", "down", "down", "down", "down")
	view := model.View()
	if !strings.Contains(view, "> [x] Pricing (no relevant)") {
		t.Fatalf("expected cursor on last item:\n%s", view)
	}
	if !strings.Contains(view, "Select guidelines (3/3)") {
		t.Fatalf("unexpected header:\n%s", view)
	}
}
