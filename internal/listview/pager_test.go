package listview

import (
	"testing"

	"leavepanel/internal/domain/models"
)

func TestPageButtonsRendersOnePerPage(t *testing.T) {
	buttons := PageButtons(models.PageMeta{CurrentPage: 2, LastPage: 5})
	if len(buttons) != 5 {
		t.Fatalf("got %d buttons, want 5", len(buttons))
	}
	for i, b := range buttons {
		if b.Page != i+1 {
			t.Fatalf("button %d has page %d", i, b.Page)
		}
		if b.Active != (b.Page == 2) {
			t.Fatalf("button for page %d active=%v", b.Page, b.Active)
		}
	}
}

func TestPageButtonsZeroMeta(t *testing.T) {
	buttons := PageButtons(models.PageMeta{})
	if len(buttons) != 1 || buttons[0].Page != 1 {
		t.Fatalf("empty meta should render a single page button, got %+v", buttons)
	}
}
