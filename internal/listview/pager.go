package listview

import "leavepanel/internal/domain/models"

// PageButton is one entry of the pagination strip under a list.
type PageButton struct {
	Page   int  `json:"page"`
	Active bool `json:"active"`
}

// PageButtons renders one button per known page, with the current page
// marked active. last_page comes from the most recent successful fetch.
func PageButtons(meta models.PageMeta) []PageButton {
	last := meta.LastPage
	if last < 1 {
		last = 1
	}
	buttons := make([]PageButton, 0, last)
	for p := 1; p <= last; p++ {
		buttons = append(buttons, PageButton{Page: p, Active: p == meta.CurrentPage})
	}
	return buttons
}
