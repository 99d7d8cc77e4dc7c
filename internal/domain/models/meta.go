package models

// PageMeta mirrors the pagination block every list endpoint returns.
// The server stays authoritative for both numbers.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}
