package handlers

import (
	"leavepanel/internal/docs"
	"leavepanel/internal/domain/models"
)

func roleResource() resource[models.Role] {
	return resource[models.Role]{
		name:       "roles",
		slug:       "role",
		title:      "Role",
		table:      "roles",
		uniqueBy:   []string{"name"},
		exportName: "roles_export",
		project: func(r models.Role) map[string]any {
			return map[string]any{
				"name":        r.Name,
				"description": r.Description,
			}
		},
		pdf: docs.ListPDF{
			Title: "Roles",
			Columns: []docs.Column{
				{Header: "Name", Width: 60},
				{Header: "Description", Width: 180},
			},
		},
		pdfRow: func(r models.Role) []string {
			return []string{r.Name, r.Description}
		},
	}
}
