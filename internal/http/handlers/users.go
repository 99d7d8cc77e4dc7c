package handlers

import (
	"leavepanel/internal/docs"
	"leavepanel/internal/domain/models"
)

func userResource() resource[models.User] {
	return resource[models.User]{
		name:       "users",
		slug:       "user",
		title:      "User",
		table:      "users",
		uniqueBy:   []string{"email"},
		exportName: "users_export",
		project: func(u models.User) map[string]any {
			return map[string]any{
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			}
		},
		pdf: docs.ListPDF{
			Title: "Users",
			Columns: []docs.Column{
				{Header: "Name", Width: 70},
				{Header: "Email", Width: 100},
				{Header: "Role", Width: 50},
			},
		},
		pdfRow: func(u models.User) []string {
			return []string{u.Name, u.Email, u.Role}
		},
	}
}
