package handlers

import (
	"strconv"

	"leavepanel/internal/docs"
	"leavepanel/internal/domain/models"
)

func leaveTypeResource() resource[models.LeaveType] {
	return resource[models.LeaveType]{
		name:       "leave-types",
		slug:       "leave-type",
		title:      "Leave type",
		filterKeys: []string{"is_active"},
		table:      "leave_types",
		uniqueBy:   []string{"name"},
		exportName: "leave_types_export",
		project: func(t models.LeaveType) map[string]any {
			return map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"days":        t.Days,
				"is_active":   strconv.FormatBool(t.IsActive),
			}
		},
		pdf: docs.ListPDF{
			Title: "Leave Types",
			Columns: []docs.Column{
				{Header: "Name", Width: 60},
				{Header: "Description", Width: 130},
				{Header: "Days", Width: 25},
				{Header: "Active", Width: 25},
			},
		},
		pdfRow: func(t models.LeaveType) []string {
			return []string{t.Name, t.Description, strconv.Itoa(t.Days), strconv.FormatBool(t.IsActive)}
		},
	}
}
