package handlers

import (
	"leavepanel/internal/docs"
	"leavepanel/internal/domain/models"
)

func leaveRequestResource() resource[models.LeaveRequest] {
	return resource[models.LeaveRequest]{
		name:       "leave-requests",
		slug:       "leave-request",
		title:      "Leave request",
		filterKeys: []string{"status"},
		multipart:  true, // attachment upload on create/update
		table:      "leave_requests",
		exportName: "leave_requests_export",
		project: func(lr models.LeaveRequest) map[string]any {
			return map[string]any{
				"user":       lr.User,
				"type":       lr.Type,
				"start_date": lr.StartDate,
				"end_date":   lr.EndDate,
				"reason":     lr.Reason,
				"status":     lr.Status,
			}
		},
		pdf: docs.ListPDF{
			Title: "Leave Requests",
			Columns: []docs.Column{
				{Header: "User", Width: 45},
				{Header: "Type", Width: 35},
				{Header: "Start", Width: 28},
				{Header: "End", Width: 28},
				{Header: "Reason", Width: 80},
				{Header: "Status", Width: 25},
				{Header: "Replacement", Width: 40},
			},
		},
		pdfRow: func(lr models.LeaveRequest) []string {
			info, _ := models.DecodeAdditionalInfo(lr.AdditionalInfo)
			return []string{lr.User, lr.Type, lr.StartDate, lr.EndDate, lr.Reason, lr.Status, info.ReplacementPerson}
		},
		resolveFiles: func(lr models.LeaveRequest, fileURL func(string) string) models.LeaveRequest {
			lr.File = fileURL(lr.File)
			lr.Attachment = fileURL(lr.Attachment)
			return lr
		},
	}
}
