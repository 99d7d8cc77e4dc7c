package handlers

import "leavepanel/internal/domain/models"

func leaveApprovalResource() resource[models.LeaveApproval] {
	return resource[models.LeaveApproval]{
		name:       "leave-approvals",
		slug:       "leave-approval",
		title:      "Leave approval",
		filterKeys: []string{"status"},
		exportName: "leave_approvals_export",
		project: func(la models.LeaveApproval) map[string]any {
			info, _ := models.DecodeAdditionalInfo(la.AdditionalInfo)
			return map[string]any{
				"user":               la.User,
				"type":               la.Type,
				"start_date":         la.StartDate,
				"end_date":           la.EndDate,
				"reason":             la.Reason,
				"status":             la.Status,
				"note":               la.Note,
				"approved_by":        la.ApprovedByName,
				"replacement_person": info.ReplacementPerson,
				"delegated_task":     info.DelegatedTask,
			}
		},
		resolveFiles: func(la models.LeaveApproval, fileURL func(string) string) models.LeaveApproval {
			la.Attachment = fileURL(la.Attachment)
			return la
		},
	}
}
