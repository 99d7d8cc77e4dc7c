package handlers

import "leavepanel/internal/domain/models"

func auditResource() resource[models.AuditEntry] {
	return resource[models.AuditEntry]{
		name:       "audits",
		slug:       "audit",
		title:      "Audit entry",
		filterKeys: []string{"type"},
		readOnly:   true,
	}
}
