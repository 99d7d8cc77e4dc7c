package models

import (
	"encoding/json"
	"log"
)

// AdditionalInfo is the embedded document some leave records carry. The API
// delivers it either inline or as a JSON-encoded string; see DecodeAdditionalInfo.
type AdditionalInfo struct {
	ReplacementPerson string `json:"replacement_person,omitempty"`
	DelegatedTask     string `json:"delegated_task,omitempty"`
}

// DecodeAdditionalInfo decodes the raw additional_info value. The second
// return reports whether a real document was decoded; on malformed input the
// empty document is substituted so a single bad row never fails a page.
func DecodeAdditionalInfo(raw json.RawMessage) (AdditionalInfo, bool) {
	var info AdditionalInfo
	if len(raw) == 0 {
		return info, false
	}

	data := []byte(raw)

	// Some endpoints double-encode: a JSON string holding a JSON object.
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if asString == "" {
			return AdditionalInfo{}, false
		}
		data = []byte(asString)
	}

	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("[MODELS] action=decode_additional_info msg=malformed payload, substituting empty document: %v", err)
		return AdditionalInfo{}, false
	}
	return info, true
}

type LeaveType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Days        int    `json:"days"`
	IsActive    bool   `json:"is_active"`
}

type LeaveRequest struct {
	ID             string          `json:"id"`
	User           string          `json:"user"`
	UserID         string          `json:"user_id,omitempty"`
	Type           string          `json:"type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	File           string          `json:"file,omitempty"`
	Attachment     string          `json:"attachment,omitempty"`
	AdditionalInfo json.RawMessage `json:"additional_info,omitempty"`
}

type LeaveApproval struct {
	ID             string          `json:"id"`
	User           string          `json:"user"`
	Type           string          `json:"type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Reason         string          `json:"reason"`
	Attachment     string          `json:"attachment,omitempty"`
	AdditionalInfo json.RawMessage `json:"additional_info,omitempty"`
	Status         string          `json:"status"`
	Note           string          `json:"note,omitempty"`
	ApprovedByName string          `json:"approved_by_name,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
}
