package auditapimodels

import (
	"time"

	"kaizen-tools-backend/models"
	apimodels "kaizen-tools-backend/models/api"
	dbmodels "kaizen-tools-backend/models/db"
)

type AuditFilter struct {
	apimodels.Pagination
	Action models.AuditAction `json:"action"`
}

type AuditView struct {
	ID        string             `json:"id"`
	Action    models.AuditAction `json:"action"`
	UserName  string             `json:"user_name,omitempty"`
	Details   map[string]any     `json:"details,omitempty"`
	IPAddress string             `json:"ip_address,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func AuditConvert(rec dbmodels.AuditLog) AuditView {
	view := AuditView{
		ID:        rec.ID,
		Action:    rec.Action,
		Details:   rec.Details,
		IPAddress: rec.IPAddress,
		CreatedAt: rec.CreatedAt,
	}
	if rec.User != nil {
		view.UserName = rec.User.FullName()
	} else {
		view.UserName = models.SystemUser
	}
	return view
}
