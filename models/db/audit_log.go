package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"kaizen-tools-backend/models"
)

type AuditDetails map[string]any

func (j AuditDetails) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *AuditDetails) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// AuditLog - неизменяемая запись о переходе или административном действии
type AuditLog struct {
	BaseModel
	KaizenRequestID string `gorm:"type:varchar(36);index"`
	UserID          *string `gorm:"type:varchar(36)"`
	User            *User   `gorm:"foreignKey:UserID"`
	Action          models.AuditAction `gorm:"type:varchar(100);index"`
	Details         AuditDetails       `gorm:"type:jsonb"`
	IPAddress       string             `gorm:"type:varchar(45)"`
	UserAgent       string             `gorm:"type:varchar(500)"`
}
