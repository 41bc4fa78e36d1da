package dbmodels

import (
	"time"

	"kaizen-tools-backend/models"
)

// ManagerApproval - решение менеджера подразделения на этапе OWN_MANAGER или CROSS_MANAGER.
// Не более одной записи на (заявка, подразделение, тип этапа), повторное решение перезаписывает прежнее.
type ManagerApproval struct {
	BaseModel
	KaizenRequestID string `gorm:"type:varchar(36);uniqueIndex:idx_manager_approval"`
	ManagerID       string `gorm:"type:varchar(36)"`
	Manager         *User  `gorm:"foreignKey:ManagerID"`
	DepartmentID    string `gorm:"type:varchar(36);uniqueIndex:idx_manager_approval"`
	Department      *Department
	StageType       models.StageType `gorm:"type:varchar(20);uniqueIndex:idx_manager_approval"`
	Decision        models.Decision  `gorm:"type:varchar(20)"`
	Remarks         string
}

// HodApproval - решение руководителя подразделения на этапе OWN_HOD или CROSS_HOD
type HodApproval struct {
	BaseModel
	KaizenRequestID string `gorm:"type:varchar(36);uniqueIndex:idx_hod_approval"`
	HodID           string `gorm:"type:varchar(36)"`
	Hod             *User  `gorm:"foreignKey:HodID"`
	DepartmentID    string `gorm:"type:varchar(36);uniqueIndex:idx_hod_approval"`
	Department      *Department
	StageType       models.StageType `gorm:"type:varchar(20);uniqueIndex:idx_hod_approval"`
	Decision        models.Decision  `gorm:"type:varchar(20)"`
	Remarks         string
}

// AgmApproval - единственное решение заместителя генерального директора по заявке.
// Создается один раз и не обновляется.
type AgmApproval struct {
	ID                string `gorm:"primaryKey;default:uuid_generate_v4()"`
	KaizenRequestID   string `gorm:"type:varchar(36);uniqueIndex"`
	AgmID             string `gorm:"type:varchar(36)"`
	Agm               *User  `gorm:"foreignKey:AgmID"`
	Approved          bool
	Comments          string
	CostJustification string
	ApprovedAt        time.Time `gorm:"autoCreateTime"`
}

// GmApproval - единственное решение генерального директора по заявке
type GmApproval struct {
	ID                string `gorm:"primaryKey;default:uuid_generate_v4()"`
	KaizenRequestID   string `gorm:"type:varchar(36);uniqueIndex"`
	GmID              string `gorm:"type:varchar(36)"`
	Gm                *User  `gorm:"foreignKey:GmID"`
	Approved          bool
	Comments          string
	CostJustification string
	ApprovedAt        time.Time `gorm:"autoCreateTime"`
}
