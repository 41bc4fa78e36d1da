package dbmodels

import (
	"time"

	"kaizen-tools-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KaizenRequest struct {
	BaseModel
	RequestID string `gorm:"type:varchar(50);uniqueIndex"`
	Title     string `gorm:"type:varchar(255)"`

	StationName             string `gorm:"type:varchar(100)"`
	AssemblyLine            string `gorm:"type:varchar(100)"`
	IssueDescription        string
	PokaYokeDescription     string
	ReasonForImplementation string
	Program                 string `gorm:"type:varchar(100)"`
	CustomerPartNumber      string `gorm:"type:varchar(100)"`
	DateOfOrigination       time.Time

	DepartmentID string `gorm:"type:varchar(36);index"`
	Department   *Department
	InitiatorID  string `gorm:"type:varchar(36);index"`
	Initiator    *User  `gorm:"foreignKey:InitiatorID"`

	CostEstimate      float64 `gorm:"type:numeric(12,2);default:0"`
	CostCurrency      string  `gorm:"type:varchar(10)"`
	CostJustification string

	RequiresProcessAddition  bool
	RequiresManpowerAddition bool

	Status       models.KaizenStatus `gorm:"type:varchar(30);index"`
	CurrentStage models.KaizenStage  `gorm:"type:varchar(20)"`

	// заполняются только при статусе REJECTED
	RejectionReason      string
	RejectedByID         *string `gorm:"type:varchar(36)"`
	RejectedBy           *User   `gorm:"foreignKey:RejectedByID"`
	RejectedByDepartment string  `gorm:"type:varchar(50)"`

	ManagerApprovals []ManagerApproval      `gorm:"foreignKey:KaizenRequestID"`
	HodApprovals     []HodApproval          `gorm:"foreignKey:KaizenRequestID"`
	Evaluations      []DepartmentEvaluation `gorm:"foreignKey:KaizenRequestID"`
}

func (k *KaizenRequest) AfterDelete(tx *gorm.DB) (err error) {
	if k.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("kaizen_request_id = ?", k.ID).Delete(&ManagerApproval{})
	tx.Clauses(clause.Returning{}).Where("kaizen_request_id = ?", k.ID).Delete(&HodApproval{})
	tx.Clauses(clause.Returning{}).Where("kaizen_request_id = ?", k.ID).Delete(&DepartmentEvaluation{})
	tx.Clauses(clause.Returning{}).Where("kaizen_request_id = ?", k.ID).Delete(&AuditLog{})
	return
}

func (k *KaizenRequest) Validate() error {
	if k.Title == "" {
		return errors.New("не указано название предложения")
	}
	if k.StationName == "" {
		return errors.New("не указан участок")
	}
	if k.IssueDescription == "" {
		return errors.New("не указано описание проблемы")
	}
	if k.Program == "" {
		return errors.New("не указана программа")
	}
	if k.DepartmentID == "" {
		return errors.New("отсутствует ссылка на подразделение")
	}
	if k.InitiatorID == "" {
		return errors.New("отсутствует ссылка на инициатора")
	}
	if k.CostEstimate < 0 {
		return errors.New("оценка стоимости не может быть отрицательной")
	}
	return nil
}
