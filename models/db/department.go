package dbmodels

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Department struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);uniqueIndex"`
	DisplayName string `gorm:"type:varchar(100)"`
}

func (d *Department) AfterDelete(tx *gorm.DB) (err error) {
	if d.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("department_id = ?", d.ID).Delete(&EvaluationQuestion{})
	return
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}

// EvaluationQuestion - вопрос анкеты оценки рисков подразделения
type EvaluationQuestion struct {
	BaseModel
	DepartmentID string `gorm:"type:varchar(36);index;uniqueIndex:idx_department_question"`
	Key          string `gorm:"type:varchar(50);uniqueIndex:idx_department_question"`
	Text         string
	IsRequired   bool `gorm:"default:true"`
	Order        int
}
