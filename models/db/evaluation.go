package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"kaizen-tools-backend/models"
)

// EvaluationAnswer - ответ на вопрос анкеты оценки с меткой риска
type EvaluationAnswer struct {
	QuestionKey string           `json:"question_key"`
	Answer      string           `json:"answer"`
	RiskLevel   models.RiskLevel `json:"risk_level"`
}

type EvaluationAnswers []EvaluationAnswer

func (j EvaluationAnswers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EvaluationAnswers) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// DepartmentEvaluation - оценка рисков заявки подразделением.
// Не более одной на (заявка, подразделение, роль оценщика),
// итоговый риск пересчитывается целиком при каждой замене ответов.
type DepartmentEvaluation struct {
	BaseModel
	KaizenRequestID string `gorm:"type:varchar(36);uniqueIndex:idx_department_evaluation"`
	EvaluatorID     string `gorm:"type:varchar(36)"`
	Evaluator       *User  `gorm:"foreignKey:EvaluatorID"`
	EvaluatorRole   models.EvaluatorRole `gorm:"type:varchar(20);uniqueIndex:idx_department_evaluation"`
	DepartmentID    string               `gorm:"type:varchar(36);uniqueIndex:idx_department_evaluation"`
	Department      *Department
	Answers         EvaluationAnswers `gorm:"type:jsonb"`
	OverallRisk     models.RiskLevel  `gorm:"type:varchar(10)"`
}
