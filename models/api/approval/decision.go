package approvalapimodels

import (
	"time"

	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
)

type AnswerData struct {
	QuestionKey string           `json:"question_key"`
	Answer      string           `json:"answer"`
	RiskLevel   models.RiskLevel `json:"risk_level"`
}

// DecisionData - решение менеджера или руководителя подразделения,
// опционально с ответами анкеты оценки рисков
type DecisionData struct {
	Decision models.Decision `json:"decision"`
	Remarks  string          `json:"remarks"`
	Answers  []AnswerData    `json:"answers,omitempty"`
}

func (r DecisionData) Validate() error {
	if !r.Decision.IsValid() {
		return errors.Errorf("недопустимое решение: %v", r.Decision)
	}
	for _, answer := range r.Answers {
		if !answer.RiskLevel.IsValid() {
			return errors.Errorf("недопустимый уровень риска: %v", answer.RiskLevel)
		}
	}
	return nil
}

func (r DecisionData) DbAnswers() dbmodels.EvaluationAnswers {
	if len(r.Answers) == 0 {
		return nil
	}
	answers := make(dbmodels.EvaluationAnswers, 0, len(r.Answers))
	for _, answer := range r.Answers {
		answers = append(answers, dbmodels.EvaluationAnswer{
			QuestionKey: answer.QuestionKey,
			Answer:      answer.Answer,
			RiskLevel:   answer.RiskLevel,
		})
	}
	return answers
}

// SingleDecisionData - решение единоличного согласующего (AGM/GM)
type SingleDecisionData struct {
	Approved          *bool  `json:"approved"`
	Comments          string `json:"comments"`
	CostJustification string `json:"cost_justification"`
}

func (r SingleDecisionData) Validate() error {
	if r.Approved == nil {
		return errors.New("не указано решение approved")
	}
	return nil
}

type DepartmentDecisionView struct {
	DepartmentID   string           `json:"department_id"`
	DepartmentName string           `json:"department_name,omitempty"`
	StageType      models.StageType `json:"stage_type"`
	Decision       models.Decision  `json:"decision"`
	ActorID        string           `json:"actor_id"`
	ActorName      string           `json:"actor_name,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type SingleDecisionView struct {
	ActorID           string    `json:"actor_id"`
	ActorName         string    `json:"actor_name,omitempty"`
	Approved          bool      `json:"approved"`
	Comments          string    `json:"comments,omitempty"`
	CostJustification string    `json:"cost_justification,omitempty"`
	ApprovedAt        time.Time `json:"approved_at"`
}

type EvaluationView struct {
	DepartmentID   string               `json:"department_id"`
	DepartmentName string               `json:"department_name,omitempty"`
	EvaluatorRole  models.EvaluatorRole `json:"evaluator_role"`
	EvaluatorName  string               `json:"evaluator_name,omitempty"`
	Answers        []AnswerData         `json:"answers"`
	OverallRisk    models.RiskLevel     `json:"overall_risk"`
}

// ApprovalTrailView - сводка решений по заявке
type ApprovalTrailView struct {
	ManagerApprovals []DepartmentDecisionView `json:"manager_approvals"`
	HodApprovals     []DepartmentDecisionView `json:"hod_approvals"`
	AgmApproval      *SingleDecisionView      `json:"agm_approval,omitempty"`
	GmApproval       *SingleDecisionView      `json:"gm_approval,omitempty"`
	Evaluations      []EvaluationView         `json:"evaluations"`
}

func ManagerApprovalConvert(rec dbmodels.ManagerApproval) DepartmentDecisionView {
	view := DepartmentDecisionView{
		DepartmentID: rec.DepartmentID,
		StageType:    rec.StageType,
		Decision:     rec.Decision,
		ActorID:      rec.ManagerID,
		Remarks:      rec.Remarks,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.DisplayName
	}
	if rec.Manager != nil {
		view.ActorName = rec.Manager.FullName()
	}
	return view
}

func HodApprovalConvert(rec dbmodels.HodApproval) DepartmentDecisionView {
	view := DepartmentDecisionView{
		DepartmentID: rec.DepartmentID,
		StageType:    rec.StageType,
		Decision:     rec.Decision,
		ActorID:      rec.HodID,
		Remarks:      rec.Remarks,
		UpdatedAt:    rec.UpdatedAt,
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.DisplayName
	}
	if rec.Hod != nil {
		view.ActorName = rec.Hod.FullName()
	}
	return view
}

func EvaluationConvert(rec dbmodels.DepartmentEvaluation) EvaluationView {
	view := EvaluationView{
		DepartmentID:  rec.DepartmentID,
		EvaluatorRole: rec.EvaluatorRole,
		OverallRisk:   rec.OverallRisk,
		Answers:       make([]AnswerData, 0, len(rec.Answers)),
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.DisplayName
	}
	if rec.Evaluator != nil {
		view.EvaluatorName = rec.Evaluator.FullName()
	}
	for _, answer := range rec.Answers {
		view.Answers = append(view.Answers, AnswerData{
			QuestionKey: answer.QuestionKey,
			Answer:      answer.Answer,
			RiskLevel:   answer.RiskLevel,
		})
	}
	return view
}
