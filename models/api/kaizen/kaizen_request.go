package kaizenapimodels

import (
	"time"

	apimodels "kaizen-tools-backend/models/api"

	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
)

type KaizenRequestData struct {
	Title                    string  `json:"title"`
	StationName              string  `json:"station_name"`
	AssemblyLine             string  `json:"assembly_line"`
	IssueDescription         string  `json:"issue_description"`
	PokaYokeDescription      string  `json:"poka_yoke_description"`
	ReasonForImplementation  string  `json:"reason_for_implementation"`
	Program                  string  `json:"program"`
	CustomerPartNumber       string  `json:"customer_part_number"`
	DateOfOrigination        string  `json:"date_of_origination"` // YYYY-MM-DD
	CostEstimate             float64 `json:"cost_estimate"`
	CostJustification        string  `json:"cost_justification"`
	RequiresProcessAddition  bool    `json:"requires_process_addition"`
	RequiresManpowerAddition bool    `json:"requires_manpower_addition"`
}

func (r KaizenRequestData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название предложения")
	}
	if r.StationName == "" {
		return errors.New("не указан участок")
	}
	if r.IssueDescription == "" {
		return errors.New("не указано описание проблемы")
	}
	if r.Program == "" {
		return errors.New("не указана программа")
	}
	if r.CostEstimate < 0 {
		return errors.New("оценка стоимости не может быть отрицательной")
	}
	if _, err := r.OriginationDate(); err != nil {
		return errors.New("некорректная дата возникновения, ожидается YYYY-MM-DD")
	}
	return nil
}

func (r KaizenRequestData) OriginationDate() (time.Time, error) {
	if r.DateOfOrigination == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", r.DateOfOrigination)
}

type KaizenFilter struct {
	apimodels.Pagination
	Status       models.KaizenStatus `json:"status"`
	DepartmentID string              `json:"department_id"`
	Search       string              `json:"search"`
}

type KaizenRequestView struct {
	ID                       string              `json:"id"`
	RequestID                string              `json:"request_id"`
	Title                    string              `json:"title"`
	StationName              string              `json:"station_name"`
	AssemblyLine             string              `json:"assembly_line,omitempty"`
	IssueDescription         string              `json:"issue_description"`
	PokaYokeDescription      string              `json:"poka_yoke_description,omitempty"`
	ReasonForImplementation  string              `json:"reason_for_implementation,omitempty"`
	Program                  string              `json:"program"`
	CustomerPartNumber       string              `json:"customer_part_number,omitempty"`
	DateOfOrigination        string              `json:"date_of_origination,omitempty"`
	DepartmentID             string              `json:"department_id"`
	DepartmentName           string              `json:"department_name,omitempty"`
	InitiatorID              string              `json:"initiator_id"`
	InitiatorName            string              `json:"initiator_name,omitempty"`
	CostEstimate             float64             `json:"cost_estimate"`
	CostCurrency             string              `json:"cost_currency"`
	CostJustification        string              `json:"cost_justification,omitempty"`
	RequiresProcessAddition  bool                `json:"requires_process_addition"`
	RequiresManpowerAddition bool                `json:"requires_manpower_addition"`
	Status                   models.KaizenStatus `json:"status"`
	StatusName               string              `json:"status_name"`
	CurrentStage             models.KaizenStage  `json:"current_stage"`
	RejectionReason          string              `json:"rejection_reason,omitempty"`
	RejectedByName           string              `json:"rejected_by,omitempty"`
	RejectedByDepartment     string              `json:"rejected_by_department,omitempty"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
}

func KaizenRequestConvert(rec dbmodels.KaizenRequest) KaizenRequestView {
	view := KaizenRequestView{
		ID:                       rec.ID,
		RequestID:                rec.RequestID,
		Title:                    rec.Title,
		StationName:              rec.StationName,
		AssemblyLine:             rec.AssemblyLine,
		IssueDescription:         rec.IssueDescription,
		PokaYokeDescription:      rec.PokaYokeDescription,
		ReasonForImplementation:  rec.ReasonForImplementation,
		Program:                  rec.Program,
		CustomerPartNumber:       rec.CustomerPartNumber,
		DepartmentID:             rec.DepartmentID,
		InitiatorID:              rec.InitiatorID,
		CostEstimate:             rec.CostEstimate,
		CostCurrency:             rec.CostCurrency,
		CostJustification:        rec.CostJustification,
		RequiresProcessAddition:  rec.RequiresProcessAddition,
		RequiresManpowerAddition: rec.RequiresManpowerAddition,
		Status:                   rec.Status,
		StatusName:               rec.Status.ToHuman(),
		CurrentStage:             rec.CurrentStage,
		RejectionReason:          rec.RejectionReason,
		RejectedByDepartment:     rec.RejectedByDepartment,
		CreatedAt:                rec.CreatedAt,
		UpdatedAt:                rec.UpdatedAt,
	}
	if !rec.DateOfOrigination.IsZero() {
		view.DateOfOrigination = rec.DateOfOrigination.Format("2006-01-02")
	}
	if rec.Department != nil {
		view.DepartmentName = rec.Department.DisplayName
	}
	if rec.Initiator != nil {
		view.InitiatorName = rec.Initiator.FullName()
	}
	if rec.RejectedBy != nil {
		view.RejectedByName = rec.RejectedBy.FullName()
	}
	return view
}
