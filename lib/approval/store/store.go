package store

import (
	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Provider - реестр решений по заявке.
// Решения подразделений идемпотентно перезаписываются по ключу
// (заявка, подразделение, тип этапа); решения AGM/GM создаются однократно.
type Provider interface {
	UpsertManagerApproval(rec dbmodels.ManagerApproval) error
	UpsertHodApproval(rec dbmodels.HodApproval) error
	CountManagerDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (count int64, err error)
	CountHodDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (count int64, err error)
	ListManagerApprovals(kaizenRequestID string) (list []dbmodels.ManagerApproval, err error)
	ListHodApprovals(kaizenRequestID string) (list []dbmodels.HodApproval, err error)
	GetAgmApproval(kaizenRequestID string) (rec *dbmodels.AgmApproval, err error)
	CreateAgmApproval(rec dbmodels.AgmApproval) error
	GetGmApproval(kaizenRequestID string) (rec *dbmodels.GmApproval, err error)
	CreateGmApproval(rec dbmodels.GmApproval) error
	UpsertEvaluation(rec dbmodels.DepartmentEvaluation) error
	ListEvaluations(kaizenRequestID string) (list []dbmodels.DepartmentEvaluation, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

var departmentDecisionKey = []clause.Column{
	{Name: "kaizen_request_id"},
	{Name: "department_id"},
	{Name: "stage_type"},
}

func (i impl) UpsertManagerApproval(rec dbmodels.ManagerApproval) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   departmentDecisionKey,
			DoUpdates: clause.AssignmentColumns([]string{"manager_id", "decision", "remarks", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) UpsertHodApproval(rec dbmodels.HodApproval) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   departmentDecisionKey,
			DoUpdates: clause.AssignmentColumns([]string{"hod_id", "decision", "remarks", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) CountManagerDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (count int64, err error) {
	err = i.db.
		Model(dbmodels.ManagerApproval{}).
		Where("kaizen_request_id = ?", kaizenRequestID).
		Where("stage_type = ?", stageType).
		Where("decision = ?", decision).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) CountHodDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (count int64, err error) {
	err = i.db.
		Model(dbmodels.HodApproval{}).
		Where("kaizen_request_id = ?", kaizenRequestID).
		Where("stage_type = ?", stageType).
		Where("decision = ?", decision).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListManagerApprovals(kaizenRequestID string) (list []dbmodels.ManagerApproval, err error) {
	list = []dbmodels.ManagerApproval{}
	err = i.db.
		Preload("Department").
		Preload("Manager").
		Where("kaizen_request_id = ?", kaizenRequestID).
		Order("updated_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListHodApprovals(kaizenRequestID string) (list []dbmodels.HodApproval, err error) {
	list = []dbmodels.HodApproval{}
	err = i.db.
		Preload("Department").
		Preload("Hod").
		Where("kaizen_request_id = ?", kaizenRequestID).
		Order("updated_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetAgmApproval(kaizenRequestID string) (*dbmodels.AgmApproval, error) {
	rec := dbmodels.AgmApproval{}
	err := i.db.
		Preload("Agm").
		Where("kaizen_request_id = ?", kaizenRequestID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) CreateAgmApproval(rec dbmodels.AgmApproval) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) GetGmApproval(kaizenRequestID string) (*dbmodels.GmApproval, error) {
	rec := dbmodels.GmApproval{}
	err := i.db.
		Preload("Gm").
		Where("kaizen_request_id = ?", kaizenRequestID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) CreateGmApproval(rec dbmodels.GmApproval) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) UpsertEvaluation(rec dbmodels.DepartmentEvaluation) error {
	return i.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "kaizen_request_id"},
				{Name: "department_id"},
				{Name: "evaluator_role"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"evaluator_id", "answers", "overall_risk", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) ListEvaluations(kaizenRequestID string) (list []dbmodels.DepartmentEvaluation, err error) {
	list = []dbmodels.DepartmentEvaluation{}
	err = i.db.
		Preload("Department").
		Preload("Evaluator").
		Where("kaizen_request_id = ?", kaizenRequestID).
		Order("updated_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
