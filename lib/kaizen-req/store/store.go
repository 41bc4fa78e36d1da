package store

import (
	"fmt"
	"time"

	"kaizen-tools-backend/models"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.KaizenRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.KaizenRequest, err error)
	GetByRequestID(requestID string) (rec *dbmodels.KaizenRequest, err error)
	// GetForUpdate блокирует строку заявки до конца транзакции (FOR UPDATE).
	// Точка сериализации конкурентных решений по одной заявке.
	GetForUpdate(id string) (rec *dbmodels.KaizenRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	List(actor models.Actor, filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error)
	ListCount(actor models.Actor, filter kaizenapimodels.KaizenFilter) (count int64, err error)
	ListPending(actor models.Actor) (list []dbmodels.KaizenRequest, err error)
	ListByInitiator(initiatorID string) (list []dbmodels.KaizenRequest, err error)
	ListAll(filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.KaizenRequest) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	if rec.RequestID == "" {
		rec.RequestID, err = i.nextRequestID()
		if err != nil {
			return "", err
		}
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// nextRequestID выдает бизнес-номер вида KZ-2026-001, сквозная нумерация в пределах года
func (i impl) nextRequestID() (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("KZ-%d-", year)
	var lastNum int64
	err := i.db.
		Model(dbmodels.KaizenRequest{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(request_id FROM LENGTH(?) + 1) AS INTEGER)), 0)", prefix).
		Where("request_id LIKE ?", prefix+"%").
		Scan(&lastNum).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка выдачи номера заявки")
	}
	return fmt.Sprintf("%s%03d", prefix, lastNum+1), nil
}

func (i impl) GetByID(id string) (*dbmodels.KaizenRequest, error) {
	return i.getOne("id = ?", id)
}

func (i impl) GetByRequestID(requestID string) (*dbmodels.KaizenRequest, error) {
	return i.getOne("request_id = ?", requestID)
}

func (i impl) getOne(query string, arg string) (*dbmodels.KaizenRequest, error) {
	rec := dbmodels.KaizenRequest{}
	err := i.db.
		Preload("Department").
		Preload("Initiator").
		Preload("RejectedBy").
		Where(query, arg).
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

func (i impl) GetForUpdate(id string) (*dbmodels.KaizenRequest, error) {
	rec := dbmodels.KaizenRequest{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.KaizenRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

// scope ограничивает выборку по роли:
// инициатор видит свои заявки; менеджер/руководитель - заявки своего подразделения
// и кросс-этапы, где их подразделение еще не голосовало; AGM/GM - свои этапы и итоги;
// администратор - все
func (i impl) scope(tx *gorm.DB, actor models.Actor) *gorm.DB {
	switch actor.Role {
	case models.RoleInitiator:
		return tx.Where("initiator_id = ?", actor.UserID)
	case models.RoleManager:
		voted := i.db.
			Model(dbmodels.ManagerApproval{}).
			Select("kaizen_request_id").
			Where("department_id = ?", actor.DepartmentID).
			Where("stage_type = ?", models.StageTypeCrossManager)
		return tx.Where(
			i.db.Where("department_id = ?", actor.DepartmentID).
				Or(i.db.Where("status = ?", models.StatusPendingCrossManager).
					Where("department_id <> ?", actor.DepartmentID).
					Where("id NOT IN (?)", voted)).
				Or("initiator_id = ?", actor.UserID),
		)
	case models.RoleHod:
		voted := i.db.
			Model(dbmodels.HodApproval{}).
			Select("kaizen_request_id").
			Where("department_id = ?", actor.DepartmentID).
			Where("stage_type = ?", models.StageTypeCrossHod)
		return tx.Where(
			i.db.Where("department_id = ?", actor.DepartmentID).
				Or(i.db.Where("status = ?", models.StatusPendingCrossHod).
					Where("department_id <> ?", actor.DepartmentID).
					Where("id NOT IN (?)", voted)).
				Or("initiator_id = ?", actor.UserID),
		)
	case models.RoleAgm:
		return tx.Where("status IN ? OR initiator_id = ?",
			[]models.KaizenStatus{models.StatusPendingAgm, models.StatusPendingGm, models.StatusApproved, models.StatusRejected},
			actor.UserID)
	case models.RoleGm:
		return tx.Where("status IN ? OR initiator_id = ?",
			[]models.KaizenStatus{models.StatusPendingGm, models.StatusApproved, models.StatusRejected},
			actor.UserID)
	case models.RoleAdmin:
		return tx
	}
	return tx.Where("1 = 0")
}

func (i impl) applyFilter(tx *gorm.DB, filter kaizenapimodels.KaizenFilter) *gorm.DB {
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		tx = tx.Where("title ILIKE ? OR request_id ILIKE ?", search, search)
	}
	return tx
}

func (i impl) List(actor models.Actor, filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error) {
	list = []dbmodels.KaizenRequest{}
	page, limit := filter.GetPage()
	tx := i.scope(i.db.Model(dbmodels.KaizenRequest{}), actor)
	tx = i.applyFilter(tx, filter)
	err = tx.
		Preload("Department").
		Preload("Initiator").
		Preload("RejectedBy").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(actor models.Actor, filter kaizenapimodels.KaizenFilter) (count int64, err error) {
	tx := i.scope(i.db.Model(dbmodels.KaizenRequest{}), actor)
	tx = i.applyFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListPending(actor models.Actor) (list []dbmodels.KaizenRequest, err error) {
	list = []dbmodels.KaizenRequest{}
	tx := i.db.Model(dbmodels.KaizenRequest{})
	switch actor.Role {
	case models.RoleManager:
		voted := i.db.
			Model(dbmodels.ManagerApproval{}).
			Select("kaizen_request_id").
			Where("department_id = ?", actor.DepartmentID).
			Where("stage_type = ?", models.StageTypeCrossManager)
		tx = tx.Where(
			i.db.Where("status = ?", models.StatusPendingOwnManager).
				Where("department_id = ?", actor.DepartmentID).
				Or(i.db.Where("status = ?", models.StatusPendingCrossManager).
					Where("department_id <> ?", actor.DepartmentID).
					Where("id NOT IN (?)", voted)),
		)
	case models.RoleHod:
		voted := i.db.
			Model(dbmodels.HodApproval{}).
			Select("kaizen_request_id").
			Where("department_id = ?", actor.DepartmentID).
			Where("stage_type = ?", models.StageTypeCrossHod)
		tx = tx.Where(
			i.db.Where("status = ?", models.StatusPendingOwnHod).
				Where("department_id = ?", actor.DepartmentID).
				Or(i.db.Where("status = ?", models.StatusPendingCrossHod).
					Where("department_id <> ?", actor.DepartmentID).
					Where("id NOT IN (?)", voted)),
		)
	case models.RoleAgm:
		tx = tx.Where("status = ?", models.StatusPendingAgm)
	case models.RoleGm:
		tx = tx.Where("status = ?", models.StatusPendingGm)
	default:
		return list, nil
	}
	err = tx.
		Preload("Department").
		Preload("Initiator").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByInitiator(initiatorID string) (list []dbmodels.KaizenRequest, err error) {
	list = []dbmodels.KaizenRequest{}
	err = i.db.
		Preload("Department").
		Preload("Initiator").
		Where("initiator_id = ?", initiatorID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAll(filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error) {
	list = []dbmodels.KaizenRequest{}
	tx := i.applyFilter(i.db.Model(dbmodels.KaizenRequest{}), filter)
	err = tx.
		Preload("Department").
		Preload("Initiator").
		Preload("RejectedBy").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
