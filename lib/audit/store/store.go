package store

import (
	auditapimodels "kaizen-tools-backend/models/api/audit"
	dbmodels "kaizen-tools-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.AuditLog) error
	List(kaizenRequestID string, filter auditapimodels.AuditFilter) (list []dbmodels.AuditLog, err error)
	ListCount(kaizenRequestID string, filter auditapimodels.AuditFilter) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuditLog) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) applyFilter(tx *gorm.DB, kaizenRequestID string, filter auditapimodels.AuditFilter) *gorm.DB {
	tx = tx.Where("kaizen_request_id = ?", kaizenRequestID)
	if filter.Action != "" {
		tx = tx.Where("action = ?", filter.Action)
	}
	return tx
}

func (i impl) List(kaizenRequestID string, filter auditapimodels.AuditFilter) (list []dbmodels.AuditLog, err error) {
	list = []dbmodels.AuditLog{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.AuditLog{}), kaizenRequestID, filter)
	err = tx.
		Preload("User").
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

func (i impl) ListCount(kaizenRequestID string, filter auditapimodels.AuditFilter) (count int64, err error) {
	tx := i.applyFilter(i.db.Model(dbmodels.AuditLog{}), kaizenRequestID, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
