package audithandler

import (
	"kaizen-tools-backend/db"
	auditstore "kaizen-tools-backend/lib/audit/store"
	"kaizen-tools-backend/models"
	auditapimodels "kaizen-tools-backend/models/api/audit"
	dbmodels "kaizen-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Record пишет запись журнала; ошибка записи логируется и не прерывает переход
	Record(tx *gorm.DB, kaizenRequestID string, actor models.Actor, action models.AuditAction, details map[string]any)
	List(kaizenRequestID string, filter auditapimodels.AuditFilter) (list []auditapimodels.AuditView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: auditstore.NewInstance(db.DB),
	}
}

type impl struct {
	store auditstore.Provider
}

func (i impl) Record(tx *gorm.DB, kaizenRequestID string, actor models.Actor, action models.AuditAction, details map[string]any) {
	store := i.store
	if tx != nil {
		store = auditstore.NewInstance(tx)
	}
	rec := dbmodels.AuditLog{
		KaizenRequestID: kaizenRequestID,
		Action:          action,
		Details:         details,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	}
	if actor.UserID != "" {
		userID := actor.UserID
		rec.UserID = &userID
	}
	err := store.Create(rec)
	if err != nil {
		log.
			WithError(err).
			WithField("rec_id", kaizenRequestID).
			WithField("action", action).
			Error("ошибка записи журнала аудита")
	}
}

func (i impl) List(kaizenRequestID string, filter auditapimodels.AuditFilter) (list []auditapimodels.AuditView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(kaizenRequestID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(kaizenRequestID, filter)
	if err != nil {
		log.
			WithError(err).
			WithField("rec_id", kaizenRequestID).
			Error("ошибка получения журнала аудита")
		return nil, 0, err
	}
	list = make([]auditapimodels.AuditView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, auditapimodels.AuditConvert(rec))
	}
	return list, rowCount, nil
}
