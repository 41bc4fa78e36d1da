package kaizenreqhandler

import (
	"kaizen-tools-backend/config"
	"kaizen-tools-backend/db"
	audithandler "kaizen-tools-backend/lib/audit"
	departmentstore "kaizen-tools-backend/lib/dicts/department/store"
	kaizenstore "kaizen-tools-backend/lib/kaizen-req/store"
	notifyhandler "kaizen-tools-backend/lib/notify"
	"kaizen-tools-backend/models"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actor models.Actor, data kaizenapimodels.KaizenRequestData) (id string, err error)
	Update(id string, actor models.Actor, data kaizenapimodels.KaizenRequestData) error
	// Submit переводит черновик на этап менеджера своего подразделения
	Submit(id string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error)
	Delete(id string, actor models.Actor) error
	GetByID(id string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error)
	GetByRequestID(requestID string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error)
	// Register - полный реестр заявок для выгрузки
	Register(filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error)
	List(actor models.Actor, filter kaizenapimodels.KaizenFilter) (list []kaizenapimodels.KaizenRequestView, rowCount int64, err error)
	MyRequests(actor models.Actor) (list []kaizenapimodels.KaizenRequestView, err error)
	// PendingApprovals - заявки, ожидающие решения текущего пользователя
	PendingApprovals(actor models.Actor) (list []kaizenapimodels.KaizenRequestView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           kaizenstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
		auditHandler:    audithandler.Instance,
		notifier:        notifyhandler.Instance,
	}
}

type impl struct {
	store           kaizenstore.Provider
	departmentStore departmentstore.Provider
	auditHandler    audithandler.Provider
	notifier        notifyhandler.Provider
}

func (i impl) Create(actor models.Actor, data kaizenapimodels.KaizenRequestData) (id string, err error) {
	logger := log.
		WithField("user_id", actor.UserID).
		WithField("department_id", actor.DepartmentID)
	if err = data.Validate(); err != nil {
		return "", errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	if actor.DepartmentID == "" {
		return "", errors.Wrap(models.ErrValidationFailed, "у инициатора не указано подразделение")
	}
	departmentRec, err := i.departmentStore.GetByID(actor.DepartmentID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения подразделения")
		return "", err
	}
	if departmentRec == nil {
		return "", errors.Wrap(models.ErrValidationFailed, "подразделение не найдено")
	}
	originationDate, err := data.OriginationDate()
	if err != nil {
		return "", errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	rec := dbmodels.KaizenRequest{
		Title:                    data.Title,
		StationName:              data.StationName,
		AssemblyLine:             data.AssemblyLine,
		IssueDescription:         data.IssueDescription,
		PokaYokeDescription:      data.PokaYokeDescription,
		ReasonForImplementation:  data.ReasonForImplementation,
		Program:                  data.Program,
		CustomerPartNumber:       data.CustomerPartNumber,
		DateOfOrigination:        originationDate,
		DepartmentID:             actor.DepartmentID,
		InitiatorID:              actor.UserID,
		CostEstimate:             data.CostEstimate,
		CostCurrency:             config.Conf.Approval.CostCurrency,
		CostJustification:        data.CostJustification,
		RequiresProcessAddition:  data.RequiresProcessAddition,
		RequiresManpowerAddition: data.RequiresManpowerAddition,
		Status:                   models.StatusDraft,
		CurrentStage:             models.StageDraft,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := kaizenstore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		i.auditHandler.Record(tx, id, actor, models.AuditRequestCreated, map[string]any{
			"title":         data.Title,
			"cost_estimate": data.CostEstimate,
		})
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания заявки")
		return "", err
	}
	logger.WithField("rec_id", id).Info("создан черновик заявки")
	return id, nil
}

func (i impl) Update(id string, actor models.Actor, data kaizenapimodels.KaizenRequestData) error {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", actor.UserID)
	if err := data.Validate(); err != nil {
		return errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	originationDate, err := data.OriginationDate()
	if err != nil {
		return errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := kaizenstore.NewInstance(tx)
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFoundOrWrongStage
		}
		if rec.InitiatorID != actor.UserID {
			return models.ErrUnauthorized
		}
		// редактируется только черновик
		if rec.Status != models.StatusDraft {
			return models.ErrNotFoundOrWrongStage
		}
		updMap := map[string]interface{}{
			"title":                      data.Title,
			"station_name":               data.StationName,
			"assembly_line":              data.AssemblyLine,
			"issue_description":          data.IssueDescription,
			"poka_yoke_description":      data.PokaYokeDescription,
			"reason_for_implementation":  data.ReasonForImplementation,
			"program":                    data.Program,
			"customer_part_number":       data.CustomerPartNumber,
			"date_of_origination":        originationDate,
			"cost_estimate":              data.CostEstimate,
			"cost_justification":         data.CostJustification,
			"requires_process_addition":  data.RequiresProcessAddition,
			"requires_manpower_addition": data.RequiresManpowerAddition,
		}
		err = store.Update(id, updMap)
		if err != nil {
			return err
		}
		i.auditHandler.Record(tx, id, actor, models.AuditRequestUpdated, map[string]any{
			"title": data.Title,
		})
		return nil
	})
	if err != nil {
		if !models.IsBusinessErr(err) {
			logger.WithError(err).Error("ошибка изменения заявки")
		}
		return err
	}
	return nil
}

func (i impl) Submit(id string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", actor.UserID)
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := kaizenstore.NewInstance(tx)
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFoundOrWrongStage
		}
		if rec.InitiatorID != actor.UserID {
			return models.ErrUnauthorized
		}
		if rec.Status != models.StatusDraft {
			return models.ErrNotFoundOrWrongStage
		}
		stage, _ := models.StatusPendingOwnManager.StageFor()
		err = store.Update(id, map[string]interface{}{
			"status":        models.StatusPendingOwnManager,
			"current_stage": stage,
		})
		if err != nil {
			return err
		}
		i.auditHandler.Record(tx, id, actor, models.AuditRequestSubmitted, map[string]any{
			"request_id": rec.RequestID,
		})
		return nil
	})
	if err != nil {
		if !models.IsBusinessErr(err) {
			logger.WithError(err).Error("ошибка подачи заявки на согласование")
		}
		return view, err
	}
	logger.Info("заявка подана на согласование")
	if i.notifier != nil {
		i.notifier.StatusChanged(id)
	}
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil {
		return view, errors.Wrap(err, "ошибка получения заявки после подачи")
	}
	return kaizenapimodels.KaizenRequestConvert(*rec), nil
}

func (i impl) Delete(id string, actor models.Actor) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := kaizenstore.NewInstance(tx)
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFoundOrWrongStage
		}
		if rec.InitiatorID != actor.UserID && actor.Role != models.RoleAdmin {
			return models.ErrUnauthorized
		}
		// удаляется только черновик, поданные заявки остаются в истории
		if rec.Status != models.StatusDraft {
			return models.ErrNotFoundOrWrongStage
		}
		return tx.Delete(rec).Error
	})
}

func (i impl) GetByID(id string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithError(err).WithField("rec_id", id).Error("ошибка получения заявки")
		return view, err
	}
	if rec == nil {
		return view, models.ErrNotFoundOrWrongStage
	}
	// инициатор видит только свои заявки, согласующие роли - любые
	if actor.Role == models.RoleInitiator && rec.InitiatorID != actor.UserID {
		return view, models.ErrNotFoundOrWrongStage
	}
	return kaizenapimodels.KaizenRequestConvert(*rec), nil
}

func (i impl) GetByRequestID(requestID string, actor models.Actor) (view kaizenapimodels.KaizenRequestView, err error) {
	rec, err := i.store.GetByRequestID(requestID)
	if err != nil {
		log.WithError(err).WithField("request_id", requestID).Error("ошибка получения заявки")
		return view, err
	}
	if rec == nil {
		return view, models.ErrNotFoundOrWrongStage
	}
	if actor.Role == models.RoleInitiator && rec.InitiatorID != actor.UserID {
		return view, models.ErrNotFoundOrWrongStage
	}
	return kaizenapimodels.KaizenRequestConvert(*rec), nil
}

func (i impl) Register(filter kaizenapimodels.KaizenFilter) (list []dbmodels.KaizenRequest, err error) {
	list, err = i.store.ListAll(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения реестра заявок")
		return nil, err
	}
	return list, nil
}

func (i impl) List(actor models.Actor, filter kaizenapimodels.KaizenFilter) (list []kaizenapimodels.KaizenRequestView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(actor, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(actor, filter)
	if err != nil {
		log.WithError(err).WithField("user_id", actor.UserID).Error("ошибка получения списка заявок")
		return nil, 0, err
	}
	list = make([]kaizenapimodels.KaizenRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, kaizenapimodels.KaizenRequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) MyRequests(actor models.Actor) (list []kaizenapimodels.KaizenRequestView, err error) {
	recList, err := i.store.ListByInitiator(actor.UserID)
	if err != nil {
		log.WithError(err).WithField("user_id", actor.UserID).Error("ошибка получения заявок инициатора")
		return nil, err
	}
	list = make([]kaizenapimodels.KaizenRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, kaizenapimodels.KaizenRequestConvert(rec))
	}
	return list, nil
}

func (i impl) PendingApprovals(actor models.Actor) (list []kaizenapimodels.KaizenRequestView, err error) {
	recList, err := i.store.ListPending(actor)
	if err != nil {
		log.WithError(err).WithField("user_id", actor.UserID).Error("ошибка получения заявок на согласовании")
		return nil, err
	}
	list = make([]kaizenapimodels.KaizenRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, kaizenapimodels.KaizenRequestConvert(rec))
	}
	return list, nil
}
