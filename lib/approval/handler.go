package approvalhandler

import (
	"fmt"
	"time"

	"kaizen-tools-backend/config"
	"kaizen-tools-backend/db"
	"kaizen-tools-backend/lib/approval/escalation"
	"kaizen-tools-backend/lib/approval/risk"
	approvalstore "kaizen-tools-backend/lib/approval/store"
	audithandler "kaizen-tools-backend/lib/audit"
	departmentstore "kaizen-tools-backend/lib/dicts/department/store"
	pdfexport "kaizen-tools-backend/lib/export/pdf"
	kaizenstore "kaizen-tools-backend/lib/kaizen-req/store"
	notifyhandler "kaizen-tools-backend/lib/notify"
	"kaizen-tools-backend/models"
	approvalapimodels "kaizen-tools-backend/models/api/approval"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider - решения по заявке на каждом этапе цепочки согласования.
// Каждое решение выполняется в одной транзакции, строка заявки блокируется
// на время транзакции, поэтому конкурентные решения по одной заявке
// применяются строго последовательно.
type Provider interface {
	OwnManagerDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	OwnHodDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	CrossManagerDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	CrossHodDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	AgmDecision(id string, actor models.Actor, data approvalapimodels.SingleDecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	GmDecision(id string, actor models.Actor, data approvalapimodels.SingleDecisionData) (view kaizenapimodels.KaizenRequestView, err error)
	Trail(id string, actor models.Actor) (view approvalapimodels.ApprovalTrailView, err error)
	// Card - печатная карточка заявки с историей решений
	Card(id string, actor models.Actor) (pdfFile []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		runTx: func(fn func(tx *gorm.DB) error) error {
			return db.DB.Transaction(fn)
		},
		stores:       storesFor,
		auditHandler: audithandler.Instance,
		notifier:     notifyhandler.Instance,
		policy: escalation.Policy{
			AgmCostThreshold: config.Conf.Approval.AgmCostThreshold,
			GmCostThreshold:  config.Conf.Approval.GmCostThreshold,
		},
	}
}

// txStores - хранилища, привязанные к транзакции решения
type txStores struct {
	kaizen      kaizenstore.Provider
	ledger      approvalstore.Provider
	departments departmentstore.Provider
}

func storesFor(tx *gorm.DB) txStores {
	if tx == nil {
		tx = db.DB
	}
	return txStores{
		kaizen:      kaizenstore.NewInstance(tx),
		ledger:      approvalstore.NewInstance(tx),
		departments: departmentstore.NewInstance(tx),
	}
}

type impl struct {
	runTx        func(fn func(tx *gorm.DB) error) error
	stores       func(tx *gorm.DB) txStores
	auditHandler audithandler.Provider
	notifier     notifyhandler.Provider
	policy       escalation.Policy
}

// stageOp - требования этапа к решению: ожидаемый статус заявки,
// роль согласующего и принадлежность к подразделению заявки
type stageOp struct {
	role          models.UserRole
	status        models.KaizenStatus
	own           bool
	approveAction models.AuditAction
	rejectAction  models.AuditAction
}

var stageOps = map[models.StageType]stageOp{
	models.StageTypeOwnManager: {
		role:          models.RoleManager,
		status:        models.StatusPendingOwnManager,
		own:           true,
		approveAction: models.AuditOwnManagerApproved,
		rejectAction:  models.AuditOwnManagerRejected,
	},
	models.StageTypeOwnHod: {
		role:          models.RoleHod,
		status:        models.StatusPendingOwnHod,
		own:           true,
		approveAction: models.AuditOwnHodApproved,
		rejectAction:  models.AuditOwnHodRejected,
	},
	models.StageTypeCrossManager: {
		role:          models.RoleManager,
		status:        models.StatusPendingCrossManager,
		approveAction: models.AuditCrossManagerApproved,
		rejectAction:  models.AuditCrossManagerRejected,
	},
	models.StageTypeCrossHod: {
		role:          models.RoleHod,
		status:        models.StatusPendingCrossHod,
		approveAction: models.AuditCrossHodApproved,
		rejectAction:  models.AuditCrossHodRejected,
	},
	models.StageTypeAgm: {
		role:          models.RoleAgm,
		status:        models.StatusPendingAgm,
		approveAction: models.AuditAgmApproved,
		rejectAction:  models.AuditAgmRejected,
	},
	models.StageTypeGm: {
		role:          models.RoleGm,
		status:        models.StatusPendingGm,
		approveAction: models.AuditGmApproved,
		rejectAction:  models.AuditGmRejected,
	},
}

// полнота таблицы этапов проверяется при загрузке пакета,
// незакрытый этап - ошибка конфигурации кода, а не времени запроса
func init() {
	for _, stageType := range []models.StageType{
		models.StageTypeOwnManager,
		models.StageTypeOwnHod,
		models.StageTypeCrossManager,
		models.StageTypeCrossHod,
		models.StageTypeAgm,
		models.StageTypeGm,
	} {
		op, ok := stageOps[stageType]
		if !ok {
			panic(fmt.Sprintf("не задан обработчик этапа %v", stageType))
		}
		if _, ok = op.status.StageFor(); !ok {
			panic(fmt.Sprintf("нет этапа для статуса %v", op.status))
		}
	}
}

func (i impl) OwnManagerDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.departmentDecision(id, actor, models.StageTypeOwnManager, data)
}

func (i impl) OwnHodDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.departmentDecision(id, actor, models.StageTypeOwnHod, data)
}

func (i impl) CrossManagerDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.departmentDecision(id, actor, models.StageTypeCrossManager, data)
}

func (i impl) CrossHodDecision(id string, actor models.Actor, data approvalapimodels.DecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.departmentDecision(id, actor, models.StageTypeCrossHod, data)
}

func (i impl) AgmDecision(id string, actor models.Actor, data approvalapimodels.SingleDecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.singleDecision(id, actor, models.StageTypeAgm, data)
}

func (i impl) GmDecision(id string, actor models.Actor, data approvalapimodels.SingleDecisionData) (kaizenapimodels.KaizenRequestView, error) {
	return i.singleDecision(id, actor, models.StageTypeGm, data)
}

// departmentDecision - решение менеджера или руководителя подразделения.
// Повторное решение того же подразделения на том же этапе перезаписывает
// прежнее в реестре; заявка продвигается дальше только при выполнении
// условия полноты этапа.
func (i impl) departmentDecision(id string, actor models.Actor, stageType models.StageType, data approvalapimodels.DecisionData) (view kaizenapimodels.KaizenRequestView, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", actor.UserID).
		WithField("stage_type", stageType)
	op := stageOps[stageType]
	if actor.Role != op.role || actor.DepartmentID == "" {
		return view, models.ErrUnauthorized
	}
	if err = data.Validate(); err != nil {
		return view, errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	transitioned := false
	err = i.runTx(func(tx *gorm.DB) error {
		stores := i.stores(tx)
		rec, err := stores.kaizen.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status != op.status {
			return models.ErrNotFoundOrWrongStage
		}
		if op.own && rec.DepartmentID != actor.DepartmentID {
			return models.ErrUnauthorized
		}
		// свое подразделение в кросс-этапе не участвует
		if !op.own && rec.DepartmentID == actor.DepartmentID {
			return models.ErrUnauthorized
		}
		err = i.storeDecision(stores, *rec, actor, stageType, data)
		if err != nil {
			return err
		}
		if data.Decision == models.DecisionRejected {
			transitioned = true
			return i.reject(tx, stores, rec, actor, data.Remarks, op.rejectAction, true)
		}
		i.auditHandler.Record(tx, rec.ID, actor, op.approveAction, map[string]any{
			"department_id": actor.DepartmentID,
			"remarks":       data.Remarks,
		})
		complete, err := i.stageComplete(stores, *rec, stageType, op)
		if err != nil {
			return err
		}
		if !complete {
			return nil
		}
		next, err := i.nextStatus(stageType, *rec)
		if err != nil {
			return err
		}
		transitioned = true
		return i.transition(stores, rec, next)
	})
	if err != nil {
		err = mapConflictErr(err)
		if !models.IsBusinessErr(err) {
			logger.WithError(err).Error("ошибка применения решения")
		}
		return view, err
	}
	if transitioned && i.notifier != nil {
		i.notifier.StatusChanged(id)
	}
	return i.view(id)
}

// singleDecision - единоличное решение AGM или GM. Решение создается
// однократно, повтор означает гонку двух запросов и отклоняется.
func (i impl) singleDecision(id string, actor models.Actor, stageType models.StageType, data approvalapimodels.SingleDecisionData) (view kaizenapimodels.KaizenRequestView, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", actor.UserID).
		WithField("stage_type", stageType)
	op := stageOps[stageType]
	if actor.Role != op.role {
		return view, models.ErrUnauthorized
	}
	if err = data.Validate(); err != nil {
		return view, errors.Wrap(models.ErrValidationFailed, err.Error())
	}
	err = i.runTx(func(tx *gorm.DB) error {
		stores := i.stores(tx)
		rec, err := stores.kaizen.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil || rec.Status != op.status {
			return models.ErrNotFoundOrWrongStage
		}
		err = i.storeSingleDecision(stores, *rec, actor, stageType, data)
		if err != nil {
			return err
		}
		if !*data.Approved {
			return i.reject(tx, stores, rec, actor, data.Comments, op.rejectAction, false)
		}
		i.auditHandler.Record(tx, rec.ID, actor, op.approveAction, map[string]any{
			"comments": data.Comments,
		})
		next, err := i.nextStatus(stageType, *rec)
		if err != nil {
			return err
		}
		return i.transition(stores, rec, next)
	})
	if err != nil {
		err = mapConflictErr(err)
		if !models.IsBusinessErr(err) {
			logger.WithError(err).Error("ошибка применения решения")
		}
		return view, err
	}
	if i.notifier != nil {
		i.notifier.StatusChanged(id)
	}
	return i.view(id)
}

func (i impl) storeDecision(stores txStores, rec dbmodels.KaizenRequest, actor models.Actor, stageType models.StageType, data approvalapimodels.DecisionData) error {
	var err error
	if stageOps[stageType].role == models.RoleManager {
		err = stores.ledger.UpsertManagerApproval(dbmodels.ManagerApproval{
			KaizenRequestID: rec.ID,
			ManagerID:       actor.UserID,
			DepartmentID:    actor.DepartmentID,
			StageType:       stageType,
			Decision:        data.Decision,
			Remarks:         data.Remarks,
		})
	} else {
		err = stores.ledger.UpsertHodApproval(dbmodels.HodApproval{
			KaizenRequestID: rec.ID,
			HodID:           actor.UserID,
			DepartmentID:    actor.DepartmentID,
			StageType:       stageType,
			Decision:        data.Decision,
			Remarks:         data.Remarks,
		})
	}
	if err != nil {
		return err
	}
	answers := data.DbAnswers()
	if len(answers) == 0 {
		return nil
	}
	evaluatorRole := models.EvaluatorManager
	if stageOps[stageType].role == models.RoleHod {
		evaluatorRole = models.EvaluatorHod
	}
	return stores.ledger.UpsertEvaluation(dbmodels.DepartmentEvaluation{
		KaizenRequestID: rec.ID,
		DepartmentID:    actor.DepartmentID,
		EvaluatorID:     actor.UserID,
		EvaluatorRole:   evaluatorRole,
		Answers:         answers,
		OverallRisk:     risk.Calculate(answers),
	})
}

func (i impl) storeSingleDecision(stores txStores, rec dbmodels.KaizenRequest, actor models.Actor, stageType models.StageType, data approvalapimodels.SingleDecisionData) error {
	if stageType == models.StageTypeAgm {
		existing, err := stores.ledger.GetAgmApproval(rec.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.ErrConcurrencyConflict
		}
		return stores.ledger.CreateAgmApproval(dbmodels.AgmApproval{
			KaizenRequestID:   rec.ID,
			AgmID:             actor.UserID,
			Approved:          *data.Approved,
			Comments:          data.Comments,
			CostJustification: data.CostJustification,
		})
	}
	existing, err := stores.ledger.GetGmApproval(rec.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.ErrConcurrencyConflict
	}
	return stores.ledger.CreateGmApproval(dbmodels.GmApproval{
		KaizenRequestID:   rec.ID,
		GmID:              actor.UserID,
		Approved:          *data.Approved,
		Comments:          data.Comments,
		CostJustification: data.CostJustification,
	})
}

// stageComplete - условие полноты этапа: собственные этапы закрываются
// одним решением, кросс-этапы требуют одобрения всех остальных подразделений
func (i impl) stageComplete(stores txStores, rec dbmodels.KaizenRequest, stageType models.StageType, op stageOp) (bool, error) {
	if op.own {
		return true, nil
	}
	var approvedCount int64
	var err error
	if op.role == models.RoleManager {
		approvedCount, err = stores.ledger.CountManagerDecisions(rec.ID, stageType, models.DecisionApproved)
	} else {
		approvedCount, err = stores.ledger.CountHodDecisions(rec.ID, stageType, models.DecisionApproved)
	}
	if err != nil {
		return false, err
	}
	otherCount, err := stores.departments.CountOther(rec.DepartmentID)
	if err != nil {
		return false, err
	}
	return approvedCount == otherCount, nil
}

func (i impl) nextStatus(stageType models.StageType, rec dbmodels.KaizenRequest) (models.KaizenStatus, error) {
	switch stageType {
	case models.StageTypeOwnManager:
		return models.StatusPendingOwnHod, nil
	case models.StageTypeOwnHod:
		return models.StatusPendingCrossManager, nil
	case models.StageTypeCrossManager:
		return models.StatusPendingCrossHod, nil
	case models.StageTypeCrossHod:
		if i.policy.RequiresAgm(rec.CostEstimate, rec.RequiresProcessAddition, rec.RequiresManpowerAddition) {
			return models.StatusPendingAgm, nil
		}
		return models.StatusApproved, nil
	case models.StageTypeAgm:
		if i.policy.RequiresGm(rec.CostEstimate) {
			return models.StatusPendingGm, nil
		}
		return models.StatusApproved, nil
	case models.StageTypeGm:
		return models.StatusApproved, nil
	}
	return "", errors.Errorf("неизвестный тип этапа: %v", stageType)
}

func (i impl) transition(stores txStores, rec *dbmodels.KaizenRequest, next models.KaizenStatus) error {
	stage, ok := next.StageFor()
	if !ok {
		return errors.Errorf("нет этапа для статуса %v", next)
	}
	return stores.kaizen.Update(rec.ID, map[string]interface{}{
		"status":        next,
		"current_stage": stage,
	})
}

// reject переводит заявку в терминальный статус REJECTED.
// Этап заявки не меняется - он фиксирует, где заявка была отклонена.
func (i impl) reject(tx *gorm.DB, stores txStores, rec *dbmodels.KaizenRequest, actor models.Actor, reason string, action models.AuditAction, withDepartment bool) error {
	updMap := map[string]interface{}{
		"status":           models.StatusRejected,
		"rejection_reason": reason,
		"rejected_by_id":   actor.UserID,
	}
	if withDepartment {
		departmentRec, err := stores.departments.GetByID(actor.DepartmentID)
		if err != nil {
			return err
		}
		if departmentRec != nil {
			updMap["rejected_by_department"] = departmentRec.DisplayName
		}
	}
	err := stores.kaizen.Update(rec.ID, updMap)
	if err != nil {
		return err
	}
	i.auditHandler.Record(tx, rec.ID, actor, action, map[string]any{
		"reason": reason,
	})
	return nil
}

func (i impl) view(id string) (view kaizenapimodels.KaizenRequestView, err error) {
	rec, err := i.stores(nil).kaizen.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.ErrNotFoundOrWrongStage
	}
	return kaizenapimodels.KaizenRequestConvert(*rec), nil
}

func (i impl) Trail(id string, actor models.Actor) (view approvalapimodels.ApprovalTrailView, err error) {
	stores := i.stores(nil)
	rec, err := stores.kaizen.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.ErrNotFoundOrWrongStage
	}
	if actor.Role == models.RoleInitiator && rec.InitiatorID != actor.UserID {
		return view, models.ErrNotFoundOrWrongStage
	}
	managerList, err := stores.ledger.ListManagerApprovals(rec.ID)
	if err != nil {
		return view, err
	}
	hodList, err := stores.ledger.ListHodApprovals(rec.ID)
	if err != nil {
		return view, err
	}
	agmRec, err := stores.ledger.GetAgmApproval(rec.ID)
	if err != nil {
		return view, err
	}
	gmRec, err := stores.ledger.GetGmApproval(rec.ID)
	if err != nil {
		return view, err
	}
	evaluationList, err := stores.ledger.ListEvaluations(rec.ID)
	if err != nil {
		return view, err
	}
	view = approvalapimodels.ApprovalTrailView{
		ManagerApprovals: make([]approvalapimodels.DepartmentDecisionView, 0, len(managerList)),
		HodApprovals:     make([]approvalapimodels.DepartmentDecisionView, 0, len(hodList)),
		Evaluations:      make([]approvalapimodels.EvaluationView, 0, len(evaluationList)),
	}
	for _, item := range managerList {
		view.ManagerApprovals = append(view.ManagerApprovals, approvalapimodels.ManagerApprovalConvert(item))
	}
	for _, item := range hodList {
		view.HodApprovals = append(view.HodApprovals, approvalapimodels.HodApprovalConvert(item))
	}
	for _, item := range evaluationList {
		view.Evaluations = append(view.Evaluations, approvalapimodels.EvaluationConvert(item))
	}
	if agmRec != nil {
		itemView := singleDecisionConvert(agmRec.AgmID, agmRec.Agm, agmRec.Approved, agmRec.Comments, agmRec.CostJustification, agmRec.ApprovedAt)
		view.AgmApproval = &itemView
	}
	if gmRec != nil {
		itemView := singleDecisionConvert(gmRec.GmID, gmRec.Gm, gmRec.Approved, gmRec.Comments, gmRec.CostJustification, gmRec.ApprovedAt)
		view.GmApproval = &itemView
	}
	return view, nil
}

func (i impl) Card(id string, actor models.Actor) ([]byte, error) {
	rec, err := i.stores(nil).kaizen.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFoundOrWrongStage
	}
	if actor.Role == models.RoleInitiator && rec.InitiatorID != actor.UserID {
		return nil, models.ErrNotFoundOrWrongStage
	}
	trail, err := i.Trail(id, actor)
	if err != nil {
		return nil, err
	}
	return pdfexport.GenerateRequestCard(*rec, trail)
}

func singleDecisionConvert(actorID string, actor *dbmodels.User, approved bool, comments, costJustification string, approvedAt time.Time) approvalapimodels.SingleDecisionView {
	view := approvalapimodels.SingleDecisionView{
		ActorID:           actorID,
		Approved:          approved,
		Comments:          comments,
		CostJustification: costJustification,
		ApprovedAt:        approvedAt,
	}
	if actor != nil {
		view.ActorName = actor.FullName()
	}
	return view
}

// mapConflictErr сопоставляет ошибки БД о гонке транзакций
// (нарушение уникальности, serialization failure, deadlock)
// с ошибкой конфликта, безопасной для повтора запроса
func mapConflictErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001", "40P01":
			return errors.Wrap(models.ErrConcurrencyConflict, pgErr.Message)
		}
	}
	return err
}
