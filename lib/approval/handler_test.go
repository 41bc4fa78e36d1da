package approvalhandler

import (
	"testing"

	"kaizen-tools-backend/lib/approval/escalation"
	"kaizen-tools-backend/models"
	approvalapimodels "kaizen-tools-backend/models/api/approval"
	auditapimodels "kaizen-tools-backend/models/api/audit"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeKaizenStore struct {
	recs map[string]*dbmodels.KaizenRequest
}

func (f *fakeKaizenStore) Create(rec dbmodels.KaizenRequest) (string, error) {
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeKaizenStore) GetByID(id string) (*dbmodels.KaizenRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeKaizenStore) GetByRequestID(requestID string) (*dbmodels.KaizenRequest, error) {
	for _, rec := range f.recs {
		if rec.RequestID == requestID {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeKaizenStore) GetForUpdate(id string) (*dbmodels.KaizenRequest, error) {
	return f.GetByID(id)
}

func (f *fakeKaizenStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return nil
	}
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.KaizenStatus)
		case "current_stage":
			rec.CurrentStage = value.(models.KaizenStage)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		case "rejected_by_id":
			rejectedByID := value.(string)
			rec.RejectedByID = &rejectedByID
		case "rejected_by_department":
			rec.RejectedByDepartment = value.(string)
		}
	}
	return nil
}

func (f *fakeKaizenStore) List(_ models.Actor, _ kaizenapimodels.KaizenFilter) ([]dbmodels.KaizenRequest, error) {
	return nil, nil
}

func (f *fakeKaizenStore) ListCount(_ models.Actor, _ kaizenapimodels.KaizenFilter) (int64, error) {
	return 0, nil
}

func (f *fakeKaizenStore) ListPending(_ models.Actor) ([]dbmodels.KaizenRequest, error) {
	return nil, nil
}

func (f *fakeKaizenStore) ListByInitiator(_ string) ([]dbmodels.KaizenRequest, error) {
	return nil, nil
}

func (f *fakeKaizenStore) ListAll(_ kaizenapimodels.KaizenFilter) ([]dbmodels.KaizenRequest, error) {
	return nil, nil
}

type fakeLedger struct {
	managers    []dbmodels.ManagerApproval
	hods        []dbmodels.HodApproval
	agm         *dbmodels.AgmApproval
	gm          *dbmodels.GmApproval
	evaluations []dbmodels.DepartmentEvaluation
}

func (f *fakeLedger) UpsertManagerApproval(rec dbmodels.ManagerApproval) error {
	for idx, item := range f.managers {
		if item.KaizenRequestID == rec.KaizenRequestID &&
			item.DepartmentID == rec.DepartmentID &&
			item.StageType == rec.StageType {
			f.managers[idx] = rec
			return nil
		}
	}
	f.managers = append(f.managers, rec)
	return nil
}

func (f *fakeLedger) UpsertHodApproval(rec dbmodels.HodApproval) error {
	for idx, item := range f.hods {
		if item.KaizenRequestID == rec.KaizenRequestID &&
			item.DepartmentID == rec.DepartmentID &&
			item.StageType == rec.StageType {
			f.hods[idx] = rec
			return nil
		}
	}
	f.hods = append(f.hods, rec)
	return nil
}

func (f *fakeLedger) CountManagerDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (int64, error) {
	var count int64
	for _, item := range f.managers {
		if item.KaizenRequestID == kaizenRequestID && item.StageType == stageType && item.Decision == decision {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) CountHodDecisions(kaizenRequestID string, stageType models.StageType, decision models.Decision) (int64, error) {
	var count int64
	for _, item := range f.hods {
		if item.KaizenRequestID == kaizenRequestID && item.StageType == stageType && item.Decision == decision {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) ListManagerApprovals(kaizenRequestID string) ([]dbmodels.ManagerApproval, error) {
	list := []dbmodels.ManagerApproval{}
	for _, item := range f.managers {
		if item.KaizenRequestID == kaizenRequestID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (f *fakeLedger) ListHodApprovals(kaizenRequestID string) ([]dbmodels.HodApproval, error) {
	list := []dbmodels.HodApproval{}
	for _, item := range f.hods {
		if item.KaizenRequestID == kaizenRequestID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (f *fakeLedger) GetAgmApproval(kaizenRequestID string) (*dbmodels.AgmApproval, error) {
	if f.agm != nil && f.agm.KaizenRequestID == kaizenRequestID {
		clone := *f.agm
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeLedger) CreateAgmApproval(rec dbmodels.AgmApproval) error {
	f.agm = &rec
	return nil
}

func (f *fakeLedger) GetGmApproval(kaizenRequestID string) (*dbmodels.GmApproval, error) {
	if f.gm != nil && f.gm.KaizenRequestID == kaizenRequestID {
		clone := *f.gm
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeLedger) CreateGmApproval(rec dbmodels.GmApproval) error {
	f.gm = &rec
	return nil
}

func (f *fakeLedger) UpsertEvaluation(rec dbmodels.DepartmentEvaluation) error {
	for idx, item := range f.evaluations {
		if item.KaizenRequestID == rec.KaizenRequestID &&
			item.DepartmentID == rec.DepartmentID &&
			item.EvaluatorRole == rec.EvaluatorRole {
			f.evaluations[idx] = rec
			return nil
		}
	}
	f.evaluations = append(f.evaluations, rec)
	return nil
}

func (f *fakeLedger) ListEvaluations(kaizenRequestID string) ([]dbmodels.DepartmentEvaluation, error) {
	list := []dbmodels.DepartmentEvaluation{}
	for _, item := range f.evaluations {
		if item.KaizenRequestID == kaizenRequestID {
			list = append(list, item)
		}
	}
	return list, nil
}

type fakeDepartmentStore struct {
	list []dbmodels.Department
}

func (f *fakeDepartmentStore) Create(rec dbmodels.Department) (string, error) {
	f.list = append(f.list, rec)
	return rec.ID, nil
}

func (f *fakeDepartmentStore) CreateQuestion(_ dbmodels.EvaluationQuestion) error {
	return nil
}

func (f *fakeDepartmentStore) GetByID(id string) (*dbmodels.Department, error) {
	for _, item := range f.list {
		if item.ID == id {
			clone := item
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeDepartmentStore) List() ([]dbmodels.Department, error) {
	return f.list, nil
}

func (f *fakeDepartmentStore) ListOther(excludeID string) ([]dbmodels.Department, error) {
	list := []dbmodels.Department{}
	for _, item := range f.list {
		if item.ID != excludeID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (f *fakeDepartmentStore) CountOther(excludeID string) (int64, error) {
	list, _ := f.ListOther(excludeID)
	return int64(len(list)), nil
}

func (f *fakeDepartmentStore) ListQuestions(_ string) ([]dbmodels.EvaluationQuestion, error) {
	return nil, nil
}

type fakeAudit struct {
	actions []models.AuditAction
}

func (f *fakeAudit) Record(_ *gorm.DB, _ string, _ models.Actor, action models.AuditAction, _ map[string]any) {
	f.actions = append(f.actions, action)
}

func (f *fakeAudit) List(_ string, _ auditapimodels.AuditFilter) ([]auditapimodels.AuditView, int64, error) {
	return nil, 0, nil
}

type fakeNotifier struct {
	notified []string
}

func (f *fakeNotifier) StatusChanged(kaizenRequestID string) {
	f.notified = append(f.notified, kaizenRequestID)
}

type testEnv struct {
	kaizen      *fakeKaizenStore
	ledger      *fakeLedger
	departments *fakeDepartmentStore
	audit       *fakeAudit
	notifier    *fakeNotifier
	handler     impl
}

func newTestEnv() *testEnv {
	env := &testEnv{
		kaizen:      &fakeKaizenStore{recs: map[string]*dbmodels.KaizenRequest{}},
		ledger:      &fakeLedger{},
		departments: &fakeDepartmentStore{},
		audit:       &fakeAudit{},
		notifier:    &fakeNotifier{},
	}
	env.handler = impl{
		runTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		stores: func(tx *gorm.DB) txStores {
			return txStores{
				kaizen:      env.kaizen,
				ledger:      env.ledger,
				departments: env.departments,
			}
		},
		auditHandler: env.audit,
		notifier:     env.notifier,
		policy: escalation.Policy{
			AgmCostThreshold: 50000,
			GmCostThreshold:  100000,
		},
	}
	env.departments.list = []dbmodels.Department{
		{BaseModel: dbmodels.BaseModel{ID: "dep-1"}, Name: "assembly", DisplayName: "Сборка"},
		{BaseModel: dbmodels.BaseModel{ID: "dep-2"}, Name: "quality", DisplayName: "Качество"},
		{BaseModel: dbmodels.BaseModel{ID: "dep-3"}, Name: "logistics", DisplayName: "Логистика"},
	}
	return env
}

const testRecID = "rec-1"

func (e *testEnv) seedRequest(status models.KaizenStatus, cost float64) *dbmodels.KaizenRequest {
	stage, _ := status.StageFor()
	rec := &dbmodels.KaizenRequest{
		BaseModel:        dbmodels.BaseModel{ID: testRecID},
		RequestID:        "KZ-2026-001",
		Title:            "Защита от перекоса клеммы",
		StationName:      "ST-14",
		IssueDescription: "Клемма встает с перекосом",
		Program:          "X90",
		DepartmentID:     "dep-1",
		InitiatorID:      "user-init",
		CostEstimate:     cost,
		Status:           status,
		CurrentStage:     stage,
	}
	e.kaizen.recs[testRecID] = rec
	return rec
}

func manager(departmentID string) models.Actor {
	return models.Actor{UserID: "mgr-" + departmentID, Role: models.RoleManager, DepartmentID: departmentID}
}

func hod(departmentID string) models.Actor {
	return models.Actor{UserID: "hod-" + departmentID, Role: models.RoleHod, DepartmentID: departmentID}
}

func agmActor() models.Actor {
	return models.Actor{UserID: "agm-1", Role: models.RoleAgm}
}

func gmActor() models.Actor {
	return models.Actor{UserID: "gm-1", Role: models.RoleGm}
}

func approve() approvalapimodels.DecisionData {
	return approvalapimodels.DecisionData{Decision: models.DecisionApproved}
}

func singleDecision(approved bool) approvalapimodels.SingleDecisionData {
	return approvalapimodels.SingleDecisionData{Approved: &approved}
}

func TestApprovalChainLowCost(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingOwnManager, 10000)

	view, err := env.handler.OwnManagerDecision(testRecID, manager("dep-1"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingOwnHod, view.Status)
	require.Equal(t, models.StageOwnHod, view.CurrentStage)

	view, err = env.handler.OwnHodDecision(testRecID, hod("dep-1"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossManager, view.Status)

	// первое из двух смежных подразделений - заявка стоит на месте
	view, err = env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossManager, view.Status)

	view, err = env.handler.CrossManagerDecision(testRecID, manager("dep-3"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossHod, view.Status)

	view, err = env.handler.CrossHodDecision(testRecID, hod("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossHod, view.Status)

	view, err = env.handler.CrossHodDecision(testRecID, hod("dep-3"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusApproved, view.Status)
	require.Equal(t, models.StageCompleted, view.CurrentStage)

	// уведомления только на переходах, не на промежуточных голосах
	require.Len(t, env.notifier.notified, 4)
	require.Equal(t, []models.AuditAction{
		models.AuditOwnManagerApproved,
		models.AuditOwnHodApproved,
		models.AuditCrossManagerApproved,
		models.AuditCrossManagerApproved,
		models.AuditCrossHodApproved,
		models.AuditCrossHodApproved,
	}, env.audit.actions)
}

func TestApprovalChainEscalation(t *testing.T) {
	t.Run(`стоимость выше порога AGM`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingCrossHod, 60000)

		_, err := env.handler.CrossHodDecision(testRecID, hod("dep-2"), approve())
		require.Nil(t, err)
		view, err := env.handler.CrossHodDecision(testRecID, hod("dep-3"), approve())
		require.Nil(t, err)
		require.Equal(t, models.StatusPendingAgm, view.Status)
		require.Equal(t, models.StageAgm, view.CurrentStage)

		view, err = env.handler.AgmDecision(testRecID, agmActor(), singleDecision(true))
		require.Nil(t, err)
		require.Equal(t, models.StatusApproved, view.Status)
	})
	t.Run(`стоимость выше порога GM`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingAgm, 150000)

		view, err := env.handler.AgmDecision(testRecID, agmActor(), singleDecision(true))
		require.Nil(t, err)
		require.Equal(t, models.StatusPendingGm, view.Status)

		view, err = env.handler.GmDecision(testRecID, gmActor(), singleDecision(true))
		require.Nil(t, err)
		require.Equal(t, models.StatusApproved, view.Status)
		require.Equal(t, models.StageCompleted, view.CurrentStage)
	})
	t.Run(`добавление процесса эскалирует при нулевой стоимости`, func(t *testing.T) {
		env := newTestEnv()
		rec := env.seedRequest(models.StatusPendingCrossHod, 0)
		rec.RequiresProcessAddition = true

		_, err := env.handler.CrossHodDecision(testRecID, hod("dep-2"), approve())
		require.Nil(t, err)
		view, err := env.handler.CrossHodDecision(testRecID, hod("dep-3"), approve())
		require.Nil(t, err)
		require.Equal(t, models.StatusPendingAgm, view.Status)
	})
	t.Run(`стоимость на пороге не эскалирует`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingCrossHod, 50000)

		_, err := env.handler.CrossHodDecision(testRecID, hod("dep-2"), approve())
		require.Nil(t, err)
		view, err := env.handler.CrossHodDecision(testRecID, hod("dep-3"), approve())
		require.Nil(t, err)
		require.Equal(t, models.StatusApproved, view.Status)
	})
}

func TestRejection(t *testing.T) {
	t.Run(`отклонение руководителем терминально`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingOwnHod, 10000)

		view, err := env.handler.OwnHodDecision(testRecID, hod("dep-1"), approvalapimodels.DecisionData{
			Decision: models.DecisionRejected,
			Remarks:  "не окупается",
		})
		require.Nil(t, err)
		require.Equal(t, models.StatusRejected, view.Status)
		require.Equal(t, "не окупается", view.RejectionReason)
		require.Equal(t, "Сборка", view.RejectedByDepartment)
		// этап фиксирует, где заявка была отклонена
		require.Equal(t, models.StageOwnHod, view.CurrentStage)
		require.Contains(t, env.audit.actions, models.AuditOwnHodRejected)

		// после отклонения решения не принимаются
		_, err = env.handler.OwnHodDecision(testRecID, hod("dep-1"), approve())
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
	t.Run(`отклонение AGM без подразделения`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingAgm, 60000)

		view, err := env.handler.AgmDecision(testRecID, agmActor(), approvalapimodels.SingleDecisionData{
			Approved: boolPtr(false),
			Comments: "нет бюджета",
		})
		require.Nil(t, err)
		require.Equal(t, models.StatusRejected, view.Status)
		require.Equal(t, "нет бюджета", view.RejectionReason)
		require.Empty(t, view.RejectedByDepartment)
		require.Equal(t, models.StageAgm, view.CurrentStage)
	})
}

func TestDecisionAuthorization(t *testing.T) {
	t.Run(`чужая роль`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingOwnManager, 10000)
		_, err := env.handler.OwnManagerDecision(testRecID, hod("dep-1"), approve())
		require.ErrorIs(t, err, models.ErrUnauthorized)
		_, err = env.handler.AgmDecision(testRecID, manager("dep-1"), singleDecision(true))
		require.ErrorIs(t, err, models.ErrUnauthorized)
	})
	t.Run(`менеджер без подразделения`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingOwnManager, 10000)
		_, err := env.handler.OwnManagerDecision(testRecID, models.Actor{UserID: "mgr-x", Role: models.RoleManager}, approve())
		require.ErrorIs(t, err, models.ErrUnauthorized)
	})
	t.Run(`чужое подразделение на собственном этапе`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingOwnManager, 10000)
		_, err := env.handler.OwnManagerDecision(testRecID, manager("dep-2"), approve())
		require.ErrorIs(t, err, models.ErrUnauthorized)
	})
	t.Run(`свое подразделение на кросс-этапе`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingCrossManager, 10000)
		_, err := env.handler.CrossManagerDecision(testRecID, manager("dep-1"), approve())
		require.ErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestDecisionWrongStage(t *testing.T) {
	t.Run(`заявка не существует`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.OwnManagerDecision("missing", manager("dep-1"), approve())
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
	t.Run(`решение не на своем этапе`, func(t *testing.T) {
		env := newTestEnv()
		env.seedRequest(models.StatusPendingOwnManager, 10000)
		_, err := env.handler.OwnHodDecision(testRecID, hod("dep-1"), approve())
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
		_, err = env.handler.GmDecision(testRecID, gmActor(), singleDecision(true))
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
}

func TestDecisionValidation(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingOwnManager, 10000)

	t.Run(`недопустимое решение`, func(t *testing.T) {
		_, err := env.handler.OwnManagerDecision(testRecID, manager("dep-1"), approvalapimodels.DecisionData{
			Decision: models.Decision("MAYBE"),
		})
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`недопустимый уровень риска в анкете`, func(t *testing.T) {
		_, err := env.handler.OwnManagerDecision(testRecID, manager("dep-1"), approvalapimodels.DecisionData{
			Decision: models.DecisionApproved,
			Answers:  []approvalapimodels.AnswerData{{QuestionKey: "q1", RiskLevel: "EXTREME"}},
		})
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`не указано решение AGM`, func(t *testing.T) {
		_, err := env.handler.AgmDecision(testRecID, agmActor(), approvalapimodels.SingleDecisionData{})
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
}

func TestCrossStageRevote(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingCrossManager, 10000)

	view, err := env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossManager, view.Status)

	// повторный голос того же подразделения перезаписывает запись, а не добавляет
	view, err = env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossManager, view.Status)
	list, err := env.ledger.ListManagerApprovals(testRecID)
	require.Nil(t, err)
	require.Len(t, list, 1)

	view, err = env.handler.CrossManagerDecision(testRecID, manager("dep-3"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossHod, view.Status)
}

func TestCrossStageRejection(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingCrossManager, 10000)

	view, err := env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossManager, view.Status)

	// отказ одного смежного подразделения терминален, остальных не ждем
	view, err = env.handler.CrossManagerDecision(testRecID, manager("dep-3"), approvalapimodels.DecisionData{
		Decision: models.DecisionRejected,
		Remarks:  "мешает текущему процессу",
	})
	require.Nil(t, err)
	require.Equal(t, models.StatusRejected, view.Status)
	require.Equal(t, "мешает текущему процессу", view.RejectionReason)
	require.Equal(t, "Логистика", view.RejectedByDepartment)
	require.Equal(t, models.StageCrossManager, view.CurrentStage)

	// ранние одобрения остаются в реестре как есть
	list, err := env.ledger.ListManagerApprovals(testRecID)
	require.Nil(t, err)
	require.Len(t, list, 2)
	decisions := map[string]models.Decision{}
	for _, item := range list {
		decisions[item.DepartmentID] = item.Decision
	}
	require.Equal(t, models.DecisionApproved, decisions["dep-2"])
	require.Equal(t, models.DecisionRejected, decisions["dep-3"])

	_, err = env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
}

func TestCrossStageVoteFlip(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingCrossHod, 10000)

	view, err := env.handler.CrossHodDecision(testRecID, hod("dep-2"), approve())
	require.Nil(t, err)
	require.Equal(t, models.StatusPendingCrossHod, view.Status)

	// смена одобрения на отказ до закрытия этапа перезаписывает голос и отклоняет заявку
	view, err = env.handler.CrossHodDecision(testRecID, hod("dep-2"), approvalapimodels.DecisionData{
		Decision: models.DecisionRejected,
		Remarks:  "появились замечания",
	})
	require.Nil(t, err)
	require.Equal(t, models.StatusRejected, view.Status)
	require.Equal(t, "Качество", view.RejectedByDepartment)

	list, err := env.ledger.ListHodApprovals(testRecID)
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.DecisionRejected, list[0].Decision)
}

func TestAgmDecisionConflict(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingAgm, 60000)
	env.ledger.agm = &dbmodels.AgmApproval{
		KaizenRequestID: testRecID,
		AgmID:           "agm-0",
		Approved:        true,
	}

	_, err := env.handler.AgmDecision(testRecID, agmActor(), singleDecision(true))
	require.ErrorIs(t, err, models.ErrConcurrencyConflict)
}

func TestEvaluationStored(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingCrossManager, 10000)

	_, err := env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approvalapimodels.DecisionData{
		Decision: models.DecisionApproved,
		Answers: []approvalapimodels.AnswerData{
			{QuestionKey: "q1", Answer: "влияет на цикл", RiskLevel: models.RiskMedium},
			{QuestionKey: "q2", Answer: "нужна переналадка", RiskLevel: models.RiskMedium},
		},
	})
	require.Nil(t, err)
	require.Len(t, env.ledger.evaluations, 1)
	require.Equal(t, models.RiskMedium, env.ledger.evaluations[0].OverallRisk)
	require.Equal(t, models.EvaluatorManager, env.ledger.evaluations[0].EvaluatorRole)

	// повторное решение заменяет анкету и пересчитывает итоговый риск
	_, err = env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approvalapimodels.DecisionData{
		Decision: models.DecisionApproved,
		Answers: []approvalapimodels.AnswerData{
			{QuestionKey: "q1", Answer: "не влияет", RiskLevel: models.RiskLow},
		},
	})
	require.Nil(t, err)
	require.Len(t, env.ledger.evaluations, 1)
	require.Equal(t, models.RiskLow, env.ledger.evaluations[0].OverallRisk)
}

func TestTrail(t *testing.T) {
	env := newTestEnv()
	env.seedRequest(models.StatusPendingOwnManager, 10000)

	_, err := env.handler.OwnManagerDecision(testRecID, manager("dep-1"), approve())
	require.Nil(t, err)
	_, err = env.handler.OwnHodDecision(testRecID, hod("dep-1"), approve())
	require.Nil(t, err)
	_, err = env.handler.CrossManagerDecision(testRecID, manager("dep-2"), approve())
	require.Nil(t, err)

	t.Run(`история видна участникам`, func(t *testing.T) {
		view, err := env.handler.Trail(testRecID, manager("dep-2"))
		require.Nil(t, err)
		require.Len(t, view.ManagerApprovals, 2)
		require.Len(t, view.HodApprovals, 1)
		require.Nil(t, view.AgmApproval)
		require.Nil(t, view.GmApproval)
	})
	t.Run(`инициатор видит только свои заявки`, func(t *testing.T) {
		_, err := env.handler.Trail(testRecID, models.Actor{UserID: "user-init", Role: models.RoleInitiator})
		require.Nil(t, err)
		_, err = env.handler.Trail(testRecID, models.Actor{UserID: "user-other", Role: models.RoleInitiator})
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
}

func TestMapConflictErr(t *testing.T) {
	t.Run(`nil проходит насквозь`, func(t *testing.T) {
		require.Nil(t, mapConflictErr(nil))
	})
	t.Run(`нарушение уникальности - конфликт`, func(t *testing.T) {
		err := errors.Wrap(&pgconn.PgError{Code: "23505", Message: "duplicate key"}, "ошибка сохранения")
		require.ErrorIs(t, mapConflictErr(err), models.ErrConcurrencyConflict)
	})
	t.Run(`serialization failure - конфликт`, func(t *testing.T) {
		err := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
		require.ErrorIs(t, mapConflictErr(err), models.ErrConcurrencyConflict)
	})
	t.Run(`прочие ошибки БД не маскируются`, func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503", Message: "foreign key violation"}
		require.Equal(t, err, mapConflictErr(err))
		require.False(t, errors.Is(mapConflictErr(err), models.ErrConcurrencyConflict))
	})
}

func boolPtr(v bool) *bool {
	return &v
}
