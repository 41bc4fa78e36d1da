package kaizenreqhandler

import (
	"testing"

	"kaizen-tools-backend/models"
	kaizenapimodels "kaizen-tools-backend/models/api/kaizen"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeKaizenStore struct {
	recs []dbmodels.KaizenRequest
}

func (f *fakeKaizenStore) Create(rec dbmodels.KaizenRequest) (string, error) {
	f.recs = append(f.recs, rec)
	return rec.ID, nil
}

func (f *fakeKaizenStore) GetByID(id string) (*dbmodels.KaizenRequest, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			clone := rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeKaizenStore) GetByRequestID(requestID string) (*dbmodels.KaizenRequest, error) {
	for _, rec := range f.recs {
		if rec.RequestID == requestID {
			clone := rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeKaizenStore) GetForUpdate(id string) (*dbmodels.KaizenRequest, error) {
	return f.GetByID(id)
}

func (f *fakeKaizenStore) Update(_ string, _ map[string]interface{}) error {
	return nil
}

func (f *fakeKaizenStore) List(_ models.Actor, _ kaizenapimodels.KaizenFilter) ([]dbmodels.KaizenRequest, error) {
	return f.recs, nil
}

func (f *fakeKaizenStore) ListCount(_ models.Actor, _ kaizenapimodels.KaizenFilter) (int64, error) {
	return int64(len(f.recs)), nil
}

func (f *fakeKaizenStore) ListPending(_ models.Actor) ([]dbmodels.KaizenRequest, error) {
	return f.recs, nil
}

func (f *fakeKaizenStore) ListByInitiator(initiatorID string) ([]dbmodels.KaizenRequest, error) {
	list := []dbmodels.KaizenRequest{}
	for _, rec := range f.recs {
		if rec.InitiatorID == initiatorID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeKaizenStore) ListAll(_ kaizenapimodels.KaizenFilter) ([]dbmodels.KaizenRequest, error) {
	return f.recs, nil
}

type fakeDepartmentStore struct {
	recs []dbmodels.Department
}

func (f *fakeDepartmentStore) Create(rec dbmodels.Department) (string, error) {
	f.recs = append(f.recs, rec)
	return rec.ID, nil
}

func (f *fakeDepartmentStore) CreateQuestion(_ dbmodels.EvaluationQuestion) error {
	return nil
}

func (f *fakeDepartmentStore) GetByID(id string) (*dbmodels.Department, error) {
	for _, rec := range f.recs {
		if rec.ID == id {
			clone := rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeDepartmentStore) List() ([]dbmodels.Department, error) {
	return f.recs, nil
}

func (f *fakeDepartmentStore) ListOther(excludeID string) ([]dbmodels.Department, error) {
	list := []dbmodels.Department{}
	for _, rec := range f.recs {
		if rec.ID != excludeID {
			list = append(list, rec)
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

func validData() kaizenapimodels.KaizenRequestData {
	return kaizenapimodels.KaizenRequestData{
		Title:             "Защита от перекоса клеммы",
		StationName:       "ST-14",
		IssueDescription:  "Клемма встает с перекосом",
		Program:           "X90",
		DateOfOrigination: "2026-03-12",
		CostEstimate:      12000,
	}
}

func TestCreateValidation(t *testing.T) {
	handler := impl{
		departmentStore: &fakeDepartmentStore{recs: []dbmodels.Department{
			{BaseModel: dbmodels.BaseModel{ID: "dep-1"}, Name: "assembly", DisplayName: "Сборка"},
		}},
	}
	initiator := models.Actor{UserID: "user-1", Role: models.RoleInitiator, DepartmentID: "dep-1"}

	t.Run(`пустое название`, func(t *testing.T) {
		data := validData()
		data.Title = ""
		_, err := handler.Create(initiator, data)
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`отрицательная стоимость`, func(t *testing.T) {
		data := validData()
		data.CostEstimate = -1
		_, err := handler.Create(initiator, data)
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`некорректная дата`, func(t *testing.T) {
		data := validData()
		data.DateOfOrigination = "12.03.2026"
		_, err := handler.Create(initiator, data)
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`инициатор без подразделения`, func(t *testing.T) {
		_, err := handler.Create(models.Actor{UserID: "user-1", Role: models.RoleInitiator}, validData())
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
	t.Run(`несуществующее подразделение`, func(t *testing.T) {
		actor := initiator
		actor.DepartmentID = "dep-missing"
		_, err := handler.Create(actor, validData())
		require.ErrorIs(t, err, models.ErrValidationFailed)
	})
}

func TestGetByIDVisibility(t *testing.T) {
	handler := impl{
		store: &fakeKaizenStore{recs: []dbmodels.KaizenRequest{
			{
				BaseModel:   dbmodels.BaseModel{ID: "rec-1"},
				RequestID:   "KZ-2026-001",
				Title:       "Защита от перекоса клеммы",
				InitiatorID: "user-1",
				Status:      models.StatusPendingOwnManager,
			},
		}},
	}

	t.Run(`инициатор видит свою заявку`, func(t *testing.T) {
		view, err := handler.GetByID("rec-1", models.Actor{UserID: "user-1", Role: models.RoleInitiator})
		require.Nil(t, err)
		require.Equal(t, "KZ-2026-001", view.RequestID)
		require.Equal(t, models.StatusPendingOwnManager, view.Status)
	})
	t.Run(`чужая заявка скрыта от инициатора`, func(t *testing.T) {
		_, err := handler.GetByID("rec-1", models.Actor{UserID: "user-2", Role: models.RoleInitiator})
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
	t.Run(`согласующий видит любую заявку`, func(t *testing.T) {
		_, err := handler.GetByID("rec-1", models.Actor{UserID: "mgr-1", Role: models.RoleManager, DepartmentID: "dep-2"})
		require.Nil(t, err)
	})
	t.Run(`несуществующая заявка`, func(t *testing.T) {
		_, err := handler.GetByID("missing", models.Actor{UserID: "user-1", Role: models.RoleInitiator})
		require.ErrorIs(t, err, models.ErrNotFoundOrWrongStage)
	})
	t.Run(`поиск по бизнес-номеру`, func(t *testing.T) {
		view, err := handler.GetByRequestID("KZ-2026-001", models.Actor{UserID: "user-1", Role: models.RoleInitiator})
		require.Nil(t, err)
		require.Equal(t, "rec-1", view.ID)
	})
}

func TestMyRequests(t *testing.T) {
	handler := impl{
		store: &fakeKaizenStore{recs: []dbmodels.KaizenRequest{
			{BaseModel: dbmodels.BaseModel{ID: "rec-1"}, InitiatorID: "user-1", Status: models.StatusDraft},
			{BaseModel: dbmodels.BaseModel{ID: "rec-2"}, InitiatorID: "user-2", Status: models.StatusDraft},
		}},
	}
	list, err := handler.MyRequests(models.Actor{UserID: "user-1", Role: models.RoleInitiator})
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "rec-1", list[0].ID)
}

func TestList(t *testing.T) {
	handler := impl{
		store: &fakeKaizenStore{recs: []dbmodels.KaizenRequest{
			{BaseModel: dbmodels.BaseModel{ID: "rec-1"}, InitiatorID: "user-1", Status: models.StatusApproved},
		}},
	}
	list, rowCount, err := handler.List(models.Actor{UserID: "adm-1", Role: models.RoleAdmin}, kaizenapimodels.KaizenFilter{})
	require.Nil(t, err)
	require.Equal(t, int64(1), rowCount)
	require.Len(t, list, 1)
	require.Equal(t, models.StatusApproved.ToHuman(), list[0].StatusName)
}
