package departmentprovider

import (
	"kaizen-tools-backend/db"
	"kaizen-tools-backend/lib/dicts/department/store"
	initchecker "kaizen-tools-backend/lib/utils/init-checker"
	dictapimodels "kaizen-tools-backend/models/api/dict"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List() (list []dictapimodels.DepartmentView, err error)
	Get(id string) (item dictapimodels.DepartmentView, err error)
	ListQuestions(departmentID string) (list []dictapimodels.EvaluationQuestionView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка подразделений")
		return nil, err
	}
	list = make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.DepartmentConvert(rec))
	}
	return list, nil
}

func (i impl) Get(id string) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.
			WithError(err).
			WithField("rec_id", id).
			Error("ошибка получения подразделения")
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.New("подразделение не найдено")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) ListQuestions(departmentID string) (list []dictapimodels.EvaluationQuestionView, err error) {
	rec, err := i.store.GetByID(departmentID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("подразделение не найдено")
	}
	recList, err := i.store.ListQuestions(departmentID)
	if err != nil {
		log.
			WithError(err).
			WithField("rec_id", departmentID).
			Error("ошибка получения вопросов анкеты")
		return nil, err
	}
	list = make([]dictapimodels.EvaluationQuestionView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.EvaluationQuestionConvert(rec))
	}
	return list, nil
}
