package store

import (
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Department) (id string, err error)
	CreateQuestion(rec dbmodels.EvaluationQuestion) error
	GetByID(id string) (rec *dbmodels.Department, err error)
	List() (list []dbmodels.Department, err error)
	// ListOther возвращает все подразделения, кроме указанного
	ListOther(excludeID string) (list []dbmodels.Department, err error)
	CountOther(excludeID string) (count int64, err error)
	ListQuestions(departmentID string) (list []dbmodels.EvaluationQuestion, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Department) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.isUnique(rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateQuestion(rec dbmodels.EvaluationQuestion) error {
	if rec.DepartmentID == "" {
		return errors.New("отсутствует ссылка на подразделение")
	}
	if rec.Key == "" || rec.Text == "" {
		return errors.New("не заполнен вопрос анкеты")
	}
	return i.db.
		Save(&rec).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{}
	err := i.db.
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

func (i impl) List() (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListOther(excludeID string) (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.
		Where("id <> ?", excludeID).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountOther(excludeID string) (count int64, err error) {
	err = i.db.
		Model(dbmodels.Department{}).
		Where("id <> ?", excludeID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListQuestions(departmentID string) (list []dbmodels.EvaluationQuestion, err error) {
	list = []dbmodels.EvaluationQuestion{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Order("\"order\"").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) isUnique(name string) error {
	var rowCount int64
	err := i.db.
		Model(dbmodels.Department{}).
		Where("name = ?", name).
		Count(&rowCount).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности подразделения")
	}
	if rowCount != 0 {
		return errors.New("подразделение уже существует")
	}
	return nil
}
