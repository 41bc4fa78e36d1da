package store

import (
	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) error
	Count() (int64, error)
	GetByID(id string) (*dbmodels.User, error)
	FindByEmail(email string) (*dbmodels.User, error)
	ListByRole(role models.UserRole) ([]dbmodels.User, error)
	ListByDepartmentAndRole(departmentID string, role models.UserRole) ([]dbmodels.User, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) error {
	err := rec.Validate()
	if err != nil {
		return err
	}
	return i.db.
		Save(&rec).
		Error
}

func (i impl) Count() (count int64, err error) {
	err = i.db.
		Model(dbmodels.User{}).
		Count(&count).
		Error
	return count, err
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Preload("Department").
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

func (i impl) FindByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Preload("Department").
		Where("email = ?", email).
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

func (i impl) ListByRole(role models.UserRole) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Where("role = ?", role).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByDepartmentAndRole(departmentID string, role models.UserRole) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Where("role = ?", role).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
