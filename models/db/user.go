package dbmodels

import (
	"fmt"
	"kaizen-tools-backend/models"

	"github.com/pkg/errors"
)

type User struct {
	BaseModel
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	Password     string          `gorm:"type:varchar(128)"`
	FirstName    string          `gorm:"type:varchar(100)"`
	LastName     string          `gorm:"type:varchar(100)"`
	Role         models.UserRole `gorm:"type:varchar(20);index"`
	DepartmentID *string         `gorm:"type:varchar(36);index"`
	Department   *Department
}

func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("не указана почта пользователя")
	}
	if !u.Role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", u.Role)
	}
	return nil
}
