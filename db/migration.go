package db

import (
	dbmodels "kaizen-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.EvaluationQuestion{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EvaluationQuestion")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.KaizenRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры KaizenRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.ManagerApproval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ManagerApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.HodApproval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры HodApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.AgmApproval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AgmApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.GmApproval{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры GmApproval")
	}
	if err := DB.AutoMigrate(&dbmodels.DepartmentEvaluation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры DepartmentEvaluation")
	}
	if err := DB.AutoMigrate(&dbmodels.AuditLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AuditLog")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
