package notifyhandler

import (
	"fmt"

	"kaizen-tools-backend/db"
	kaizenstore "kaizen-tools-backend/lib/kaizen-req/store"
	"kaizen-tools-backend/lib/smtp"
	usersstore "kaizen-tools-backend/lib/users/store"
	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Provider рассылает почтовые уведомления об изменениях статуса заявки.
// Отправка выполняется в фоне после фиксации транзакции и не влияет
// на результат перехода.
type Provider interface {
	StatusChanged(kaizenRequestID string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		kaizenStore: kaizenstore.NewInstance(db.DB),
		usersStore:  usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	kaizenStore kaizenstore.Provider
	usersStore  usersstore.Provider
}

func (i impl) StatusChanged(kaizenRequestID string) {
	go i.notify(kaizenRequestID)
}

func (i impl) notify(kaizenRequestID string) {
	logger := log.WithField("rec_id", kaizenRequestID)
	rec, err := i.kaizenStore.GetByID(kaizenRequestID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заявки для уведомления")
		return
	}
	if rec == nil {
		return
	}
	recipients, subject, message, err := i.buildNotification(*rec)
	if err != nil {
		logger.WithError(err).Error("ошибка подготовки уведомления")
		return
	}
	for _, user := range recipients {
		if user.Email == "" {
			continue
		}
		err = smtp.Instance.SendEMail(user.Email, message, subject)
		if err != nil {
			logger.WithError(err).WithField("to", user.Email).Error("ошибка отправки уведомления")
		}
	}
}

func (i impl) buildNotification(rec dbmodels.KaizenRequest) (recipients []dbmodels.User, subject, message string, err error) {
	switch rec.Status {
	case models.StatusPendingOwnManager:
		recipients, err = i.usersStore.ListByDepartmentAndRole(rec.DepartmentID, models.RoleManager)
		subject = fmt.Sprintf("Заявка %s ожидает вашего решения", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) подана на согласование и ожидает решения менеджера подразделения.", rec.Title, rec.RequestID)
	case models.StatusPendingOwnHod:
		recipients, err = i.usersStore.ListByDepartmentAndRole(rec.DepartmentID, models.RoleHod)
		subject = fmt.Sprintf("Заявка %s ожидает вашего решения", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) согласована менеджером и ожидает решения руководителя подразделения.", rec.Title, rec.RequestID)
	case models.StatusPendingCrossManager:
		recipients, err = i.otherDepartments(rec.DepartmentID, models.RoleManager)
		subject = fmt.Sprintf("Заявка %s на кросс-согласовании", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) ожидает решения менеджеров смежных подразделений.", rec.Title, rec.RequestID)
	case models.StatusPendingCrossHod:
		recipients, err = i.otherDepartments(rec.DepartmentID, models.RoleHod)
		subject = fmt.Sprintf("Заявка %s на кросс-согласовании", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) ожидает решения руководителей смежных подразделений.", rec.Title, rec.RequestID)
	case models.StatusPendingAgm:
		recipients, err = i.usersStore.ListByRole(models.RoleAgm)
		subject = fmt.Sprintf("Заявка %s ожидает вашего решения", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) прошла кросс-согласование и требует решения заместителя генерального директора. Оценка стоимости: %.2f %s.", rec.Title, rec.RequestID, rec.CostEstimate, rec.CostCurrency)
	case models.StatusPendingGm:
		recipients, err = i.usersStore.ListByRole(models.RoleGm)
		subject = fmt.Sprintf("Заявка %s ожидает вашего решения", rec.RequestID)
		message = fmt.Sprintf("Заявка %q (%s) требует решения генерального директора. Оценка стоимости: %.2f %s.", rec.Title, rec.RequestID, rec.CostEstimate, rec.CostCurrency)
	case models.StatusApproved:
		recipients, err = i.initiator(rec)
		subject = fmt.Sprintf("Заявка %s согласована", rec.RequestID)
		message = fmt.Sprintf("Ваша заявка %q (%s) полностью согласована.", rec.Title, rec.RequestID)
	case models.StatusRejected:
		recipients, err = i.initiator(rec)
		subject = fmt.Sprintf("Заявка %s отклонена", rec.RequestID)
		message = fmt.Sprintf("Ваша заявка %q (%s) отклонена. Причина: %s", rec.Title, rec.RequestID, rec.RejectionReason)
	}
	return recipients, subject, message, err
}

func (i impl) otherDepartments(departmentID string, role models.UserRole) ([]dbmodels.User, error) {
	list, err := i.usersStore.ListByRole(role)
	if err != nil {
		return nil, err
	}
	recipients := make([]dbmodels.User, 0, len(list))
	for _, user := range list {
		if user.DepartmentID == nil || *user.DepartmentID == departmentID {
			continue
		}
		recipients = append(recipients, user)
	}
	return recipients, nil
}

func (i impl) initiator(rec dbmodels.KaizenRequest) ([]dbmodels.User, error) {
	user, err := i.usersStore.GetByID(rec.InitiatorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return []dbmodels.User{*user}, nil
}
