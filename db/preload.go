package db

import (
	departmentstore "kaizen-tools-backend/lib/dicts/department/store"
	userstore "kaizen-tools-backend/lib/users/store"
	authhelpers "kaizen-tools-backend/lib/utils/auth-helpers"
	"kaizen-tools-backend/models"
	dbmodels "kaizen-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	fillDepartments()
	fillUsers()
}

type questionData struct {
	key  string
	text string
}

var departmentsData = []dbmodels.Department{
	{Name: "MAINTENANCE", DisplayName: "Maintenance"},
	{Name: "PRODUCTION", DisplayName: "Production"},
	{Name: "ASSEMBLY", DisplayName: "Assembly"},
	{Name: "ADMIN", DisplayName: "Admin"},
	{Name: "ACCOUNTS", DisplayName: "Accounts"},
}

var evaluationQuestions = map[string][]questionData{
	"MAINTENANCE": {
		{"maint.q1", "Is the equipment properly maintained and serviced?"},
		{"maint.q2", "Are all safety guards and covers in place?"},
		{"maint.q3", "Is preventive maintenance schedule being followed?"},
		{"maint.q4", "Are spare parts available for critical equipment?"},
		{"maint.q5", "Is the maintenance log updated regularly?"},
		{"maint.q6", "Are breakdown patterns analyzed for root causes?"},
		{"maint.q7", "Is there adequate training for maintenance staff?"},
	},
	"PRODUCTION": {
		{"prod.q1", "Will this change affect production capacity?"},
		{"prod.q2", "Is the change compatible with current production line?"},
		{"prod.q3", "Will there be any downtime during implementation?"},
		{"prod.q4", "Are production targets achievable after implementation?"},
		{"prod.q5", "Is the change documented for production procedures?"},
	},
	"ASSEMBLY": {
		{"assy.q1", "Does this change affect assembly process flow?"},
		{"assy.q2", "Is worker safety impacted by this change?"},
		{"assy.q3", "Are assembly instructions updated?"},
		{"assy.q4", "Will this require additional training for assembly workers?"},
		{"assy.q5", "Is the change compatible with existing assembly tools?"},
		{"assy.q6", "Will cycle time be affected?"},
	},
	"ADMIN": {
		{"admin.q1", "Is the change compliant with company policies?"},
		{"admin.q2", "Are all necessary approvals in place?"},
		{"admin.q3", "Is documentation properly archived?"},
		{"admin.q4", "Are stakeholders informed of the change?"},
	},
	"ACCOUNTS": {
		{"acct.q1", "Is the budget approved for this change?"},
		{"acct.q2", "Are vendor payments scheduled?"},
		{"acct.q3", "Is cost tracking set up for this project?"},
		{"acct.q4", "Are financial risks documented?"},
		{"acct.q5", "Is ROI calculation complete?"},
	},
}

func fillDepartments() {
	log.Info("предзаполнение подразделений")
	store := departmentstore.NewInstance(DB)
	list, err := store.List()
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения подразделений")
		return
	}
	if len(list) > 0 {
		log.Info("подразделения заполнены")
		return
	}
	for _, rec := range departmentsData {
		id, err := store.Create(rec)
		if err != nil {
			log.
				WithError(err).
				WithField("name", rec.Name).
				Error("ошибка добавления подразделения")
			return
		}
		for order, question := range evaluationQuestions[rec.Name] {
			err = store.CreateQuestion(dbmodels.EvaluationQuestion{
				DepartmentID: id,
				Key:          question.key,
				Text:         question.text,
				IsRequired:   true,
				Order:        order + 1,
			})
			if err != nil {
				log.
					WithError(err).
					WithField("key", question.key).
					Error("ошибка добавления вопроса анкеты")
				return
			}
		}
	}
	log.Info("подразделения добавлены")
}

type userData struct {
	email      string
	firstName  string
	lastName   string
	role       models.UserRole
	department string
}

var usersData = []userData{
	{"john.smith@example.com", "John", "Smith", models.RoleInitiator, "MAINTENANCE"},
	{"mike.manager@example.com", "Mike", "Manager", models.RoleManager, "MAINTENANCE"},
	{"helen.hod@example.com", "Helen", "Henderson", models.RoleHod, "MAINTENANCE"},
	{"paul.producer@example.com", "Paul", "Producer", models.RoleInitiator, "PRODUCTION"},
	{"mary.manager@example.com", "Mary", "Martinez", models.RoleManager, "PRODUCTION"},
	{"peter.hod@example.com", "Peter", "Peterson", models.RoleHod, "PRODUCTION"},
	{"alex.assembler@example.com", "Alex", "Anderson", models.RoleInitiator, "ASSEMBLY"},
	{"sara.manager@example.com", "Sara", "Singh", models.RoleManager, "ASSEMBLY"},
	{"alan.hod@example.com", "Alan", "Adams", models.RoleHod, "ASSEMBLY"},
	{"david.admin@example.com", "David", "Davis", models.RoleInitiator, "ADMIN"},
	{"diana.manager@example.com", "Diana", "Diaz", models.RoleManager, "ADMIN"},
	{"derek.hod@example.com", "Derek", "Dean", models.RoleHod, "ADMIN"},
	{"anna.accountant@example.com", "Anna", "Andrews", models.RoleInitiator, "ACCOUNTS"},
	{"bob.manager@example.com", "Bob", "Brown", models.RoleManager, "ACCOUNTS"},
	{"betty.hod@example.com", "Betty", "Barnes", models.RoleHod, "ACCOUNTS"},
	{"agm.sharma@example.com", "Rajesh", "Sharma", models.RoleAgm, "ADMIN"},
	{"gm.gupta@example.com", "Vikram", "Gupta", models.RoleGm, "ADMIN"},
	{"admin@example.com", "System", "Admin", models.RoleAdmin, "ADMIN"},
}

// пароль по умолчанию для стартовых пользователей, сменить после первого входа
const defaultPassword = "password123"

func fillUsers() {
	log.Info("предзаполнение пользователей")
	users := userstore.NewInstance(DB)
	departments := departmentstore.NewInstance(DB)
	count, err := users.Count()
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения пользователей")
		return
	}
	if count > 0 {
		log.Info("пользователи заполнены")
		return
	}
	departmentByName := map[string]string{}
	list, err := departments.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения подразделений")
		return
	}
	for _, rec := range list {
		departmentByName[rec.Name] = rec.ID
	}
	for _, data := range usersData {
		rec := dbmodels.User{
			Email:     data.email,
			Password:  authhelpers.GetMD5Hash(defaultPassword),
			FirstName: data.firstName,
			LastName:  data.lastName,
			Role:      data.role,
		}
		if departmentID, exist := departmentByName[data.department]; exist {
			rec.DepartmentID = &departmentID
		}
		err = users.Create(rec)
		if err != nil {
			log.
				WithError(err).
				WithField("email", data.email).
				Error("ошибка добавления пользователя")
			return
		}
	}
	log.Info("пользователи добавлены")
}
