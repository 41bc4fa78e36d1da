package models

type UserRole string

const (
	RoleInitiator UserRole = "INITIATOR"
	RoleManager   UserRole = "MANAGER"
	RoleHod       UserRole = "HOD"
	RoleAgm       UserRole = "AGM"
	RoleGm        UserRole = "GM"
	RoleAdmin     UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	RoleInitiator: "Инициатор",
	RoleManager:   "Менеджер",
	RoleHod:       "Руководитель подразделения",
	RoleAgm:       "Заместитель генерального директора",
	RoleGm:        "Генеральный директор",
	RoleAdmin:     "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

const SystemUser = "Система"
