package models

// Actor - контекст аутентифицированного пользователя:
// клеймы токена плюс сетевые атрибуты запроса для журнала аудита
type Actor struct {
	UserID       string
	Role         UserRole
	DepartmentID string
	IPAddress    string
	UserAgent    string
}
