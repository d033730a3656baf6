package identity

// Роли пользователей в сервисе идентификации
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User модель пользователя из сервиса идентификации
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin возвращает true для администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от сервиса идентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
