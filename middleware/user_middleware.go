package middleware

import (
	authutils "kaizen-tools-backend/lib/utils/auth-utils"
	"kaizen-tools-backend/models"
	apimodels "kaizen-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func GetUserDepartment(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if department, exist := claims["department"]; exist {
		if stringDepartment, ok := department.(string); ok {
			return stringDepartment
		}
	}
	return ""
}

// GetActor собирает контекст пользователя из клеймов токена
// и сетевых атрибутов запроса
func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		UserID:       GetUserID(ctx),
		Role:         GetUserRole(ctx),
		DepartmentID: GetUserDepartment(ctx),
		IPAddress:    ctx.IP(),
		UserAgent:    ctx.Get(fiber.HeaderUserAgent),
	}
}

func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		userRole := GetUserRole(ctx)
		for _, role := range roles {
			if userRole == role {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
}

func AdminRoleRequired() fiber.Handler {
	return RoleRequired(models.RoleAdmin)
}
