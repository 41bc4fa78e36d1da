package middleware

import (
	"net/http/httptest"
	"testing"

	"kaizen-tools-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func actorForToken(t *testing.T, token *jwt.Token) models.Actor {
	app := fiber.New()
	var actor models.Actor
	app.Get("/", func(ctx *fiber.Ctx) error {
		if token != nil {
			ctx.Locals("user", token)
		}
		actor = GetActor(ctx)
		return nil
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return actor
}

func TestGetActor(t *testing.T) {
	t.Run(`клеймы токена собираются в контекст пользователя`, func(t *testing.T) {
		actor := actorForToken(t, &jwt.Token{Claims: jwt.MapClaims{
			"sub":        "user-1",
			"role":       string(models.RoleManager),
			"department": "dep-1",
		}})
		require.Equal(t, "user-1", actor.UserID)
		require.Equal(t, models.RoleManager, actor.Role)
		require.Equal(t, "dep-1", actor.DepartmentID)
	})
	t.Run(`нестроковые клеймы не роняют обработчик`, func(t *testing.T) {
		actor := actorForToken(t, &jwt.Token{Claims: jwt.MapClaims{
			"sub":        123,
			"role":       7,
			"department": true,
		}})
		require.Empty(t, actor.UserID)
		require.Empty(t, actor.Role)
		require.Empty(t, actor.DepartmentID)
	})
	t.Run(`без токена пустой контекст`, func(t *testing.T) {
		actor := actorForToken(t, nil)
		require.Empty(t, actor.UserID)
		require.Empty(t, actor.Role)
	})
}
