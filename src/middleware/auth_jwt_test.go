package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	DB "PollSensei-Backend/src/database"
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthJWT, func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(id.Hex())
	})
	app.Get("/optional", OptionalAuth, func(c *fiber.Ctx) error {
		if Claims(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("user")
	})
	admin := append(RequireSuperAdmin(), func(c *fiber.Ctx) error { return c.SendString("admin") })
	app.Get("/admin", admin...)
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) int {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res.StatusCode
}

func TestAuthJWT(t *testing.T) {
	mr := miniredis.RunT(t)
	DB.UseRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { DB.UseRedis(nil) })

	app := newApp()
	userID := primitive.NewObjectID().Hex()
	token, err := utils.GenerateJWT(userID, "mai@example.com", models.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/private", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/private", "garbage"))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/private", token))

	require.NoError(t, utils.BlacklistToken(token, time.Hour))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/private", token))
}

func TestOptionalAuthAndRoles(t *testing.T) {
	app := newApp()
	userToken, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "user@example.com", models.RoleUser)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "root@example.com", models.RoleSuperAdmin)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, call(t, app, "/optional", ""))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/optional", "broken"))

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/admin", ""))
	assert.Equal(t, fiber.StatusForbidden, call(t, app, "/admin", userToken))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/admin", adminToken))
}
