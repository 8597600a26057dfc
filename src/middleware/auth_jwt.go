package middleware

import (
	"log"
	"strings"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const claimsKey = "claims"

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// authenticate ตรวจ token + blacklist คืนข้อความ error ถ้าไม่ผ่าน
func authenticate(tokenStr string) (*utils.JWTClaims, string) {
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return nil, "Invalid or expired token"
	}

	blacklisted, err := utils.IsTokenBlacklisted(tokenStr)
	if err != nil {
		log.Println("⚠️ blacklist check failed:", err)
	}
	if blacklisted {
		return nil, "Token has been revoked"
	}
	return claims, ""
}

func setClaims(c *fiber.Ctx, tokenStr string, claims *utils.JWTClaims) {
	c.Locals(claimsKey, claims)
	c.Locals("token", tokenStr)
	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)
}

// AuthJWT ต้องมี Bearer token ที่ถูกต้องและยังไม่ถูก logout
func AuthJWT(c *fiber.Ctx) error {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}
	claims, msg := authenticate(tokenStr)
	if claims == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, msg)
	}
	setClaims(c, tokenStr, claims)
	return c.Next()
}

// OptionalAuth ใส่ claims ถ้ามี token ถูกต้อง ไม่มี token ก็ผ่าน
func OptionalAuth(c *fiber.Ctx) error {
	if tokenStr := bearerToken(c); tokenStr != "" {
		if claims, _ := authenticate(tokenStr); claims != nil {
			setClaims(c, tokenStr, claims)
		}
	}
	return c.Next()
}

// RequireRole ใช้ต่อจาก AuthJWT
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return utils.HandleError(c, fiber.StatusForbidden, "Forbidden")
	}
}

// RequireSuperAdmin = AuthJWT + role superadmin
func RequireSuperAdmin() []fiber.Handler {
	return []fiber.Handler{AuthJWT, RequireRole(models.RoleSuperAdmin)}
}

// Claims คืน nil ถ้า request ไม่มี token
func Claims(c *fiber.Ctx) *utils.JWTClaims {
	claims, _ := c.Locals(claimsKey).(*utils.JWTClaims)
	return claims
}

// Token คืน access token ดิบที่ AuthJWT ตรวจแล้ว
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals("token").(string)
	return token
}

// UserID แปลง userId ใน claims เป็น ObjectID
func UserID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	claims := Claims(c)
	if claims == nil {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
