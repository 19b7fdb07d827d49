package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Megaphone"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims Token 中携带的业务信息，TenantID 用于多租户隔离
type UserClaims struct {
	UserID   uint64   `json:"user_id"`
	TenantID uint64   `json:"tenant_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}
