package middleware

import (
	"errors"
	"strings"
	"time"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 上下文中存放登录态的键
const CtxKeyClaims = "claims"

// Claims JWT负载
type Claims struct {
	UserId uint          `json:"user_id"`
	Email  string        `json:"email"`
	Role   enum.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 为用户签发JWT
func GenerateToken(user *db.User) (string, error) {
	if global.Config.Jwt.Secret == "" {
		return "", errors.New("未配置JWT密钥[b7m3q]")
	}

	expire := time.Duration(global.Config.Jwt.ExpireHours) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}

	now := time.Now()
	claims := &Claims{
		UserId: user.Id,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.Config.Jwt.Secret))
}

// ParseToken 校验并解析JWT
func ParseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("签名算法不匹配[d4s8r]")
		}
		return []byte(global.Config.Jwt.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("令牌无效[n6e2t]")
	}
	return claims, nil
}

// 从Authorization头中取出Bearer令牌
func extractToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// VerifyUser 登录校验, 未登录返回401
func VerifyUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := extractToken(ctx)
		if tokenStr == "" {
			common.FailAuth(ctx, "请先登录")
			ctx.Abort()
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			common.FailAuth(ctx, "登录已过期, 请重新登录")
			ctx.Abort()
			return
		}

		ctx.Set(CtxKeyClaims, claims)
		ctx.Next()
	}
}

// VerifyAdmin 管理员校验, 须在VerifyUser之后使用
func VerifyAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := GetClaims(ctx)
		if claims == nil || claims.Role != enum.RoleAdmin {
			common.FailForbidden(ctx, "无权限访问")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// OptionalUser 可选登录态, 有合法令牌则注入claims, 没有也放行
func OptionalUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenStr := extractToken(ctx); tokenStr != "" {
			if claims, err := ParseToken(tokenStr); err == nil {
				ctx.Set(CtxKeyClaims, claims)
			}
		}
		ctx.Next()
	}
}

// GetClaims 取出当前请求的登录态, 未登录返回nil
func GetClaims(ctx *gin.Context) *Claims {
	v, ok := ctx.Get(CtxKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
