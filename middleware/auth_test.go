package middleware

import (
	"testing"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
)

func setupJwtConfig() {
	global.Config.Jwt.Secret = "unit-test-secret"
	global.Config.Jwt.ExpireHours = 1
}

func TestTokenRoundTrip(t *testing.T) {
	setupJwtConfig()

	user := &db.User{
		Email: "alice@example.com",
		Role:  enum.RoleAdmin,
	}
	user.Id = 42

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserId != 42 || claims.Email != "alice@example.com" || claims.Role != enum.RoleAdmin {
		t.Errorf("负载字段不符: %+v", claims)
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	setupJwtConfig()

	user := &db.User{Email: "bob@example.com", Role: enum.RoleUser}
	user.Id = 7

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	// 篡改签名部分
	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("被篡改的令牌应解析失败")
	}

	// 换密钥后旧令牌应失效
	global.Config.Jwt.Secret = "another-secret"
	if _, err := ParseToken(token); err == nil {
		t.Error("密钥变更后旧令牌应解析失败")
	}
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	global.Config.Jwt.Secret = ""
	user := &db.User{Email: "x@example.com"}
	if _, err := GenerateToken(user); err == nil {
		t.Error("未配置密钥时应返回错误")
	}
}
