package user

import (
	"database/sql"
	"errors"

	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	userservice "gitee.com/taoJie_1/mall-shop/service/user"
	"github.com/gin-gonic/gin"
)

type AuthApi struct{}

func (a *AuthApi) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	user, token, err := service.Service.UserServiceGroup.AuthService.Register(&req)
	if err != nil {
		if errors.Is(err, userservice.ErrEmailTaken) {
			common.Fail(ctx, err.Error())
			return
		}
		common.Fail(ctx, "注册失败, 请稍后再试")
		return
	}

	common.SuccessAuth(ctx, token, user)
}

func (a *AuthApi) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	user, token, err := service.Service.UserServiceGroup.AuthService.Login(&req)
	if err != nil {
		if errors.Is(err, userservice.ErrBadCredentials) {
			common.Fail(ctx, err.Error())
			return
		}
		common.Fail(ctx, "登录失败, 请稍后再试")
		return
	}

	common.SuccessAuth(ctx, token, user)
}

func (a *AuthApi) Profile(ctx *gin.Context) {
	claims := middleware.GetClaims(ctx)
	if claims == nil {
		common.FailAuth(ctx, "请先登录")
		return
	}

	user, err := service.Service.UserServiceGroup.AuthService.Profile(claims.UserId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, "查询用户失败")
		return
	}

	common.Success(ctx, user)
}
