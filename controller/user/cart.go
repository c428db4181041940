package user

import (
	"errors"
	"strconv"

	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	userservice "gitee.com/taoJie_1/mall-shop/service/user"
	"github.com/gin-gonic/gin"
)

type CartApi struct{}

// 购物车接口都在VerifyUser之后, claims一定存在
func (c *CartApi) userId(ctx *gin.Context) uint {
	return middleware.GetClaims(ctx).UserId
}

func (c *CartApi) Add(ctx *gin.Context) {
	var req dto.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	if err := service.Service.UserServiceGroup.CartService.Add(c.userId(ctx), &req); err != nil {
		if errors.Is(err, userservice.ErrProductNotFound) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, "加入购物车失败")
		return
	}
	common.SuccessOk(ctx, "已加入购物车")
}

func (c *CartApi) List(ctx *gin.Context) {
	resp, err := service.Service.UserServiceGroup.CartService.List(c.userId(ctx))
	if err != nil {
		common.Fail(ctx, "查询购物车失败")
		return
	}
	common.Success(ctx, resp)
}

func (c *CartApi) Update(ctx *gin.Context) {
	itemId, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || itemId == 0 {
		common.Fail(ctx, "条目id无效")
		return
	}

	var req dto.UpdateCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	if err := service.Service.UserServiceGroup.CartService.UpdateQuantity(c.userId(ctx), uint(itemId), req.Quantity); err != nil {
		if errors.Is(err, userservice.ErrCartItemNotFound) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, err.Error())
		return
	}
	common.SuccessOk(ctx, "已更新数量")
}

func (c *CartApi) Remove(ctx *gin.Context) {
	itemId, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || itemId == 0 {
		common.Fail(ctx, "条目id无效")
		return
	}

	if err := service.Service.UserServiceGroup.CartService.Remove(c.userId(ctx), uint(itemId)); err != nil {
		if errors.Is(err, userservice.ErrCartItemNotFound) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, "移除失败")
		return
	}
	common.SuccessOk(ctx, "已移除")
}

func (c *CartApi) Clear(ctx *gin.Context) {
	if err := service.Service.UserServiceGroup.CartService.Clear(c.userId(ctx)); err != nil {
		common.Fail(ctx, "清空购物车失败")
		return
	}
	common.SuccessOk(ctx, "购物车已清空")
}
