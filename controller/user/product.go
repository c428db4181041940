package user

import (
	"database/sql"
	"errors"
	"strconv"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	"github.com/gin-gonic/gin"
)

type ProductApi struct{}

func (p *ProductApi) List(ctx *gin.Context) {
	var filter dto.ProductFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	resp, err := service.Service.UserServiceGroup.ProductService.List(&filter)
	if err != nil {
		common.Fail(ctx, "查询商品列表失败")
		return
	}
	common.Success(ctx, resp)
}

func (p *ProductApi) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.Fail(ctx, "商品id无效")
		return
	}

	product, err := service.Service.UserServiceGroup.ProductService.Get(uint(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, "查询商品失败")
		return
	}
	common.Success(ctx, product)
}

func (p *ProductApi) Categories(ctx *gin.Context) {
	list, err := service.Service.UserServiceGroup.ProductService.Categories()
	if err != nil {
		common.Fail(ctx, "查询分类失败")
		return
	}
	common.Success(ctx, list)
}
