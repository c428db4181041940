package admin

import (
	"errors"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	adminservice "gitee.com/taoJie_1/mall-shop/service/admin"
	"github.com/gin-gonic/gin"
)

type CategoryApi struct{}

func (c *CategoryApi) Create(ctx *gin.Context) {
	var req dto.AddCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	category, err := service.Service.AdminServiceGroup.CategoryService.Create(req.Name)
	if err != nil {
		if errors.Is(err, adminservice.ErrCategoryExists) {
			common.Fail(ctx, err.Error())
			return
		}
		common.Fail(ctx, "创建分类失败")
		return
	}
	common.Success(ctx, category)
}
