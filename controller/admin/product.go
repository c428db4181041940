package admin

import (
	"errors"
	"strconv"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	adminservice "gitee.com/taoJie_1/mall-shop/service/admin"
	"github.com/gin-gonic/gin"
)

type ProductApi struct{}

// Create 新建商品, multipart表单, 款式图片字段名为 variant_{i}_image_{j}
func (p *ProductApi) Create(ctx *gin.Context) {
	var req dto.UpsertProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		form = nil // 没有文件的纯表单提交
	}

	product, err := service.Service.AdminServiceGroup.ProductService.Create(&req, form)
	if err != nil {
		common.Fail(ctx, err.Error())
		return
	}
	common.Success(ctx, product)
}

func (p *ProductApi) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.Fail(ctx, "商品id无效")
		return
	}

	var req dto.UpsertProductRequest
	if err := ctx.ShouldBind(&req); err != nil {
		common.Fail(ctx, "参数无效")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		form = nil
	}

	product, err := service.Service.AdminServiceGroup.ProductService.Update(uint(id), &req, form)
	if err != nil {
		if errors.Is(err, adminservice.ErrProductNotFound) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, err.Error())
		return
	}
	common.Success(ctx, product)
}

func (p *ProductApi) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		common.Fail(ctx, "商品id无效")
		return
	}

	if err := service.Service.AdminServiceGroup.ProductService.Delete(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, adminservice.ErrProductNotFound) {
			common.FailNotFound(ctx)
			return
		}
		common.Fail(ctx, "删除商品失败")
		return
	}
	common.SuccessOk(ctx, "已删除")
}
