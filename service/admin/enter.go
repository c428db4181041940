package admin

import "gitee.com/taoJie_1/mall-shop/task"

type ServiceGroup struct {
	UploadService   UploadService
	ProductService  ProductService
	CategoryService CategoryService
}

func NewServiceGroup(taskManager *task.Manager) ServiceGroup {
	uploadService := NewUploadService()
	return ServiceGroup{
		UploadService:   uploadService,
		ProductService:  NewProductService(uploadService, taskManager),
		CategoryService: NewCategoryService(),
	}
}
