package service

import (
	"gitee.com/taoJie_1/mall-shop/service/admin"
	"gitee.com/taoJie_1/mall-shop/service/user"
	"gitee.com/taoJie_1/mall-shop/task"
)

type ServiceGroup struct {
	UserServiceGroup  user.ServiceGroup
	AdminServiceGroup admin.ServiceGroup
}

var Service = new(ServiceGroup)

// Setup 在全局依赖初始化完成后装配各业务服务
func Setup(taskManager *task.Manager) {
	Service.UserServiceGroup = user.NewServiceGroup()
	Service.AdminServiceGroup = admin.NewServiceGroup(taskManager)
}
