package controller

import "gitee.com/taoJie_1/mall-shop/controller/user"
import "gitee.com/taoJie_1/mall-shop/controller/admin"

var Api = new(ApiGroup)

type ApiGroup struct {
	UserApiGroup  user.ApiGroup
	AdminApiGroup admin.ApiGroup
}
