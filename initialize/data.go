package initialize

import (
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/task"
)

// loadData 加载业务所需数据
func (i *Initializer) loadData(taskManager *task.Manager) {
	if err := taskManager.ReloadIndex(); err != nil {
		global.Log.Errorln("启动时加载商品向量索引失败, 语义检索将不可用:", err)
	}
}
