package task

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/mall-shop/global"
)

var (
	embedTimer *time.Timer
	embedMutex sync.Mutex
)

// DebounceEmbed 为向量化任务提供防抖调用。
// 后台连续编辑商品时只在最后一次修改后触发一次任务。
func (m *Manager) DebounceEmbed(delay time.Duration) {
	embedMutex.Lock()
	defer embedMutex.Unlock()

	// 如果已存在一个定时器，则停止它
	if embedTimer != nil {
		embedTimer.Stop()
	}

	embedTimer = time.AfterFunc(delay, func() {
		global.Log.Info("触发经防抖处理的商品向量化任务...")
		if err := m.EmbedProducts(); err != nil {
			global.Log.Errorf("执行经防抖处理的商品向量化任务失败: %v", err)
		}
	})
	global.Log.Infof("商品向量化任务已调度在 %v 后执行", delay)
}
