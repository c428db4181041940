package llm

import (
	"context"
	"sync"
	"time"
)

// Throttle 是对外LLM调用的全局节流阀, 保证相邻两次调用的"发起时刻"
// 至少间隔MinInterval, 用于规避上游按请求频率限流。
// 节流的是发起频率而不是完成频率: 慢调用不会压缩下一次调用的间隔。
// 这是一个进程级的粗粒度闸门, 不区分用户和会话; 并发调用按获取时间槽的
// 先后顺序依次放行。实例由初始化时显式注入, 不使用包级变量。
type Throttle struct {
	mu          sync.Mutex
	last        time.Time // 上一次放行的发起时刻
	minInterval time.Duration
}

func NewThrottle(minInterval time.Duration) *Throttle {
	return &Throttle{minInterval: minInterval}
}

// Wait 阻塞到下一个可用时间槽。
// 先在锁内占住时间槽(更新last), 再在锁外协作式等待到该时刻,
// 等待期间ctx取消则返回ctx.Err(), 已占住的时间槽不回收。
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.minInterval <= 0 {
		return nil
	}

	t.mu.Lock()
	now := time.Now()
	slot := t.last.Add(t.minInterval)
	if slot.Before(now) {
		slot = now
	}
	t.last = slot
	t.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
