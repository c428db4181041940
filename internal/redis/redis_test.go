package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/enum"
)

// newTestService 连接本地Redis的15号库, 不可用时跳过
func newTestService(t *testing.T) Service {
	t.Helper()

	svc, err := NewClient("127.0.0.1:6379", "", 15)
	if err != nil {
		t.Skipf("本地Redis不可用, 跳过: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func turn(id uint, msg string) common.ChatTurn {
	return common.ChatTurn{
		MessageId: id,
		Message:   msg,
		Sender:    enum.SenderUser,
		Timestamp: time.Now().Unix(),
	}
}

// 并发追加同一会话时, 任何一条都不能被覆盖丢失
func TestAppendToSessionHistoryConcurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sessionId := fmt.Sprintf("t-%d", time.Now().UnixNano())
	t.Cleanup(func() { svc.Del(ctx, KeyPrefixSessionHistory+sessionId) })

	if err := svc.SetSessionHistory(ctx, sessionId, []common.ChatTurn{turn(1, "你好")}, time.Minute); err != nil {
		t.Fatalf("写入初始历史失败: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := svc.AppendToSessionHistory(ctx, sessionId, time.Minute, turn(uint(n+2), fmt.Sprintf("消息%d", n)))
			if err != nil {
				t.Errorf("并发追加失败: %v", err)
			}
		}(i)
	}
	wg.Wait()

	history, err := svc.GetSessionHistory(ctx, sessionId)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(history) != writers+1 {
		t.Fatalf("期望 %d 条消息, 实际 %d 条", writers+1, len(history))
	}

	seen := make(map[uint]bool, len(history))
	for _, h := range history {
		seen[h.MessageId] = true
	}
	for i := 1; i <= writers+1; i++ {
		if !seen[uint(i)] {
			t.Fatalf("消息 %d 丢失", i)
		}
	}
}

// 缓存不存在时追加应当静默跳过, 不创建半截缓存
func TestAppendSkipsWhenCacheMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sessionId := fmt.Sprintf("t-miss-%d", time.Now().UnixNano())

	if err := svc.AppendToSessionHistory(ctx, sessionId, time.Minute, turn(1, "你好")); err != nil {
		t.Fatalf("追加不应报错: %v", err)
	}

	history, err := svc.GetSessionHistory(ctx, sessionId)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if history != nil {
		t.Fatalf("不存在的缓存不应被创建, 实际 %v", history)
	}
}
