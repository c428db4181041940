package llm

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestThrottleSpacing(t *testing.T) {
	throttle := NewThrottle(100 * time.Millisecond)
	ctx := context.Background()

	if err := throttle.Wait(ctx); err != nil {
		t.Fatalf("第一次等待不应报错: %v", err)
	}
	first := time.Now()

	if err := throttle.Wait(ctx); err != nil {
		t.Fatalf("第二次等待不应报错: %v", err)
	}
	second := time.Now()

	// 第二次调用的发起时刻距第一次发起至少一个间隔(允许少量调度误差)
	if elapsed := second.Sub(first); elapsed < 90*time.Millisecond {
		t.Errorf("两次调用间隔过短: %v", elapsed)
	}
}

func TestThrottleSpacingFromIssueNotCompletion(t *testing.T) {
	throttle := NewThrottle(100 * time.Millisecond)
	ctx := context.Background()

	_ = throttle.Wait(ctx)
	first := time.Now()

	// 模拟一次耗时超过间隔的慢调用
	time.Sleep(150 * time.Millisecond)

	_ = throttle.Wait(ctx)
	second := time.Now()

	// 间隔按发起时刻计算, 慢调用结束后无需再等
	if elapsed := second.Sub(first); elapsed > 200*time.Millisecond {
		t.Errorf("慢调用后不应额外等待完整间隔: %v", elapsed)
	}
}

func TestThrottleConcurrentCallersQueue(t *testing.T) {
	const interval = 50 * time.Millisecond
	throttle := NewThrottle(interval)
	ctx := context.Background()

	var (
		mu    sync.Mutex
		times []time.Time
		wg    sync.WaitGroup
	)

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := throttle.Wait(ctx); err != nil {
				t.Errorf("等待报错: %v", err)
				return
			}
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(times) != 3 {
		t.Fatalf("期望3次放行, 实际 %d 次", len(times))
	}

	// 放行时刻按时间槽排队, 相邻间隔不应明显小于设定值
	for i := range times {
		for j := i + 1; j < len(times); j++ {
			d := times[j].Sub(times[i])
			if d < 0 {
				d = -d
			}
			if d < 40*time.Millisecond {
				t.Errorf("并发调用未按时间槽排队: 间隔 %v", d)
			}
		}
	}
}

func TestThrottleContextCancel(t *testing.T) {
	throttle := NewThrottle(time.Second)
	_ = throttle.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := throttle.Wait(ctx)
	if err == nil {
		t.Fatal("取消的上下文应返回错误")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("取消后不应继续等待完整间隔")
	}
}

func TestThrottleDisabled(t *testing.T) {
	// 间隔为0时不节流
	throttle := NewThrottle(0)
	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := throttle.Wait(context.Background()); err != nil {
			t.Fatalf("等待报错: %v", err)
		}
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("间隔为0时不应产生等待")
	}
}
