package utils

import (
	"testing"
	"time"
)

func TestTimeFormat(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("加载时区失败: %v", err)
	}

	// 2024-05-06 12:30:45 +08:00
	got := TimeFormat(int64(1714969845), loc)
	if got != "2024-05-06 12:30:45" {
		t.Errorf("期望 2024-05-06 12:30:45, 实际 %q", got)
	}

	if got := TimeFormat(uint(0), time.UTC); got != "1970-01-01 00:00:00" {
		t.Errorf("零值格式化错误: %q", got)
	}
}

func TestContainsAny(t *testing.T) {
	cases := []struct {
		str     string
		substrs []string
		want    bool
	}{
		{"error: rate limit exceeded", []string{"429", "rate limit"}, true},
		{"status code 429", []string{"429", "rate limit"}, true},
		{"insufficient quota", []string{"429", "rate limit"}, false},
		{"anything", nil, false},
		{"", []string{""}, true},
	}

	for _, c := range cases {
		if got := ContainsAny(c.str, c.substrs); got != c.want {
			t.Errorf("ContainsAny(%q, %v) = %v, 期望 %v", c.str, c.substrs, got, c.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("你好世界", 2); got != "你好" {
		t.Errorf("中文截断错误: %q", got)
	}
	if got := TruncateRunes("abc", 10); got != "abc" {
		t.Errorf("短串不应截断: %q", got)
	}
	if got := TruncateRunes("abc", 0); got != "abc" {
		t.Errorf("max为0时应原样返回: %q", got)
	}
}
