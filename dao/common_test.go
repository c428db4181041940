package dao

import (
	"testing"

	"gitee.com/taoJie_1/mall-shop/model/db"
)

func TestGetInsertSqlInjectsTimestamps(t *testing.T) {
	u := &dbUtils{}

	sqlStr, args, err := u.getInsertSql(db.Category{}, map[string]interface{}{
		"name": "上装",
	})
	if err != nil {
		t.Fatalf("构建插入语句失败: %v", err)
	}

	// 列按字母序, 自动补齐created_at/updated_at
	want := "INSERT INTO `categories` (`created_at`, `name`, `updated_at`) VALUES (?, ?, ?)"
	if sqlStr != want {
		t.Errorf("插入语句不符:\n got: %s\nwant: %s", sqlStr, want)
	}
	if len(args) != 3 {
		t.Fatalf("期望3个参数, 实际 %d", len(args))
	}
	if ts, ok := args[0].(int64); !ok || ts <= 0 {
		t.Errorf("created_at应为当前时间戳, 实际: %v", args[0])
	}
	if args[1] != "上装" {
		t.Errorf("name参数不符: %v", args[1])
	}
}

func TestGetBatchInsertSqlRowMismatch(t *testing.T) {
	u := &dbUtils{}

	_, _, err := u.getBatchInsertSql(db.Category{}, []map[string]interface{}{
		{"name": "上装"},
		{"name": "下装", "extra": 1},
	})
	if err == nil {
		t.Error("字段数量不一致的批量插入应报错")
	}
}

func TestGetUpdateSqlAppendsUpdatedAt(t *testing.T) {
	u := &dbUtils{}

	sqlStr, args := u.getUpdateSql(db.Product{}, 9, map[string]interface{}{
		"price": 199.0,
	})

	want := "UPDATE `products` SET `price` = ?, `updated_at` = ? WHERE `id` = ?"
	if sqlStr != want {
		t.Errorf("更新语句不符:\n got: %s\nwant: %s", sqlStr, want)
	}
	if len(args) != 3 {
		t.Fatalf("期望3个参数, 实际 %d", len(args))
	}
	if args[0] != 199.0 {
		t.Errorf("price参数不符: %v", args[0])
	}
	if id, ok := args[2].(uint); !ok || id != 9 {
		t.Errorf("WHERE参数应为id=9, 实际: %v", args[2])
	}
}

func TestGetUpdateSqlEmptyData(t *testing.T) {
	u := &dbUtils{}
	if sqlStr, _ := u.getUpdateSql(db.Product{}, 1, nil); sqlStr != "" {
		t.Errorf("空数据应返回空语句, 实际: %s", sqlStr)
	}
}
