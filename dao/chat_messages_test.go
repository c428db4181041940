package dao

import (
	"path/filepath"
	"sync"
	"testing"

	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB 建一个临时sqlite库, 含测试用到的表
func setupTestDB(t *testing.T) {
	t.Helper()

	var err error
	DB, err = sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "test.db")+"?_txlock=immediate")
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	t.Cleanup(func() {
		_ = DB.Close()
		DB = nil
	})

	if _, err = DB.Exec("PRAGMA busy_timeout = 10000;"); err != nil {
		t.Fatalf("设置busy_timeout失败: %v", err)
	}

	ddls := []string{
		"CREATE TABLE `chat_messages` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `session_id` TEXT NOT NULL, `user_id` INTEGER, `message` TEXT NOT NULL, `sender` TEXT NOT NULL, `product_refs` TEXT NOT NULL DEFAULT '[]')",
		"CREATE TABLE `carts` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `user_id` INTEGER NOT NULL, `product_id` INTEGER NOT NULL, `quantity` INTEGER NOT NULL DEFAULT 1, `price` REAL NOT NULL DEFAULT 0)",
	}
	for _, ddl := range ddls {
		if _, err = DB.Exec(ddl); err != nil {
			t.Fatalf("建表失败: %v", err)
		}
	}
}

func TestChatMessageAppendAndHistory(t *testing.T) {
	setupTestDB(t)

	const sessionId = "sess-1"
	msgs := []string{"你好", "您好，有什么可以帮您？", "有没有衬衫"}
	senders := []enum.ChatSender{enum.SenderUser, enum.SenderAssistant, enum.SenderUser}

	for i := range msgs {
		if _, err := App.ChatMessageDb.Append(&db.ChatMessage{
			SessionId: sessionId,
			Message:   msgs[i],
			Sender:    senders[i],
		}); err != nil {
			t.Fatalf("写入消息失败: %v", err)
		}
	}

	history, err := App.ChatMessageDb.GetHistory(sessionId, 10)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("期望3条历史, 实际 %d", len(history))
	}
	// 返回按时间正序
	for i := range history {
		if history[i].Message != msgs[i] {
			t.Errorf("第%d条消息不符: %q", i, history[i].Message)
		}
		if history[i].Sender != senders[i] {
			t.Errorf("第%d条发送方不符: %q", i, history[i].Sender)
		}
	}

	// limit只取最近的, 仍按正序返回
	history, err = App.ChatMessageDb.GetHistory(sessionId, 2)
	if err != nil {
		t.Fatalf("读取历史失败: %v", err)
	}
	if len(history) != 2 || history[0].Message != msgs[1] || history[1].Message != msgs[2] {
		t.Errorf("limit截取错误: %+v", history)
	}
}

func TestChatMessageConcurrentAppend(t *testing.T) {
	setupTestDB(t)

	const sessionId = "sess-concurrent"

	// 同一会话的两条消息并发落库, 两条都必须写入成功
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = App.ChatMessageDb.Append(&db.ChatMessage{
				SessionId: sessionId,
				Message:   "并发消息",
				Sender:    enum.SenderUser,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("第%d条并发写入失败: %v", i, err)
		}
	}

	count, err := App.ChatMessageDb.CountBySession(sessionId)
	if err != nil {
		t.Fatalf("统计消息数失败: %v", err)
	}
	if count != 2 {
		t.Errorf("期望2条消息, 实际 %d 条", count)
	}
}
