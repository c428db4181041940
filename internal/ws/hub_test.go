package ws

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// newTestClient 通过本地http服务升级出一条真实的websocket连接
func newTestClient(t *testing.T) (*Hub, *Client) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	hub := NewHub(log)

	upgrader := websocket.Upgrader{}
	accepted := make(chan *Client, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- hub.NewClient(conn)
	}))
	t.Cleanup(srv.Close)

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("建立测试连接失败: %v", err)
	}
	t.Cleanup(func() { _ = peer.Close() })

	client := <-accepted
	t.Cleanup(client.Close)
	return hub, client
}

// 写缓冲占满触发慢客户端断开后, 后续投递必须被丢弃而不是崩溃
func TestEmitAfterSlowClientClose(t *testing.T) {
	hub, c := newTestClient(t)
	hub.Join(c, "s1")

	// 不启动WritePump, 缓冲占满后的下一条触发断开
	for i := 0; i <= sendBufferSize; i++ {
		c.Emit("bot_message", i)
	}

	if n := hub.RoomSize("s1"); n != 0 {
		t.Fatalf("慢客户端断开后房间应为空, 实际 %d", n)
	}
	if s := c.Session(); s != "" {
		t.Fatalf("断开后会话id应清空, 实际 %q", s)
	}

	c.Emit("bot_message", "late")
	hub.EmitToRoom("s1", "bot_message", "late")
}

// 多goroutine投递与断开并发进行时不应panic
func TestConcurrentEmitAndClose(t *testing.T) {
	hub, c := newTestClient(t)
	hub.Join(c, "s2")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Emit("bot_message", j)
				hub.EmitToRoom("s2", "user_typing", j)
			}
		}()
	}
	c.Close()
	wg.Wait()
}

// 重复加入房间会先退出旧房间
func TestJoinMovesBetweenRooms(t *testing.T) {
	hub, c := newTestClient(t)

	hub.Join(c, "a")
	hub.Join(c, "b")

	if n := hub.RoomSize("a"); n != 0 {
		t.Fatalf("旧房间应为空, 实际 %d", n)
	}
	if n := hub.RoomSize("b"); n != 1 {
		t.Fatalf("新房间应为1, 实际 %d", n)
	}
	if s := c.Session(); s != "b" {
		t.Fatalf("会话id应为b, 实际 %q", s)
	}
}
