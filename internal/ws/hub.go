package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// 写超时
	writeWait = 10 * time.Second
	// 读超时, 须大于ping间隔
	pongWait = 60 * time.Second
	// ping间隔
	pingPeriod = (pongWait * 9) / 10
	// 单条入站消息的字节上限
	maxMessageSize = 8 << 10
	// 出站缓冲长度, 写满则视为慢客户端并断开
	sendBufferSize = 64
)

// Event 客户端与服务端之间的消息信封
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outEvent 出站消息信封, Data为任意可序列化对象
type outEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client 一个已升级的websocket连接, 加入某个会话房间后收发消息
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	UserId *uint

	// mu保护sessionId和closed。close(send)只在持锁且closed置位后发生,
	// 投递方持锁检查closed再写channel, 保证不会向已关闭的channel发送
	mu        sync.Mutex
	sessionId string
	closed    bool

	closeOnce sync.Once
}

// Session 返回当前所在会话的id, 未加入任何房间时为空
func (c *Client) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionId
}

func (c *Client) setSession(id string) {
	c.mu.Lock()
	c.sessionId = id
	c.mu.Unlock()
}

// Hub 管理按会话id分组的房间。
// 同一会话的多个连接(多端)在同一房间内, 消息在房间内扇出。
type Hub struct {
	log   *logrus.Logger
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:   log,
		rooms: make(map[string]map[*Client]struct{}),
	}
}

// NewClient 包装一个已升级的连接, 尚未加入任何房间
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	return &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Join 将连接加入指定会话的房间, 重复调用会先退出旧房间
func (h *Hub) Join(c *Client, sessionId string) {
	h.Leave(c)

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[sessionId]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[sessionId] = room
	}
	room[c] = struct{}{}
	c.setSession(sessionId)
}

// Leave 将连接移出其所在房间, 房间空了即回收
func (h *Hub) Leave(c *Client) {
	sessionId := c.Session()
	if sessionId == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[sessionId]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, sessionId)
		}
	}
	c.setSession("")
}

// RoomSize 返回指定会话房间内的连接数
func (h *Hub) RoomSize(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionId])
}

// EmitToRoom 向会话房间内的所有连接发送事件
func (h *Hub) EmitToRoom(sessionId, event string, data interface{}) {
	h.send(sessionId, nil, event, data)
}

// BroadcastExcept 向会话房间内除sender外的所有连接发送事件
func (h *Hub) BroadcastExcept(sessionId string, sender *Client, event string, data interface{}) {
	h.send(sessionId, sender, event, data)
}

func (h *Hub) send(sessionId string, except *Client, event string, data interface{}) {
	payload, err := json.Marshal(outEvent{Event: event, Data: data})
	if err != nil {
		h.log.Errorf("[ws]序列化事件 %s 失败: %v", event, err)
		return
	}

	h.mu.RLock()
	room := h.rooms[sessionId]
	targets := make([]*Client, 0, len(room))
	for c := range room {
		if c == except {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.enqueue(payload)
	}
}

// Emit 只向当前连接发送事件
func (c *Client) Emit(event string, data interface{}) {
	payload, err := json.Marshal(outEvent{Event: event, Data: data})
	if err != nil {
		c.hub.log.Errorf("[ws]序列化事件 %s 失败: %v", event, err)
		return
	}
	c.enqueue(payload)
}

func (c *Client) enqueue(payload []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	select {
	case c.send <- payload:
		c.mu.Unlock()
		return
	default:
	}
	c.mu.Unlock()

	// 出站缓冲已满, 判定为慢客户端, 直接断开避免拖垮房间
	c.hub.log.Warnf("[ws]会话 %s 的客户端写缓冲已满, 断开连接", c.Session())
	c.Close()
}

// Close 关闭连接并离开房间, 幂等。
// send的关闭只在此处发生, WritePump以channel关闭作为退出信号。
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.Leave(c)
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close()
	})
}

// WritePump 将出站缓冲写入连接, 并周期性发送ping。
// 每个连接启动一个goroutine运行。
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump 循环读取入站消息并交给handler处理, 连接断开时返回。
// handler在调用方自己的goroutine内执行耗时逻辑。
func (c *Client) ReadPump(handler func(c *Client, evt Event)) {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debugf("[ws]连接异常关闭: %v", err)
			}
			return
		}

		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			c.Emit("error", map[string]string{"message": "消息格式错误"})
			continue
		}
		handler(c, evt)
	}
}
