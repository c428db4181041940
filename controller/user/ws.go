package user

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/ws"
	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"gitee.com/taoJie_1/mall-shop/service"
	"gitee.com/taoJie_1/mall-shop/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		if len(global.Config.Cors) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		return utils.InSlice(global.Config.Cors, origin) >= 0
	},
}

// 客户端事件名
const (
	evtJoinChat    = "join_chat"
	evtUserMessage = "user_message"
	evtTyping      = "typing"
)

// 服务端事件名
const (
	evtChatHistory = "chat_history"
	evtMessageSent = "message_sent"
	evtUserTyping  = "user_typing"
	evtBotTyping   = "bot_typing"
	evtBotMessage  = "bot_message"
	evtError       = "error"
)

type joinChatPayload struct {
	SessionId string `json:"session_id"`
}

type userMessagePayload struct {
	Message string `json:"message"`
}

type typingPayload struct {
	IsTyping bool `json:"is_typing"`
}

type botMessagePayload struct {
	MessageId uint                 `json:"message_id"`
	SessionId string               `json:"session_id"`
	Message   string               `json:"message"`
	Products  []common.ProductCard `json:"products,omitempty"`
	Timestamp int64                `json:"timestamp"`
}

// HandleWS 把HTTP连接升级为websocket并进入事件循环。
// 浏览器无法在握手时带Authorization头, 登录态从token查询参数解析, 没有则按游客处理。
func (d *ChatApi) HandleWS(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		global.Log.Warnf("[ws]连接升级失败: %v", err)
		return
	}

	var userId *uint
	if token := ctx.Query("token"); token != "" {
		if claims, err := middleware.ParseToken(token); err == nil {
			userId = &claims.UserId
		}
	}

	client := global.ChatHub.NewClient(conn)
	client.UserId = userId

	go client.WritePump()
	client.ReadPump(d.handleEvent)
}

// handleEvent 分发一条入站事件
func (d *ChatApi) handleEvent(c *ws.Client, evt ws.Event) {
	switch evt.Event {
	case evtJoinChat:
		d.handleJoin(c, evt.Data)
	case evtUserMessage:
		sessionId := c.Session()
		if sessionId == "" {
			c.Emit(evtError, gin.H{"message": "请先加入会话"})
			return
		}
		var payload userMessagePayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			c.Emit(evtError, gin.H{"message": "消息格式错误"})
			return
		}
		// 每条消息独立处理, 同会话内先完成先送达
		go d.processMessageAsync(c, sessionId, payload.Message)
	case evtTyping:
		sessionId := c.Session()
		if sessionId == "" {
			return
		}
		var payload typingPayload
		if err := json.Unmarshal(evt.Data, &payload); err != nil {
			return
		}
		global.ChatHub.BroadcastExcept(sessionId, c, evtUserTyping, payload)
	default:
		c.Emit(evtError, gin.H{"message": "未知事件: " + evt.Event})
	}
}

// handleJoin 加入(或新建)会话, 回放历史; 空会话先发一条欢迎语
func (d *ChatApi) handleJoin(c *ws.Client, data json.RawMessage) {
	var payload joinChatPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			c.Emit(evtError, gin.H{"message": "消息格式错误"})
			return
		}
	}

	sessionId := strings.TrimSpace(payload.SessionId)
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	global.ChatHub.Join(c, sessionId)

	ctx := context.Background()
	history, err := service.Service.UserServiceGroup.HistoryService.GetOrFetch(ctx, sessionId, historyPageLimit)
	if err != nil {
		global.Log.Errorf("[ws]加载会话 %s 历史失败: %v", sessionId, err)
		history = nil
	}

	c.Emit(evtChatHistory, dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  history,
		Count:     len(history),
	})

	if len(history) == 0 {
		d.sendWelcome(ctx, c, sessionId)
	}
}

// sendWelcome 新会话落库并推送欢迎语
func (d *ChatApi) sendWelcome(ctx context.Context, c *ws.Client, sessionId string) {
	welcome := &db.ChatMessage{
		SessionId: sessionId,
		UserId:    c.UserId,
		Message:   string(enum.ReplyMsgWelcome),
		Sender:    enum.SenderAssistant,
	}

	id, err := dao.App.ChatMessageDb.Append(welcome)
	if err != nil {
		global.Log.Errorf("[ws]写入会话 %s 欢迎语失败: %v", sessionId, err)
		return
	}

	turn := common.ChatTurn{
		MessageId: id,
		SessionId: sessionId,
		Message:   welcome.Message,
		Sender:    enum.SenderAssistant,
		Timestamp: time.Now().Unix(),
	}
	_ = service.Service.UserServiceGroup.HistoryService.Append(ctx, sessionId, turn)

	c.Emit(evtBotMessage, botMessagePayload{
		MessageId: id,
		SessionId: sessionId,
		Message:   welcome.Message,
		Timestamp: turn.Timestamp,
	})
}

// processMessageAsync 处理一条用户消息: 落库、转发、生成并推送助手回复
func (d *ChatApi) processMessageAsync(c *ws.Client, sessionId, message string) {
	defer func() {
		if p := recover(); p != nil {
			global.Log.Errorf("[processMessageAsync]: %v", p)
			global.ChatHub.EmitToRoom(sessionId, evtBotMessage, botMessagePayload{
				SessionId: sessionId,
				Message:   string(enum.ReplyMsgGeneric),
				Timestamp: time.Now().Unix(),
			})
		}
	}()

	svc := service.Service.UserServiceGroup

	message = strings.TrimSpace(message)
	if err := svc.Validator.ValidatorChatMessage(message); err != nil {
		c.Emit(evtError, gin.H{"message": "消息内容为空"})
		return
	}

	maxLen := global.Config.Ai.MaxMessageLength
	if maxLen <= 0 {
		maxLen = 1000
	}
	message = utils.TruncateRunes(message, maxLen)

	ctx := context.Background()

	// 1. 用户消息落库
	userMsg := &db.ChatMessage{
		SessionId: sessionId,
		UserId:    c.UserId,
		Message:   message,
		Sender:    enum.SenderUser,
	}
	msgId, err := dao.App.ChatMessageDb.Append(userMsg)
	if err != nil {
		global.Log.Errorf("[ws]写入会话 %s 用户消息失败: %v", sessionId, err)
		c.Emit(evtError, gin.H{"message": "消息发送失败, 请重试"})
		return
	}

	userTurn := common.ChatTurn{
		MessageId: msgId,
		SessionId: sessionId,
		Message:   message,
		Sender:    enum.SenderUser,
		Timestamp: time.Now().Unix(),
	}
	_ = svc.HistoryService.Append(ctx, sessionId, userTurn)

	// 2. 给发送者回执, 同会话的其他连接转发原文
	c.Emit(evtMessageSent, userTurn)
	global.ChatHub.BroadcastExcept(sessionId, c, evtUserMessage, userTurn)

	// 3. 助手打字中
	global.ChatHub.EmitToRoom(sessionId, evtBotTyping, typingPayload{IsTyping: true})
	defer global.ChatHub.EmitToRoom(sessionId, evtBotTyping, typingPayload{IsTyping: false})

	// 4. 取最近历史, 生成回复
	history, err := svc.HistoryService.GetOrFetch(ctx, sessionId, historyPageLimit)
	if err != nil {
		global.Log.Warnf("[ws]加载会话 %s 历史失败, 将不带历史生成回复: %v", sessionId, err)
		history = nil
	}
	// 刚落库的这条消息会作为LLM的content单独传入, 从历史中去掉避免重复
	if n := len(history); n > 0 && history[n-1].MessageId == msgId {
		history = history[:n-1]
	}

	reply := svc.ChatService.Respond(ctx, message, &common.ChatContext{
		SessionId:     sessionId,
		UserId:        c.UserId,
		RecentHistory: history,
	})

	// 5. 助手回复落库
	var refs db.JSONUints
	for _, card := range reply.Products {
		refs = append(refs, card.Id)
	}
	botMsg := &db.ChatMessage{
		SessionId:   sessionId,
		UserId:      c.UserId,
		Message:     reply.Message,
		Sender:      enum.SenderAssistant,
		ProductRefs: refs,
	}
	botId, err := dao.App.ChatMessageDb.Append(botMsg)
	if err != nil {
		global.Log.Errorf("[ws]写入会话 %s 助手消息失败: %v", sessionId, err)
	}

	botTurn := common.ChatTurn{
		MessageId:   botId,
		SessionId:   sessionId,
		Message:     reply.Message,
		Sender:      enum.SenderAssistant,
		ProductRefs: refs,
		Timestamp:   time.Now().Unix(),
	}
	_ = svc.HistoryService.Append(ctx, sessionId, botTurn)

	// 6. 推送助手回复(带商品卡片)
	global.ChatHub.EmitToRoom(sessionId, evtBotMessage, botMessagePayload{
		MessageId: botId,
		SessionId: sessionId,
		Message:   reply.Message,
		Products:  reply.Products,
		Timestamp: botTurn.Timestamp,
	})
}
