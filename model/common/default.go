package common

import "gitee.com/taoJie_1/mall-shop/model/enum"

// LlmMessage 发送给LLM的聊天消息格式
type LlmMessage struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // 消息内容
}

// ChatTurn 对外返回的一条会话消息
type ChatTurn struct {
	MessageId   uint            `json:"message_id"`
	SessionId   string          `json:"session_id"`
	Message     string          `json:"message"`
	Sender      enum.ChatSender `json:"sender"`
	ProductRefs []uint          `json:"product_refs,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}

// ChatContext 一次助手回复所需的会话上下文
type ChatContext struct {
	SessionId     string
	UserId        *uint // 游客为nil
	RecentHistory []ChatTurn
}

// ProductCard 聊天回复中附带的可点击商品卡片
type ProductCard struct {
	Id       uint    `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image,omitempty"`
	Color    string  `json:"color,omitempty"`
	Url      string  `json:"url"`
}

// ChatReply 助手的一次回复
type ChatReply struct {
	Message  string        `json:"message"`
	Products []ProductCard `json:"products,omitempty"`
}
