package db

import "gitee.com/taoJie_1/mall-shop/model/enum"

// ChatMessage 会话消息, 仅追加不修改, 会话内按写入时间排序
type ChatMessage struct {
	BaseField
	SessionId string          `db:"session_id" json:"session_id" info:"会话id"`
	UserId    *uint           `db:"user_id" json:"user_id" info:"用户id, 游客为null"`
	Message   string          `db:"message" json:"message" info:"消息内容"`
	Sender    enum.ChatSender `db:"sender" json:"sender" info:"发送方"`
	// 助手回复时引用的商品id列表
	ProductRefs JSONUints `db:"product_refs" json:"product_refs" info:"引用的商品"`
}

func (ChatMessage) TableName() string {
	return `chat_messages`
}
