package dto

import "gitee.com/taoJie_1/mall-shop/model/common"

// SessionSummary 用户的单个会话概览
type SessionSummary struct {
	SessionId       string `db:"session_id" json:"session_id"`
	LastMessage     string `db:"last_message" json:"last_message"`
	LastMessageTime int64  `db:"last_message_time" json:"last_message_time"`
	LastMessageAt   string `db:"-" json:"last_message_at"` // 本地时区的可读时间
	MessageCount    int64  `db:"message_count" json:"message_count"`
}

// ChatHistoryResponse 会话历史响应体
type ChatHistoryResponse struct {
	SessionId string            `json:"session_id"`
	Messages  []common.ChatTurn `json:"messages"`
	Count     int               `json:"count"`
}
