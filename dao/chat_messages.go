package dao

import (
	"fmt"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
)

type ChatMessageDb struct {
	dbUtils
}

// Append 追加一条会话消息, 消息只增不改
func (d *ChatMessageDb) Append(msg *db.ChatMessage) (uint, error) {
	var userId interface{}
	if msg.UserId != nil {
		userId = *msg.UserId
	}

	sqlStr, args, err := d.getInsertSql(db.ChatMessage{}, map[string]interface{}{
		"session_id":   msg.SessionId,
		"user_id":      userId,
		"message":      msg.Message,
		"sender":       msg.Sender,
		"product_refs": msg.ProductRefs,
	})
	if err != nil {
		return 0, err
	}

	res, err := DB.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("写入会话消息失败[g3f7h]: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// 会话消息数, 用于判断新会话
func (d *ChatMessageDb) CountBySession(sessionId string) (int64, error) {
	var n int64
	sqlStr := fmt.Sprintf("SELECT COUNT(*) FROM `%s` WHERE `session_id` = ?", db.ChatMessage{}.TableName())
	err := DB.Get(&n, sqlStr, sessionId)
	return n, err
}

// GetHistory 取会话最近limit条消息, 按时间正序返回。
// 先倒序取再反转, 保证截断的是最早的消息。
func (d *ChatMessageDb) GetHistory(sessionId string, limit int) ([]common.ChatTurn, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []db.ChatMessage
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `session_id` = ? ORDER BY `created_at` DESC, `id` DESC LIMIT ?", db.ChatMessage{}.TableName())
	if err := DB.Select(&rows, sqlStr, sessionId, limit); err != nil {
		return nil, err
	}

	turns := make([]common.ChatTurn, len(rows))
	for i, row := range rows {
		turns[len(rows)-1-i] = common.ChatTurn{
			MessageId:   row.Id,
			SessionId:   row.SessionId,
			Message:     row.Message,
			Sender:      row.Sender,
			ProductRefs: row.ProductRefs,
			Timestamp:   row.CreatedAt,
		}
	}
	return turns, nil
}

// 用户的会话概览列表, 按最近活跃排序
func (d *ChatMessageDb) GetSessionSummaries(list *[]dto.SessionSummary, userId uint) error {
	table := db.ChatMessage{}.TableName()
	sqlStr := fmt.Sprintf(`SELECT t.session_id,
		(SELECT m.message FROM `+"`%s`"+` m WHERE m.session_id = t.session_id ORDER BY m.created_at DESC, m.id DESC LIMIT 1) AS last_message,
		MAX(t.created_at) AS last_message_time,
		COUNT(*) AS message_count
		FROM `+"`%s`"+` t WHERE t.user_id = ?
		GROUP BY t.session_id ORDER BY last_message_time DESC`, table, table)
	return DB.Select(list, sqlStr, userId)
}
