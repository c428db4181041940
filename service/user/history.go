package user

import (
	"context"
	"fmt"
	"os"
	"time"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/redis"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/utils"
)

// 缓存未命中且未抢到锁时的等待时间
const historyLockRetryWait = 200 * time.Millisecond

// HistoryService 会话历史的"缓存优先"读取。
// Redis为缓存, 数据库为事实来源; 缓存未命中时用分布式锁防止击穿。
type HistoryService interface {
	// GetOrFetch 先查Redis, 未命中则回源数据库并填充缓存
	GetOrFetch(ctx context.Context, sessionId string, limit int) ([]common.ChatTurn, error)

	// Append 将消息追加到会话缓存并刷新TTL, 缓存不存在时不创建
	Append(ctx context.Context, sessionId string, turns ...common.ChatTurn) error

	// Set 直接用给定历史覆盖缓存
	Set(ctx context.Context, sessionId string, history []common.ChatTurn) error

	// Sessions 用户的会话概览列表
	Sessions(userId uint) ([]dto.SessionSummary, error)
}

type historyService struct{}

func NewHistoryService() HistoryService {
	return &historyService{}
}

func (s *historyService) GetOrFetch(ctx context.Context, sessionId string, limit int) ([]common.ChatTurn, error) {
	if global.RedisClient == nil {
		// 无缓存时直接读库
		return dao.App.ChatMessageDb.GetHistory(sessionId, limit)
	}

	// 1. 尝试从Redis获取聊天记录
	history, err := global.RedisClient.GetSessionHistory(ctx, sessionId)
	if err != nil && err != redis.ErrNil {
		global.Log.Warnf("从Redis获取会话 %s 历史记录失败: %v, 将回源数据库", sessionId, err)
	} else if history != nil {
		global.Log.Debugf("会话 %s 历史记录从Redis缓存命中", sessionId)
		return history, nil
	}

	// --- 缓存未命中，进入回源逻辑 ---

	// 2. 使用分布式锁防止缓存击穿
	lockKey := redis.KeyPrefixHistoryLock + sessionId
	lockExpiry := time.Duration(global.Config.Redis.HistoryLockExpiry) * time.Second
	holder, _ := os.Hostname()
	if holder == "" {
		holder = "unknown-agent"
	}

	locked, err := global.RedisClient.SetNX(ctx, lockKey, holder, lockExpiry).Result()
	if err != nil {
		global.Log.Errorf("尝试获取会话 %s 历史记录锁失败: %v", sessionId, err)
		// 即使获取锁失败，也回源读库，作为降级策略
		return s.fetchAndCache(ctx, sessionId, limit)
	}

	if locked {
		defer func() {
			// 使用后台 context 确保即使原始请求取消，锁释放也能执行
			if err := global.RedisClient.Del(context.Background(), lockKey).Err(); err != nil {
				global.Log.Warnf("释放会话 %s 历史记录锁失败: %v", sessionId, err)
			}
		}()

		// 获取锁后再查一次缓存, 防止其间已有其他请求完成填充（双重检查锁定）
		history, err := global.RedisClient.GetSessionHistory(ctx, sessionId)
		if err == nil && history != nil {
			return history, nil
		}
		return s.fetchAndCache(ctx, sessionId, limit)
	}

	// 未获取到锁，说明其他请求正在回源，等待后重试
	time.Sleep(historyLockRetryWait)

	history, err = global.RedisClient.GetSessionHistory(ctx, sessionId)
	if err == nil && history != nil {
		return history, nil
	}

	global.Log.Warnf("等待后会话 %s 缓存仍未命中，直接回源作为降级策略", sessionId)
	return s.fetchAndCache(ctx, sessionId, limit)
}

func (s *historyService) Append(ctx context.Context, sessionId string, turns ...common.ChatTurn) error {
	if global.RedisClient == nil || len(turns) == 0 {
		return nil
	}

	ttl := utils.GetTTLWithJitter(global.Config.Redis.SessionHistoryTTL)
	if err := global.RedisClient.AppendToSessionHistory(ctx, sessionId, ttl, turns...); err != nil {
		global.Log.Errorf("追加消息到会话 %s 历史缓存失败: %v", sessionId, err)
		return err
	}
	return nil
}

func (s *historyService) Set(ctx context.Context, sessionId string, history []common.ChatTurn) error {
	if global.RedisClient == nil {
		return fmt.Errorf("Redis客户端未初始化")
	}
	ttl := utils.GetTTLWithJitter(global.Config.Redis.SessionHistoryTTL)
	if err := global.RedisClient.SetSessionHistory(ctx, sessionId, history, ttl); err != nil {
		global.Log.Errorf("设置会话 %s 历史缓存失败: %v", sessionId, err)
		return err
	}
	return nil
}

func (s *historyService) Sessions(userId uint) ([]dto.SessionSummary, error) {
	list := make([]dto.SessionSummary, 0)
	if err := dao.App.ChatMessageDb.GetSessionSummaries(&list, userId); err != nil {
		return nil, fmt.Errorf("查询会话列表失败[k8s3w]: %w", err)
	}
	for i := range list {
		list[i].LastMessageAt = utils.TimeFormat(list[i].LastMessageTime, global.Tz)
	}
	return list, nil
}

// fetchAndCache 从数据库读取历史并填充缓存
func (s *historyService) fetchAndCache(ctx context.Context, sessionId string, limit int) ([]common.ChatTurn, error) {
	history, err := dao.App.ChatMessageDb.GetHistory(sessionId, limit)
	if err != nil {
		return nil, fmt.Errorf("从数据库读取会话 %s 历史失败: %w", sessionId, err)
	}

	if global.RedisClient != nil {
		// 只记录错误，不阻塞返回
		if err := s.Set(context.Background(), sessionId, history); err != nil {
			global.Log.Errorf("将会话 %s 历史记录存入Redis失败: %v", sessionId, err)
		}
	}
	return history, nil
}
