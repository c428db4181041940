package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/taoJie_1/mall-shop/model/common"
	"github.com/go-redis/redis/v8"
)

// ErrNil 表示键不存在, 透出给调用方做缓存未命中判断
var ErrNil = redis.Nil

const (
	// KeyPrefixSessionHistory 会话历史缓存的键前缀
	KeyPrefixSessionHistory = "shop:chat:history:"
	// KeyPrefixHistoryLock 会话历史回源锁的键前缀
	KeyPrefixHistoryLock = "shop:chat:history_lock:"
)

// Service 定义了Redis操作的接口
type Service interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error

	// GetSessionHistory 读取会话历史缓存, 未命中返回(nil, nil)
	GetSessionHistory(ctx context.Context, sessionId string) ([]common.ChatTurn, error)
	// SetSessionHistory 覆盖写入会话历史缓存
	SetSessionHistory(ctx context.Context, sessionId string, history []common.ChatTurn, ttl time.Duration) error
	// AppendToSessionHistory 追加消息到会话历史缓存并刷新TTL, 缓存不存在时不创建
	AppendToSessionHistory(ctx context.Context, sessionId string, ttl time.Duration, turns ...common.ChatTurn) error
}

type client struct {
	rdb *redis.Client
}

// NewClient 创建一个新的Redis客户端实例
func NewClient(addr, password string, db int) (Service, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10, // 连接池大小
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &client{rdb: rdb}, nil
}

func (c *client) Get(ctx context.Context, key string) *redis.StringCmd {
	return c.rdb.Get(ctx, key)
}

func (c *client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return c.rdb.Set(ctx, key, value, expiration)
}

func (c *client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return c.rdb.Del(ctx, keys...)
}

func (c *client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return c.rdb.SetNX(ctx, key, value, expiration)
}

func (c *client) Ping(ctx context.Context) *redis.StatusCmd {
	return c.rdb.Ping(ctx)
}

func (c *client) Close() error {
	return c.rdb.Close()
}

func (c *client) GetSessionHistory(ctx context.Context, sessionId string) ([]common.ChatTurn, error) {
	raw, err := c.rdb.Get(ctx, KeyPrefixSessionHistory+sessionId).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history []common.ChatTurn
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("反序列化会话历史失败: %w", err)
	}
	return history, nil
}

func (c *client) SetSessionHistory(ctx context.Context, sessionId string, history []common.ChatTurn, ttl time.Duration) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("序列化会话历史失败: %w", err)
	}
	return c.rdb.Set(ctx, KeyPrefixSessionHistory+sessionId, data, ttl).Err()
}

// 并发追加冲突时的最大重试次数
const maxAppendRetries = 5

func (c *client) AppendToSessionHistory(ctx context.Context, sessionId string, ttl time.Duration, turns ...common.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	key := KeyPrefixSessionHistory + sessionId

	// WATCH+MULTI乐观锁: 读改写期间键被其他追加改动则整体重试,
	// 避免并发追加时后写者覆盖先写者丢消息
	apply := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			// 缓存不存在时不做追加, 等待下次回源整体填充
			return nil
		}
		if err != nil {
			return err
		}

		var history []common.ChatTurn
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			return fmt.Errorf("反序列化会话历史失败: %w", err)
		}
		history = append(history, turns...)

		data, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("序列化会话历史失败: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := c.rdb.Watch(ctx, apply, key)
		if err != redis.TxFailedErr {
			return err
		}
	}
	return fmt.Errorf("追加会话 %s 历史冲突重试耗尽[b4x7r]", sessionId)
}
