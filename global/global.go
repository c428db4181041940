package global

import (
	"time"

	"gitee.com/taoJie_1/mall-shop/internal/embedding"
	"gitee.com/taoJie_1/mall-shop/internal/llm"
	"gitee.com/taoJie_1/mall-shop/internal/oss"
	"gitee.com/taoJie_1/mall-shop/internal/redis"
	"gitee.com/taoJie_1/mall-shop/internal/search"
	"gitee.com/taoJie_1/mall-shop/internal/vector"
	"gitee.com/taoJie_1/mall-shop/internal/ws"
	"gitee.com/taoJie_1/mall-shop/model/config"
	"github.com/sirupsen/logrus"
)

// Version 编译时通过 -ldflags 注入
var Version = "dev"

// 全局变量
// 业务逻辑禁止修改
var (
	Config           *config.Config = new(config.Config) //指针类型, 给与其内存空间
	Log              *logrus.Logger
	Tz               *time.Location
	LlmService       llm.Service
	EmbeddingService embedding.Service
	RedisClient      redis.Service
	VectorDb         vector.Service
	OssService       oss.Service
	// ProductIndex 商品语义索引的进程级快照, 向量化任务完成后整体重载
	ProductIndex *search.Index = search.NewIndex()
	// ChatHub 聊天websocket的房间管理器
	ChatHub *ws.Hub
)
