package initialize

import (
	"flag"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/model/config"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

var (
	Conf string
	Act  string
)

func init() {
	flag.StringVar(&Conf, "c", "", "choose config file.")
	flag.StringVar(&Act, "a", "", `行为,默认为空,即启动服务; "embed": 为所有商品生成语义向量; "index": 重建内存索引;`)
}

// New 创建一个新的初始化器，并加载配置文件
func New() *Initializer {
	var configPath string
	if gin.Mode() != gin.TestMode {
		flag.Parse()
		if Conf != "" {
			configPath = Conf
		}
	}
	if configPath == "" {
		configPath = `config.yaml`
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		panic("读取配置失败[u9ij]: " + configPath + err.Error())
	}

	i := &Initializer{}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("配置文件变化[djiads]: ", e.Name)
		oldConfig := global.Config.DeepCopy()
		if err := v.Unmarshal(global.Config); err != nil {
			fmt.Println(err)
			return
		}
		handleConfig(global.Config)
		i.HandleConfigChange(oldConfig, global.Config)
	})

	if err := v.Unmarshal(global.Config); err != nil {
		panic("出错[dhfal]: " + err.Error())
	}

	handleConfig(global.Config)

	return i
}

// handleConfig 处理和设置配置的默认值
func handleConfig(c *config.Config) {
	c.StaticDir = strings.TrimRight(c.StaticDir, "/")
	c.FrontendUrl = strings.TrimRight(c.FrontendUrl, "/")

	if c.ProjectName == "" {
		c.ProjectName = "AI商城"
	}
	if c.GinAddr == "" {
		c.GinAddr = ":80"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.GinLogPath == "" {
		c.GinLogPath = "log/gin.log"
	}
	if c.RunLogPath == "" {
		c.RunLogPath = "log/run.log"
	}
	if c.Tz == "" {
		c.Tz = "Asia/Shanghai"
	}
	if c.FrontendUrl == "" {
		c.FrontendUrl = "http://localhost:5173"
	}
	if c.Jwt.ExpireHours == 0 {
		c.Jwt.ExpireHours = 24
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite3"
	}
	if c.Database.SqlitePath == "" {
		c.Database.SqlitePath = "data.db"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Redis.SessionHistoryTTL == 0 {
		c.Redis.SessionHistoryTTL = 3600 // 默认1小时
	}
	if c.Redis.HistoryLockExpiry == 0 {
		c.Redis.HistoryLockExpiry = 30
	}
	for i := range c.Llm {
		if c.Llm[i].Timeout == 0 {
			c.Llm[i].Timeout = 30
		}
	}
	if c.LlmEmbedding.Timeout == 0 {
		c.LlmEmbedding.Timeout = 5
	}
	if c.LlmEmbedding.BatchTimeout == 0 {
		c.LlmEmbedding.BatchTimeout = 60
	}
	if c.VectorDb.CollectionName == "" {
		c.VectorDb.CollectionName = "shop_products"
	}
	if c.Ai.MaxMessageLength == 0 {
		c.Ai.MaxMessageLength = 1000
	}
	if c.Ai.SearchTopK == 0 {
		c.Ai.SearchTopK = 3
	}
	if c.Ai.HistoryTurns == 0 {
		c.Ai.HistoryTurns = 4
	}
	if c.Ai.MinRequestIntervalMs == 0 {
		c.Ai.MinRequestIntervalMs = 4500
	}
	if c.Ai.EmbedIntervalMs == 0 {
		c.Ai.EmbedIntervalMs = 1000
	}
	if c.Ai.EmbedCron == "" {
		c.Ai.EmbedCron = "0 4 * * *"
	}
}
