package config

type Database struct {
	Type          string `json:"type" mapstructure:"type" yaml:"type"`
	SqlitePath    string `json:"sqlite_path" mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MysqlHost     string `json:"mysql_host" mapstructure:"mysql_host" yaml:"mysql_host"`
	MysqlPort     string `json:"mysql_port" mapstructure:"mysql_port" yaml:"mysql_port"`
	MysqlDbname   string `json:"mysql_dbname" mapstructure:"mysql_dbname" yaml:"mysql_dbname"`
	MysqlUsername string `json:"mysql_username" mapstructure:"mysql_username" yaml:"mysql_username"`
	MysqlPassword string `json:"mysql_password" mapstructure:"mysql_password" yaml:"mysql_password"`
}

type Redis struct {
	Addr              string `json:"addr" mapstructure:"addr" yaml:"addr"`
	Password          string `json:"password" mapstructure:"password" yaml:"password"`
	DB                int64  `json:"db" mapstructure:"db" yaml:"db"`
	SessionHistoryTTL int64  `json:"session_history_ttl" mapstructure:"session_history_ttl" yaml:"session_history_ttl"`
	HistoryLockExpiry int64  `json:"history_lock_expiry" mapstructure:"history_lock_expiry" yaml:"history_lock_expiry"`
}

type Jwt struct {
	Secret      string `json:"secret" mapstructure:"secret" yaml:"secret"`
	ExpireHours int64  `json:"expire_hours" mapstructure:"expire_hours" yaml:"expire_hours"`
}

type Llm struct {
	Url         string   `json:"url" mapstructure:"url" yaml:"url"`
	Model       string   `json:"model" mapstructure:"model" yaml:"model"`
	Auth        string   `json:"auth" mapstructure:"auth" yaml:"auth"`
	Size        string   `json:"size" mapstructure:"size" yaml:"size"`
	Timeout     int64    `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	Temperature *float32 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
}

type LlmEmbedding struct {
	Url          string `json:"url" mapstructure:"url" yaml:"url"`
	Model        string `json:"model" mapstructure:"model" yaml:"model"`
	Auth         string `json:"auth" mapstructure:"auth" yaml:"auth"`
	Timeout      int64  `json:"timeout" mapstructure:"timeout" yaml:"timeout"`
	BatchTimeout int64  `json:"batch_timeout" mapstructure:"batch_timeout" yaml:"batch_timeout"`
	Dim          int64  `json:"dim" mapstructure:"dim" yaml:"dim"`
}

type VectorDb struct {
	Url            string `json:"url" mapstructure:"url" yaml:"url"`
	Auth           string `json:"auth" mapstructure:"auth" yaml:"auth"`
	CollectionName string `json:"collection_name" mapstructure:"collection_name" yaml:"collection_name"`
}

type Ai struct {
	// 聊天消息的最大长度, 超长截断
	MaxMessageLength int `json:"max_message_length" mapstructure:"max_message_length" yaml:"max_message_length"`
	// 导购检索的商品数量
	SearchTopK int `json:"search_top_k" mapstructure:"search_top_k" yaml:"search_top_k"`
	// 拼入上下文的最近对话轮数
	HistoryTurns int `json:"history_turns" mapstructure:"history_turns" yaml:"history_turns"`
	// 两次LLM调用之间的最小间隔(毫秒), 用于规避上游限流
	MinRequestIntervalMs int64 `json:"min_request_interval_ms" mapstructure:"min_request_interval_ms" yaml:"min_request_interval_ms"`
	// 商品向量化任务的cron表达式
	EmbedCron string `json:"embed_cron" mapstructure:"embed_cron" yaml:"embed_cron"`
	// 向量化任务中两次请求的间隔(毫秒)
	EmbedIntervalMs int64 `json:"embed_interval_ms" mapstructure:"embed_interval_ms" yaml:"embed_interval_ms"`
}

type Oss struct {
	Endpoint        string `json:"endpoint" mapstructure:"endpoint" yaml:"endpoint"`
	Bucket          string `json:"bucket" mapstructure:"bucket" yaml:"bucket"`
	AccessKeyId     string `json:"access_key_id" mapstructure:"access_key_id" yaml:"access_key_id"`
	AccessKeySecret string `json:"access_key_secret" mapstructure:"access_key_secret" yaml:"access_key_secret"`
	StoragePath     string `json:"storage_path" mapstructure:"storage_path" yaml:"storage_path"`
	CdnDomain       string `json:"cdn_domain" mapstructure:"cdn_domain" yaml:"cdn_domain"`
}
