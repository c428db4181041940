package enum

type DbType string

const (
	MYSQL  DbType = `mysql`
	SQLITE DbType = `sqlite3`
)

type Msg string

const (
	DefaultSuccessMsg Msg = `ok`
	DefaultFailMsg    Msg = `错误`
)

type ResCode int8

const (
	SuccessCode   ResCode = 0
	ErrorCode     ResCode = 1
	AuthErrorCode ResCode = 2
)

// UserRole 用户角色
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ChatSender 聊天消息的发送方
type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "assistant"
)

type SystemPrompt string

const (
	// SystemPromptShopAssistant 是导购助手的固定系统提示词, 检索到的商品、用户信息和最近对话拼接在其后
	SystemPromptShopAssistant SystemPrompt = `你是一个友好的AI导购助手，服务于一家时尚服饰商城。

你的职责：
- 帮助顾客发现符合他们偏好的商品
- 提供穿搭建议和时尚小贴士
- 回答关于商品、尺码和版型的问题
- 协助顾客完成购物流程

要求：
- 回答尽量控制在3句话以内
- 推荐商品时要提到商品名称和价格，例如"可以看看Zara的碎花连衣裙，售价¥299"
- 用户询问链接时，告知"点击商品卡片即可查看详情"，系统会自动附带可点击的商品卡片
- 信息不足时主动追问澄清
- 语气自然、亲切
- 尺码类问题建议顾客查看尺码表或联系客服获取具体数据
- 回答的语言应与用户的问题语言一致`
)

type LlmSize string

const (
	ModelSmall  LlmSize = "small"
	ModelMedium LlmSize = "medium"
	ModelLarge  LlmSize = "large"
)

// ReplyMsg 发送给用户的固定话术
type ReplyMsg string

const (
	// 上游返回限流错误(429)时的兜底回复
	ReplyMsgRateLimited ReplyMsg = `现在咨询的人有点多，请稍等片刻再发一次哦！`
	// 上游额度耗尽时的兜底回复
	ReplyMsgQuotaExhausted ReplyMsg = `今天的AI服务额度已用完，请稍后再试，或联系人工客服。`
	// 其他上游错误时的兜底回复
	ReplyMsgGeneric ReplyMsg = `抱歉，我这边暂时出了点小问题，请稍后再试，或联系人工客服协助您。`
	// 新会话的欢迎语
	ReplyMsgWelcome ReplyMsg = `您好，欢迎光临！我是您的AI导购助手，想找什么样的商品都可以问我哦～`
)
