package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/search"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/config"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"github.com/sirupsen/logrus"
)

// fakeSearcher 返回固定的检索结果, 不触发真实向量化
type fakeSearcher struct {
	scored []search.Scored
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]search.Scored, error) {
	return f.scored, f.err
}

// fakeLlm 记录收到的系统提示词与历史, 返回预设的回答或错误
type fakeLlm struct {
	answer       string
	err          error
	gotPrompt    string
	gotHistory   []common.LlmMessage
	gotUserInput string
}

func (f *fakeLlm) ChatCompletion(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, temperature ...float32) (string, error) {
	return f.ChatCompletionWithHistory(ctx, size, systemPrompt, content, nil, temperature...)
}

func (f *fakeLlm) ChatCompletionWithHistory(ctx context.Context, size enum.LlmSize, systemPrompt enum.SystemPrompt, content string, history []common.LlmMessage, temperature ...float32) (string, error) {
	f.gotPrompt = string(systemPrompt)
	f.gotHistory = history
	f.gotUserInput = content
	return f.answer, f.err
}

func setupChatTestGlobals() {
	global.Log = logrus.New()
	global.Config = &config.Config{
		FrontendUrl: "http://localhost:5173",
		Ai: config.Ai{
			SearchTopK:   3,
			HistoryTurns: 4,
		},
	}
}

func TestClassifyLlmError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want enum.ReplyMsg
	}{
		{"429状态码", errors.New("error, status code: 429, message: Too Many Requests"), enum.ReplyMsgRateLimited},
		{"限流文案", errors.New("Rate Limit reached for requests"), enum.ReplyMsgRateLimited},
		{"额度用尽", errors.New("You exceeded your current quota"), enum.ReplyMsgQuotaExhausted},
		{"资源耗尽", errors.New("code: RESOURCE_EXHAUSTED"), enum.ReplyMsgQuotaExhausted},
		{"其他错误", errors.New("connection refused"), enum.ReplyMsgGeneric},
		{"上下文超时", context.DeadlineExceeded, enum.ReplyMsgGeneric},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classifyLlmError(c.err); got != c.want {
				t.Errorf("classifyLlmError(%v) = %q, 期望 %q", c.err, got, c.want)
			}
		})
	}
}

func TestRespondSuccessWithProducts(t *testing.T) {
	setupChatTestGlobals()

	product := db.Product{
		Name:  "碎花连衣裙",
		Brand: "Zara",
		Price: 299,
		Variants: db.JSONVariants{
			{Color: "蓝色", Images: []string{"https://cdn.example.com/a.jpg"}},
		},
	}
	product.Id = 7

	mockLlm := &fakeLlm{answer: "可以看看Zara的碎花连衣裙，售价¥299"}
	svc := &chatService{
		searcher: &fakeSearcher{scored: []search.Scored{{Product: product, Score: 0.92}}},
		llm:      mockLlm,
	}

	reply := svc.Respond(context.Background(), "有没有适合夏天的裙子", nil)

	if reply.Message != mockLlm.answer {
		t.Errorf("回复内容不符: %q", reply.Message)
	}
	if len(reply.Products) != 1 {
		t.Fatalf("期望1张商品卡片, 实际 %d", len(reply.Products))
	}
	card := reply.Products[0]
	if card.Id != 7 || card.Name != "碎花连衣裙" || card.Color != "蓝色" {
		t.Errorf("商品卡片字段不符: %+v", card)
	}
	if card.Url != "http://localhost:5173/product/7" {
		t.Errorf("商品卡片链接不符: %s", card.Url)
	}

	// 检索到的商品应出现在系统提示词中
	if !strings.Contains(mockLlm.gotPrompt, "碎花连衣裙") || !strings.Contains(mockLlm.gotPrompt, "¥299.00") {
		t.Errorf("系统提示词未包含商品信息:\n%s", mockLlm.gotPrompt)
	}
}

func TestRespondSearchFailureDegrades(t *testing.T) {
	setupChatTestGlobals()

	mockLlm := &fakeLlm{answer: "您好，想找什么样的商品呢？"}
	svc := &chatService{
		searcher: &fakeSearcher{err: errors.New("查询文本向量化失败: 服务不可用")},
		llm:      mockLlm,
	}

	reply := svc.Respond(context.Background(), "推荐点衣服", nil)

	// 检索失败按无相关商品继续, 不影响回复
	if reply.Message != mockLlm.answer {
		t.Errorf("检索失败时仍应正常回复, 实际: %q", reply.Message)
	}
	if len(reply.Products) != 0 {
		t.Errorf("检索失败时不应返回商品卡片")
	}
	if strings.Contains(mockLlm.gotPrompt, "可推荐的相关商品") {
		t.Errorf("检索失败时系统提示词不应包含商品段落")
	}
}

func TestRespondLlmFailureReturnsFallback(t *testing.T) {
	setupChatTestGlobals()

	svc := &chatService{
		searcher: &fakeSearcher{},
		llm:      &fakeLlm{err: errors.New("LLM调用失败: status code: 429")},
	}

	reply := svc.Respond(context.Background(), "在吗", nil)

	if reply.Message != string(enum.ReplyMsgRateLimited) {
		t.Errorf("限流时应返回固定话术, 实际: %q", reply.Message)
	}
	if strings.Contains(reply.Message, "429") {
		t.Errorf("原始错误不应透出给用户: %q", reply.Message)
	}
	if len(reply.Products) != 0 {
		t.Errorf("兜底回复不应附带商品卡片")
	}
}

func TestRespondHistoryTruncation(t *testing.T) {
	setupChatTestGlobals()
	global.Config.Ai.HistoryTurns = 2

	history := []common.ChatTurn{
		{Message: "第一条", Sender: enum.SenderUser},
		{Message: "第二条", Sender: enum.SenderAssistant},
		{Message: "第三条", Sender: enum.SenderUser},
		{Message: "第四条", Sender: enum.SenderAssistant},
	}

	mockLlm := &fakeLlm{answer: "好的"}
	svc := &chatService{searcher: &fakeSearcher{}, llm: mockLlm}

	svc.Respond(context.Background(), "继续", &common.ChatContext{RecentHistory: history})

	if len(mockLlm.gotHistory) != 2 {
		t.Fatalf("历史应截断为2条, 实际 %d", len(mockLlm.gotHistory))
	}
	if mockLlm.gotHistory[0].Content != "第三条" || mockLlm.gotHistory[0].Role != "user" {
		t.Errorf("截断应保留最近的消息: %+v", mockLlm.gotHistory[0])
	}
	if mockLlm.gotHistory[1].Content != "第四条" || mockLlm.gotHistory[1].Role != "assistant" {
		t.Errorf("发送方应映射为LLM角色: %+v", mockLlm.gotHistory[1])
	}
}
