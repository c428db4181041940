package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/llm"
	"gitee.com/taoJie_1/mall-shop/internal/search"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	"gitee.com/taoJie_1/mall-shop/utils"
)

// 商品描述拼入上下文时的截断长度
const contextDescriptionRunes = 100

// ChatService 导购助手的回复编排。
// 不做任何持久化, 消息落库由调用方负责。
type ChatService interface {
	Respond(ctx context.Context, userMessage string, chatCtx *common.ChatContext) *common.ChatReply
}

type chatService struct {
	searcher SearchService
	llm      llm.Service // 为空时使用全局实例, 测试时注入
}

func NewChatService(searcher SearchService) ChatService {
	return &chatService{searcher: searcher}
}

func (s *chatService) llmService() llm.Service {
	if s.llm != nil {
		return s.llm
	}
	return global.LlmService
}

// Respond 生成一条助手回复。
// 检索失败按无相关商品处理; LLM失败返回固定兜底话术, 不透出原始错误。
func (s *chatService) Respond(ctx context.Context, userMessage string, chatCtx *common.ChatContext) *common.ChatReply {
	topK := global.Config.Ai.SearchTopK
	if topK <= 0 {
		topK = 3
	}

	var scored []search.Scored
	if s.searcher != nil {
		var err error
		scored, err = s.searcher.Search(ctx, userMessage, topK)
		if err != nil {
			global.Log.Warnf("[chat]商品检索失败, 按无相关商品继续: %v", err)
			scored = nil
		}
	}

	systemPrompt := s.buildSystemPrompt(scored, chatCtx)
	history := s.buildHistory(chatCtx)

	answer, err := s.llmService().ChatCompletionWithHistory(ctx, enum.ModelSmall, systemPrompt, userMessage, history)
	if err != nil {
		global.Log.Errorf("[chat]LLM调用失败: %v", err)
		return &common.ChatReply{Message: string(classifyLlmError(err))}
	}

	return &common.ChatReply{
		Message:  answer,
		Products: s.buildProductCards(scored),
	}
}

// classifyLlmError 将上游错误归类为固定话术, 原始错误绝不透给用户
func classifyLlmError(err error) enum.ReplyMsg {
	msg := strings.ToLower(err.Error())
	switch {
	case utils.ContainsAny(msg, []string{"429", "rate limit"}):
		return enum.ReplyMsgRateLimited
	case utils.ContainsAny(msg, []string{"quota", "resource_exhausted"}):
		return enum.ReplyMsgQuotaExhausted
	default:
		return enum.ReplyMsgGeneric
	}
}

// buildSystemPrompt 在固定系统提示词后拼接商品、用户与对话上下文
func (s *chatService) buildSystemPrompt(scored []search.Scored, chatCtx *common.ChatContext) enum.SystemPrompt {
	var b strings.Builder
	b.WriteString(string(enum.SystemPromptShopAssistant))

	if len(scored) > 0 {
		b.WriteString("\n\n可推荐的相关商品：\n")
		for i, item := range scored {
			p := item.Product
			desc := p.Description
			if utf8.RuneCountInString(desc) > contextDescriptionRunes {
				desc = string([]rune(desc)[:contextDescriptionRunes]) + "…"
			}
			fmt.Fprintf(&b, "%d. %s（品牌：%s，价格：¥%.2f", i+1, p.Name, p.Brand, p.Price)
			if name := s.categoryName(p.CategoryId); name != "" {
				fmt.Fprintf(&b, "，分类：%s", name)
			}
			if colors := p.Colors(); len(colors) > 0 {
				fmt.Fprintf(&b, "，颜色：%s", strings.Join(colors, "/"))
			}
			b.WriteString("）")
			if desc != "" {
				fmt.Fprintf(&b, " %s", desc)
			}
			b.WriteByte('\n')
		}
	}

	if summary := s.userSummary(chatCtx); summary != "" {
		b.WriteString("\n当前顾客：")
		b.WriteString(summary)
		b.WriteByte('\n')
	}

	return enum.SystemPrompt(b.String())
}

// userSummary 登录用户附带昵称与购物车件数, 查询失败不视为错误
func (s *chatService) userSummary(chatCtx *common.ChatContext) string {
	if chatCtx == nil || chatCtx.UserId == nil || dao.DB == nil {
		return ""
	}

	var u db.User
	if err := dao.App.UserDb.GetById(&u, *chatCtx.UserId); err != nil {
		global.Log.Debugf("[chat]查询用户 %d 失败: %v", *chatCtx.UserId, err)
		return ""
	}

	summary := u.Name
	if summary == "" {
		summary = u.Email
	}

	if n, err := dao.App.UserDb.CartItemCount(u.Id); err == nil && n > 0 {
		summary = fmt.Sprintf("%s（购物车中有%d件商品）", summary, n)
	}
	return summary
}

// buildHistory 取最近若干条消息作为LLM对话历史
func (s *chatService) buildHistory(chatCtx *common.ChatContext) []common.LlmMessage {
	if chatCtx == nil || len(chatCtx.RecentHistory) == 0 {
		return nil
	}

	turns := global.Config.Ai.HistoryTurns
	if turns <= 0 {
		turns = 4
	}

	recent := chatCtx.RecentHistory
	if len(recent) > turns {
		recent = recent[len(recent)-turns:]
	}

	history := make([]common.LlmMessage, 0, len(recent))
	for _, t := range recent {
		role := "user"
		if t.Sender == enum.SenderAssistant {
			role = "assistant"
		}
		history = append(history, common.LlmMessage{Role: role, Content: t.Message})
	}
	return history
}

// buildProductCards 把检索结果转换为前端可点击的商品卡片
func (s *chatService) buildProductCards(scored []search.Scored) []common.ProductCard {
	if len(scored) == 0 {
		return nil
	}

	base := strings.TrimRight(global.Config.FrontendUrl, "/")
	cards := make([]common.ProductCard, 0, len(scored))
	for _, item := range scored {
		p := item.Product
		cards = append(cards, common.ProductCard{
			Id:       p.Id,
			Name:     p.Name,
			Brand:    p.Brand,
			Price:    p.Price,
			Category: s.categoryName(p.CategoryId),
			Image:    p.FirstImage(),
			Color:    p.FirstColor(),
			Url:      fmt.Sprintf("%s/product/%d", base, p.Id),
		})
	}
	return cards
}

func (s *chatService) categoryName(categoryId uint) string {
	if categoryId == 0 || dao.DB == nil {
		return ""
	}
	var c db.Category
	if err := dao.App.CategoryDb.GetById(&c, categoryId); err != nil {
		return ""
	}
	return c.Name
}
