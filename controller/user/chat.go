package user

import (
	"strings"

	"gitee.com/taoJie_1/mall-shop/middleware"
	"gitee.com/taoJie_1/mall-shop/model/common"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/service"
	"github.com/gin-gonic/gin"
)

// 一次历史查询返回的最大消息数
const historyPageLimit = 50

type ChatApi struct{}

// GetHistory 查询某个会话的历史消息
func (d *ChatApi) GetHistory(ctx *gin.Context) {
	sessionId := strings.TrimSpace(ctx.Param("sessionId"))
	if sessionId == "" {
		common.Fail(ctx, "会话id无效")
		return
	}

	history, err := service.Service.UserServiceGroup.HistoryService.GetOrFetch(ctx.Request.Context(), sessionId, historyPageLimit)
	if err != nil {
		common.Fail(ctx, "查询会话历史失败")
		return
	}

	common.Success(ctx, dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  history,
		Count:     len(history),
	})
}

// GetSessions 当前用户的会话概览列表
func (d *ChatApi) GetSessions(ctx *gin.Context) {
	claims := middleware.GetClaims(ctx)
	if claims == nil {
		common.FailAuth(ctx, "请先登录")
		return
	}

	list, err := service.Service.UserServiceGroup.HistoryService.Sessions(claims.UserId)
	if err != nil {
		common.Fail(ctx, "查询会话列表失败")
		return
	}
	common.Success(ctx, list)
}
