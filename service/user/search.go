package user

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/search"
)

// SearchService 商品语义检索。
// 查询文本先向量化再到内存索引中打分, 向量化失败会作为错误返回, 由调用方决定降级策略。
type SearchService interface {
	Search(ctx context.Context, query string, k int) ([]search.Scored, error)
}

type searchService struct{}

func NewSearchService() SearchService {
	return &searchService{}
}

func (s *searchService) Search(ctx context.Context, query string, k int) ([]search.Scored, error) {
	if global.EmbeddingService == nil {
		return nil, errors.New("向量化服务未初始化")
	}

	vec, err := global.EmbeddingService.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询文本向量化失败: %w", err)
	}

	// 索引内向量均为单位向量, 查询向量同样归一化后点积即余弦相似度
	return global.ProductIndex.TopK(search.Normalize(vec), k)
}
