package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/search"
	"gitee.com/taoJie_1/mall-shop/model/db"
)

// EmbedProducts 为所有商品生成语义向量。
// 逐个请求向量化服务, 两次请求之间保持固定间隔以规避上游限流;
// 单个商品失败只记录日志并跳过, 不中断整个任务。
// 完成后把向量镜像到向量数据库并重建内存索引。
func (m *Manager) EmbedProducts() error {
	if m.embeddingService == nil {
		return fmt.Errorf("向量化服务未初始化")
	}

	var products []db.Product
	if err := dao.App.ProductDb.GetAllForEmbedding(&products); err != nil {
		return fmt.Errorf("加载商品列表失败: %w", err)
	}
	if len(products) == 0 {
		global.Log.Info("没有需要向量化的商品")
		return nil
	}

	categoryNames, err := m.loadCategoryNames()
	if err != nil {
		global.Log.Warnf("加载分类名失败, 向量化文本将不含分类: %v", err)
	}

	interval := time.Duration(global.Config.Ai.EmbedIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}

	ctx := context.Background()
	var succeeded, skipped, failed int

	for i := range products {
		p := &products[i]
		text := buildEmbeddingText(p, categoryNames[p.CategoryId])

		// 文本没变就不重复向量化
		if text == p.EmbeddingText && p.EmbeddingText != "" {
			skipped++
			continue
		}

		if succeeded+failed > 0 {
			time.Sleep(interval)
		}

		vec, err := m.embeddingService.CreateEmbedding(ctx, text)
		if err != nil {
			global.Log.Warnf("商品 %d (%s) 向量化失败, 已跳过: %v", p.Id, p.Name, err)
			failed++
			continue
		}

		// 入库前归一化, 检索时点积即余弦相似度
		normalized := search.Normalize(vec)
		if err := dao.App.ProductDb.SaveEmbedding(p.Id, db.JSONVector(normalized), text); err != nil {
			global.Log.Errorf("商品 %d 向量写库失败: %v", p.Id, err)
			failed++
			continue
		}
		succeeded++
	}

	global.Log.Infof("商品向量化任务完成: 成功 %d, 跳过 %d, 失败 %d", succeeded, skipped, failed)

	// 向量库镜像失败不阻塞索引重建
	if err := m.mirrorToVectorDb(ctx); err != nil {
		global.Log.Errorf("同步商品向量到向量数据库时发生非阻塞错误: %v", err)
	}

	return m.ReloadIndex()
}

// mirrorToVectorDb 把商品向量镜像到向量数据库并清理已删除商品的条目
func (m *Manager) mirrorToVectorDb(ctx context.Context) error {
	if global.VectorDb == nil {
		return nil
	}

	var products []db.Product
	if err := dao.App.ProductDb.GetAllWithEmbedding(&products); err != nil {
		return fmt.Errorf("加载商品向量失败: %w", err)
	}

	upserted, err := dao.App.VectorDb.BatchUpsert(ctx, products)
	if err != nil {
		return fmt.Errorf("同步商品向量到向量数据库失败: %w", err)
	}
	global.Log.Infof("成功同步 %d 条商品向量到向量数据库", upserted)

	var ids []uint
	if err := dao.App.ProductDb.GetAllIds(&ids); err != nil {
		return fmt.Errorf("加载商品id失败: %w", err)
	}
	activeIDs := make([]string, len(ids))
	for i, id := range ids {
		activeIDs[i] = fmt.Sprintf("%s%d", dao.ProductVectorIDPrefix, id)
	}

	if _, err := dao.App.VectorDb.PruneStale(ctx, activeIDs); err != nil {
		global.Log.Warnf("[gjsf8g]清理向量数据库中过期条目失败: %v", err)
	}
	return nil
}

// ReloadIndex 从数据库全量加载商品向量到内存索引
func (m *Manager) ReloadIndex() error {
	var products []db.Product
	if err := dao.App.ProductDb.GetAllWithEmbedding(&products); err != nil {
		return fmt.Errorf("加载商品向量失败: %w", err)
	}

	items := make([]search.Item, 0, len(products))
	for _, p := range products {
		items = append(items, search.Item{
			Product: p,
			Vector:  search.Normalize(p.Embedding),
		})
	}

	if err := global.ProductIndex.Reload(items); err != nil {
		return fmt.Errorf("重建商品索引失败: %w", err)
	}

	global.Log.Infof("成功加载 %d 条商品向量到内存索引", len(items))
	return nil
}

func (m *Manager) loadCategoryNames() (map[uint]string, error) {
	var categories []db.Category
	if err := dao.App.CategoryDb.GetAll(&categories); err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.Id] = c.Name
	}
	return names, nil
}

// buildEmbeddingText 拼出一个商品的向量化文本, 信息越全语义检索越准
func buildEmbeddingText(p *db.Product, categoryName string) string {
	var parts []string

	parts = append(parts, p.Name)
	if p.Brand != "" {
		parts = append(parts, "品牌: "+p.Brand)
	}
	if categoryName != "" {
		parts = append(parts, "分类: "+categoryName)
	}
	if p.SubCategory != "" {
		parts = append(parts, "子分类: "+p.SubCategory)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if colors := p.Colors(); len(colors) > 0 {
		parts = append(parts, "颜色: "+strings.Join(colors, " "))
	}
	if sizes := p.Sizes(); len(sizes) > 0 {
		parts = append(parts, "尺码: "+strings.Join(sizes, " "))
	}
	if len(p.Collections) > 0 {
		parts = append(parts, "专题: "+strings.Join(p.Collections, " "))
	}
	if p.Fabric != "" {
		parts = append(parts, "面料: "+p.Fabric)
	}
	if p.FitType != "" {
		parts = append(parts, "版型: "+p.FitType)
	}
	if p.SleeveType != "" {
		parts = append(parts, "袖型: "+p.SleeveType)
	}
	if p.SizeType != "" {
		parts = append(parts, "尺码体系: "+p.SizeType)
	}
	parts = append(parts, fmt.Sprintf("价格: %.2f元", p.Price))

	return strings.Join(parts, "\n")
}
