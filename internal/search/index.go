package search

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gitee.com/taoJie_1/mall-shop/model/db"
)

// Item 索引中的一个商品条目, 向量在入库时已归一化
type Item struct {
	Product db.Product
	Vector  []float32
}

// Scored 一次检索返回的(商品, 相似度)对, 仅在单次调用内有效
type Scored struct {
	Product db.Product
	Score   float32
}

// Index 是进程内的商品向量索引。
// 商品向量由离线向量化任务写入数据库, 启动和任务完成后全量加载到这里;
// 检索路径只读, 加载路径整体替换, 用读写锁隔离。
type Index struct {
	mu    sync.RWMutex
	dim   int
	items []Item
}

func NewIndex() *Index {
	return &Index{}
}

// Reload 用新的条目整体替换索引内容。
// 条目须保持商品的入库顺序, 检索打分时同分按此顺序稳定输出。
// 所有条目的向量维度必须一致, 不一致视为数据损坏, 拒绝加载。
func (x *Index) Reload(items []Item) error {
	dim := 0
	for i := range items {
		if len(items[i].Vector) == 0 {
			return fmt.Errorf("商品 %d 的向量为空", items[i].Product.Id)
		}
		if dim == 0 {
			dim = len(items[i].Vector)
		} else if len(items[i].Vector) != dim {
			return fmt.Errorf("商品 %d 的向量维度不一致: 期望 %d, 实际 %d", items[i].Product.Id, dim, len(items[i].Vector))
		}
	}

	x.mu.Lock()
	x.items = items
	x.dim = dim
	x.mu.Unlock()
	return nil
}

// Len 返回索引中的条目数
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.items)
}

// Dim 返回索引的向量维度, 索引为空时为0
func (x *Index) Dim() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dim
}

// TopK 对索引中的全部条目做暴力点积打分, 返回相似度降序的前k条。
// 向量在入库和查询时都已归一化, 点积即余弦相似度。
// 查询向量与索引维度不一致是硬错误, 不做静默跳过。
func (x *Index) TopK(query []float32, k int) ([]Scored, error) {
	if k < 1 {
		return nil, fmt.Errorf("k必须大于等于1, 实际为 %d", k)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.items) == 0 {
		return nil, nil
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("查询向量维度不匹配: 索引为 %d, 查询为 %d", x.dim, len(query))
	}

	scored := make([]Scored, len(x.items))
	for i := range x.items {
		scored[i] = Scored{
			Product: x.items[i].Product,
			Score:   Dot(query, x.items[i].Vector),
		}
	}

	// 稳定排序: 同分保持入库顺序
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Dot 计算两个等长向量的点积, 调用方保证长度一致
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize 将向量原地归一化为单位长度。
// 向量在入库和查询两侧都要经过这里, 点积才等价于余弦相似度。
// 零向量原样返回。
func Normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
	return v
}
