package search

import (
	"math"
	"testing"

	"gitee.com/taoJie_1/mall-shop/model/db"
)

func newItem(id uint, name string, vec []float32) Item {
	p := db.Product{Name: name}
	p.Id = id
	return Item{Product: p, Vector: vec}
}

func TestIndexTopK(t *testing.T) {
	idx := NewIndex()
	err := idx.Reload([]Item{
		newItem(1, "红色连衣裙", []float32{1, 0}),
		newItem(2, "蓝色衬衫", []float32{0, 1}),
	})
	if err != nil {
		t.Fatalf("加载索引失败: %v", err)
	}

	results, err := idx.TopK([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("期望返回1条, 实际 %d 条", len(results))
	}
	if results[0].Product.Id != 1 {
		t.Errorf("期望最相似商品为1, 实际为 %d", results[0].Product.Id)
	}
	if results[0].Score != 1 {
		t.Errorf("期望相似度为1, 实际为 %v", results[0].Score)
	}

	// k大于条目数时返回全部
	results, err = idx.TopK([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("期望返回2条, 实际 %d 条", len(results))
	}
	if results[0].Product.Id != 1 || results[1].Product.Id != 2 {
		t.Errorf("排序错误: %v, %v", results[0].Product.Id, results[1].Product.Id)
	}
	if results[1].Score != 0 {
		t.Errorf("期望第二条相似度为0, 实际为 %v", results[1].Score)
	}
}

func TestIndexTopKOrdering(t *testing.T) {
	idx := NewIndex()
	err := idx.Reload([]Item{
		newItem(1, "a", []float32{0.9, 0.1, 0}),
		newItem(2, "b", []float32{0, 1, 0}),
		newItem(3, "c", []float32{1, 0, 0}),
		newItem(4, "d", []float32{0.5, 0.5, 0}),
	})
	if err != nil {
		t.Fatalf("加载索引失败: %v", err)
	}

	results, err := idx.TopK([]float32{1, 0, 0}, 4)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}

	// 分数必须单调不增
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("排序错误: score[%d]=%v > score[%d]=%v", i, results[i].Score, i-1, results[i-1].Score)
		}
	}
	if results[0].Product.Id != 3 {
		t.Errorf("期望最相似商品为3, 实际为 %d", results[0].Product.Id)
	}
}

func TestIndexTopKStableTie(t *testing.T) {
	idx := NewIndex()
	// 两个同分条目, 必须保持入库顺序
	err := idx.Reload([]Item{
		newItem(7, "先入库", []float32{1, 0}),
		newItem(8, "后入库", []float32{1, 0}),
	})
	if err != nil {
		t.Fatalf("加载索引失败: %v", err)
	}

	results, err := idx.TopK([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("检索失败: %v", err)
	}
	if results[0].Product.Id != 7 || results[1].Product.Id != 8 {
		t.Errorf("同分未保持入库顺序: %d, %d", results[0].Product.Id, results[1].Product.Id)
	}
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex()

	results, err := idx.TopK([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("空索引检索不应报错: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("空索引应返回空结果, 实际 %d 条", len(results))
	}
}

func TestIndexDimensionMismatch(t *testing.T) {
	idx := NewIndex()
	if err := idx.Reload([]Item{newItem(1, "a", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("加载索引失败: %v", err)
	}

	if _, err := idx.TopK([]float32{1, 0}, 1); err == nil {
		t.Error("查询向量维度不一致必须报错")
	}
}

func TestIndexReloadRejectsMixedDims(t *testing.T) {
	idx := NewIndex()
	err := idx.Reload([]Item{
		newItem(1, "a", []float32{1, 0}),
		newItem(2, "b", []float32{1, 0, 0}),
	})
	if err == nil {
		t.Error("维度不一致的条目不应被加载")
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("归一化结果错误: %v", v)
	}

	var length float64
	for _, f := range v {
		length += float64(f) * float64(f)
	}
	if math.Abs(length-1) > 1e-6 {
		t.Errorf("归一化后模长应为1, 实际为 %v", math.Sqrt(length))
	}

	// 零向量原样返回
	z := Normalize([]float32{0, 0})
	if z[0] != 0 || z[1] != 0 {
		t.Errorf("零向量不应被修改: %v", z)
	}
}
