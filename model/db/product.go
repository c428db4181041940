package db

import (
	"database/sql/driver"
	"encoding/json"
)

// VariantSize 单个颜色款式下的尺码库存
type VariantSize struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Variant 商品的颜色款式, 图片为OSS的完整URL
type Variant struct {
	Color     string        `json:"color"`
	ColorCode string        `json:"color_code"`
	Images    []string      `json:"images"`
	Sizes     []VariantSize `json:"sizes"`
}

// JSONVariants 以JSON文本存储的款式列表列
type JSONVariants []Variant

func (j *JSONVariants) Scan(src interface{}) error { return scanJSON(src, j) }

func (j JSONVariants) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	b, err := json.Marshal(j)
	return string(b), err
}

type Product struct {
	BaseField
	Name        string       `db:"name" json:"name" info:"商品名"`
	Brand       string       `db:"brand" json:"brand" info:"品牌"`
	CategoryId  uint         `db:"category_id" json:"category_id" info:"分类id"`
	SubCategory string       `db:"sub_category" json:"sub_category" info:"子分类"`
	Price       float64      `db:"price" json:"price" info:"单价"`
	Description string       `db:"description" json:"description" info:"描述"`
	SizeType    string       `db:"size_type" json:"size_type" info:"尺码体系"`
	Fabric      string       `db:"fabric" json:"fabric" info:"面料"`
	FitType     string       `db:"fit_type" json:"fit_type" info:"版型"`
	SleeveType  string       `db:"sleeve_type" json:"sleeve_type" info:"袖型"`
	Collections JSONStrings  `db:"collections" json:"collections" info:"所属专题"`
	Variants    JSONVariants `db:"variants" json:"variants" info:"颜色款式"`
	// 向量只在向量化任务和索引加载时读取, 列表查询不选取该列
	Embedding     JSONVector `db:"embedding" json:"-" info:"语义向量"`
	EmbeddingText string     `db:"embedding_text" json:"-" info:"向量化时使用的文本"`
}

func (Product) TableName() string {
	return `products`
}

// FirstImage 返回首个款式的首张图片, 没有则返回空串
func (p *Product) FirstImage() string {
	if len(p.Variants) > 0 && len(p.Variants[0].Images) > 0 {
		return p.Variants[0].Images[0]
	}
	return ""
}

// FirstColor 返回首个款式的颜色
func (p *Product) FirstColor() string {
	if len(p.Variants) > 0 {
		return p.Variants[0].Color
	}
	return ""
}

// Colors 返回所有款式的颜色列表
func (p *Product) Colors() []string {
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.Color != "" {
			colors = append(colors, v.Color)
		}
	}
	return colors
}

// Sizes 返回所有款式的尺码(去重)
func (p *Product) Sizes() []string {
	seen := make(map[string]struct{})
	var sizes []string
	for _, v := range p.Variants {
		for _, s := range v.Sizes {
			if s.Size == "" {
				continue
			}
			if _, ok := seen[s.Size]; ok {
				continue
			}
			seen[s.Size] = struct{}{}
			sizes = append(sizes, s.Size)
		}
	}
	return sizes
}
