package dto

import "gitee.com/taoJie_1/mall-shop/model/db"

// ProductFilter 商品列表的筛选与分页参数, 全部来自query string
type ProductFilter struct {
	CategoryId  uint    `form:"category"`
	SubCategory string  `form:"sub_category"`
	Brand       string  `form:"brand"`
	MinPrice    float64 `form:"min_price"`
	MaxPrice    float64 `form:"max_price"`
	SizeType    string  `form:"size_type"`
	Fabric      string  `form:"fabric"`
	FitType     string  `form:"fit_type"`
	SleeveType  string  `form:"sleeve_type"`
	Color       string  `form:"color"`
	Size        string  `form:"size"`
	Collection  string  `form:"collection"`
	Search      string  `form:"search"`
	SortBy      string  `form:"sort_by"`
	SortOrder   string  `form:"sort_order"`
	Page        int     `form:"page"`
	Limit       int     `form:"limit"`
}

// Pagination 列表响应中的分页信息
type Pagination struct {
	CurrentPage   int   `json:"current_page"`
	TotalPages    int   `json:"total_pages"`
	TotalProducts int64 `json:"total_products"`
	Limit         int   `json:"limit"`
	HasNextPage   bool  `json:"has_next_page"`
	HasPrevPage   bool  `json:"has_prev_page"`
}

// ProductListResponse 商品列表响应体
type ProductListResponse struct {
	Products   []db.Product `json:"products"`
	Pagination Pagination   `json:"pagination"`
}

// UpsertProductRequest 新建/更新商品的表单字段, 款式图片走multipart文件
type UpsertProductRequest struct {
	Name        string  `form:"name"`
	Brand       string  `form:"brand"`
	CategoryId  uint    `form:"category_id"`
	SubCategory string  `form:"sub_category"`
	Price       float64 `form:"price"`
	Description string  `form:"description"`
	SizeType    string  `form:"size_type"`
	Fabric      string  `form:"fabric"`
	FitType     string  `form:"fit_type"`
	SleeveType  string  `form:"sleeve_type"`
	Collections string  `form:"collections"` // JSON数组字符串
	Variants    string  `form:"variants"`    // JSON数组字符串, 其中existing_images保留已有图片
}

// VariantMeta 表单中variants字段反序列化后的结构
type VariantMeta struct {
	Color          string           `json:"color"`
	ColorCode      string           `json:"color_code"`
	Sizes          []db.VariantSize `json:"sizes"`
	ExistingImages []string         `json:"existing_images"`
}

// AddCategoryRequest 新建分类请求体
type AddCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
