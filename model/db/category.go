package db

type Category struct {
	BaseField
	Name string `db:"name" json:"name" info:"分类名"`
}

func (Category) TableName() string {
	return `categories`
}
