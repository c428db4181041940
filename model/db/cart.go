package db

type Cart struct {
	BaseField
	UserId    uint    `db:"user_id" json:"user_id" info:"用户id"`
	ProductId uint    `db:"product_id" json:"product_id" info:"商品id"`
	Quantity  int     `db:"quantity" json:"quantity" info:"数量"`
	Price     float64 `db:"price" json:"price" info:"加购时的单价快照"`
}

func (Cart) TableName() string {
	return `carts`
}
