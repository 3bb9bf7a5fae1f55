package models

import "time"

type User struct {
	ID             uint            `gorm:"primaryKey"                    json:"id"`
	Name           string          `gorm:"not null"                      json:"name"`
	Email          string          `gorm:"uniqueIndex;not null"          json:"email"`
	Password       string          `gorm:"not null"                      json:"-"`
	Balance        float64         `gorm:"not null;default:0"            json:"balance"`
	Cart           []CartItem      `gorm:"constraint:OnDelete:CASCADE"   json:"cart"`
	BoughtProducts []BoughtProduct `gorm:"constraint:OnDelete:CASCADE"   json:"boughtProducts"`
}

type Brand struct {
	ID       uint      `gorm:"primaryKey"        json:"id"`
	Name     string    `gorm:"not null"          json:"name"`
	Products []Product `json:"products,omitempty"`
}

type Category struct {
	ID       uint      `gorm:"primaryKey"                        json:"id"`
	Name     string    `gorm:"not null"                          json:"name"`
	Products []Product `gorm:"many2many:product_categories;"     json:"products,omitempty"`
}

type Product struct {
	ID         uint       `gorm:"primaryKey"                            json:"id"`
	Name       string     `gorm:"not null"                              json:"name"`
	Image      string     `json:"image"`
	Price      float64    `gorm:"not null"                              json:"price"`
	InStock    int        `gorm:"not null;default:0;check:in_stock >= 0" json:"inStock"`
	BrandID    uint       `gorm:"index;not null"                        json:"brandId"`
	Brand      *Brand     `json:"brand,omitempty"`
	Categories []Category `gorm:"many2many:product_categories;"         json:"categories,omitempty"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	UserID    uint      `gorm:"index;not null"             json:"userId"`
	ProductID uint      `gorm:"index;not null"             json:"productId"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BoughtProduct is one finalized purchase line. UnitPrice is the product
// price at checkout time.
type BoughtProduct struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	ProductID uint      `gorm:"index;not null" json:"productId"`
	Quantity  int       `gorm:"not null"       json:"quantity"`
	UnitPrice float64   `gorm:"not null"       json:"unitPrice"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (BoughtProduct) TableName() string {
	return "bought_products"
}

// All lists every model in migration order.
func All() []any {
	return []any{&Brand{}, &Category{}, &Product{}, &User{}, &CartItem{}, &BoughtProduct{}}
}
