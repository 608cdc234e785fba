package domain

// Product represents a product in the catalog
type Product struct {
	ProductID  int     `json:"productId" db:"product_id"`
	Title      string  `json:"title" db:"title"`
	ImageURL   string  `json:"imageUrl" db:"image_url"`
	SKU        string  `json:"sku" db:"sku"`
	PriceUnit  float64 `json:"priceUnit" db:"price_unit"`
	Quantity   int     `json:"quantity" db:"quantity"`
	CategoryID int     `json:"categoryId" db:"category_id"`
}

// Category represents a product category. Categories form a tree via
// ParentCategoryID; nil means a root category. Cycle prevention is
// application discipline, not a schema constraint.
type Category struct {
	CategoryID       int    `json:"categoryId" db:"category_id"`
	Title            string `json:"title" db:"title"`
	ImageURL         string `json:"imageUrl" db:"image_url"`
	ParentCategoryID *int   `json:"parentCategoryId,omitempty" db:"parent_category_id"`
}
