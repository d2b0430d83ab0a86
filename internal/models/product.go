package models

import "time"

// Product represents a catalog item.
type Product struct {
	ID            string     `json:"id" firestore:"id" gorm:"primaryKey;type:varchar(128)"`
	Title         string     `json:"title" firestore:"title" gorm:"type:varchar(255);index"`
	Description   string     `json:"description" firestore:"description" gorm:"type:text"`
	Details       string     `json:"details" firestore:"details" gorm:"type:text"`
	Image         string     `json:"image" firestore:"image" gorm:"type:varchar(1024);index"`
	Price         float64    `json:"price" firestore:"price"`
	OriginalPrice float64    `json:"originalPrice" firestore:"originalPrice"`
	Category      string     `json:"category" firestore:"category" gorm:"type:varchar(255);index"`
	Sizes         []any      `json:"sizes" firestore:"sizes" gorm:"serializer:json;type:text"`
	Badge         string     `json:"badge" firestore:"badge"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// TableName keeps the SQL table aligned with the document collection name.
func (Product) TableName() string { return "productos" }

// ProductPatch holds the fields supplied to a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Details       *string   `json:"details,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Sizes         *[]any    `json:"sizes,omitempty"`
	Badge         *string   `json:"badge,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Apply merges the patch into p.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Details != nil {
		p.Details = *patch.Details
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Sizes != nil {
		p.Sizes = *patch.Sizes
	}
	if patch.Badge != nil {
		p.Badge = *patch.Badge
	}
	updatedAt := patch.UpdatedAt
	p.UpdatedAt = &updatedAt
}

// Fields returns the patch as a document field map, keyed by stored field name.
func (patch *ProductPatch) Fields() map[string]any {
	fields := map[string]any{"updatedAt": patch.UpdatedAt}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Details != nil {
		fields["details"] = *patch.Details
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		fields["originalPrice"] = *patch.OriginalPrice
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Sizes != nil {
		fields["sizes"] = *patch.Sizes
	}
	if patch.Badge != nil {
		fields["badge"] = *patch.Badge
	}
	return fields
}
