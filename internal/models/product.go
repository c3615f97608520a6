package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a document in the products collection
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Price     float64            `bson:"price" json:"price"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateProductRequest is the payload for POST /api/products
type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// UpdateProductRequest is the payload for PUT /api/products/{productId}.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// ProductUpdate carries the resolved field changes applied by the repository
type ProductUpdate struct {
	Name     *string
	Category *string
	Price    *float64
}

// Empty reports whether the update would change nothing
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil
}
