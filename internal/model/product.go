package model

import "time"

// Product mirrors a row of the `products` table.
//
// Fields:
//  ID          – primary key identifier of the product.
//  Name        – product name.
//  Description – free-form description, defaults to empty.
//  Stock       – units on hand, never negative.
//  Price       – unit price, never negative.
//  CreatedByID – id of the admin who created the row (nullable; the
//                referenced user may be deleted later).
//  CreatedAt   – timestamp of creation.
type Product struct {
	ID          uint64    // products.id
	Name        string    // products.name
	Description string    // products.description
	Stock       int       // products.stock
	Price       float64   // products.price
	CreatedByID *uint64   // products.created_by_id (nullable)
	CreatedAt   time.Time // products.created_at
}
