package model

import (
	"fmt"
	"strings"
)

// Category is the closed spending taxonomy shared with the backend. The
// client validates against the same list the backend enforces so free-form
// values never reach the wire.
type Category string

const (
	// CategoryFood covers restaurants and food delivery.
	CategoryFood Category = "food"
	// CategoryShopping covers general retail purchases.
	CategoryShopping Category = "shopping"
	// CategoryClothes covers apparel purchases.
	CategoryClothes Category = "clothes"
	// CategoryFinance covers fees, loans and other financial charges.
	CategoryFinance Category = "finance"
	// CategoryGroceries covers supermarket purchases.
	CategoryGroceries Category = "groceries"
	// CategoryOthers is the fallback for everything else.
	CategoryOthers Category = "others"
)

// Categories returns the full taxonomy in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryShopping,
		CategoryClothes,
		CategoryFinance,
		CategoryGroceries,
		CategoryOthers,
	}
}

// Valid reports whether c is a member of the taxonomy.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryShopping, CategoryClothes,
		CategoryFinance, CategoryGroceries, CategoryOthers:
		return true
	}
	return false
}

// ParseCategory converts user input to a Category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (valid: %s)", s, joinCategories())
	}
	return c, nil
}

func joinCategories() string {
	all := Categories()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
