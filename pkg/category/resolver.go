package category

import (
	"github.com/samber/lo"
	"github.com/wonderplan/wonderplan/pkg/trip"
)

// Resolver maps category titles to integer ids within one itinerary build
// pass. Lookup is first-match by exact title; unknown titles are appended
// with id = current category count + 1, so ids stay dense and 1-based but
// depend on discovery order.
type Resolver struct {
	categories []trip.Category
}

// NewResolver seeds a resolver with the given category list. The slice is
// copied; the caller's list is never mutated.
func NewResolver(seed []trip.Category) *Resolver {
	categories := make([]trip.Category, len(seed))
	copy(categories, seed)
	return &Resolver{categories: categories}
}

// NewDefaultResolver seeds a resolver with the eleven default categories.
func NewDefaultResolver() *Resolver {
	return NewResolver(Defaults())
}

// Resolve returns the id for the title, appending a new category when the
// title has not been seen before.
func (r *Resolver) Resolve(title string) int {
	existing, found := lo.Find(r.categories, func(c trip.Category) bool {
		return c.Title == title
	})
	if found {
		return existing.ID
	}

	appended := trip.Category{
		ID:    len(r.categories) + 1,
		Title: title,
		Icon:  IconFor(title),
	}
	r.categories = append(r.categories, appended)
	return appended.ID
}

// Categories returns the accumulated category list in id order.
func (r *Resolver) Categories() []trip.Category {
	out := make([]trip.Category, len(r.categories))
	copy(out, r.categories)
	return out
}
