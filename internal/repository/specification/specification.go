package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories apply them in order, so an
// owner-scoped lookup is the unscoped lookup plus one more specification.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
