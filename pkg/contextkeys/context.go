// Package contextkeys holds the shared context keys that cross package
// boundaries. A custom key type avoids collisions with other packages.
package contextkeys

type contextKey string

// DBContextKey keys the *gorm.DB handle (connection pool or transaction)
// carried through the request context.
const DBContextKey = contextKey("db")
