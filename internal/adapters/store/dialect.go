package store

import "fmt"

// SQL flavor spoken by a *sql.DB.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// DefaultKey is the fixed key the delivery fee cache is persisted under.
const DefaultKey = "delivery_fee_cache"
