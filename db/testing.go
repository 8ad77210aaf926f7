package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
)

var memoryDBCounter atomic.Uint64

// InitMemory opens a private in-memory SQLite database, used by tests and the CLI dry runs
func InitMemory() error {
	name := fmt.Sprintf("file:attendance%d?mode=memory&cache=shared&_foreign_keys=1", memoryDBCounter.Add(1))
	return InitWith(sqlite.Open(name))
}
