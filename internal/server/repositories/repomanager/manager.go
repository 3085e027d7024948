package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/edustream/internal/dbx"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/courses"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/orders"
	"github.com/dmitrijs2005/edustream/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Courses(db dbx.DBTX) courses.Repository
	Orders(db dbx.DBTX) orders.Repository
}
