package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/repositories/clients"
	"github.com/dmitrijs2005/clientdb/internal/repositories/phones"
)

type RepositoryManager interface {
	InitSchema(context.Context, *sql.DB) error
	Clients(db dbx.DBTX) clients.Repository
	Phones(db dbx.DBTX) phones.Repository
}
