package output

import "context"

// TableLister introspects the storage engine for existing table names.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}
