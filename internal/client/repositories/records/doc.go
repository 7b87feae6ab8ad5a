// Package records is the local persistence backend of the roster client.
//
// SQLiteRepository stores records in a single SQLite table created by the
// client migrations. The (reg_number, page_number) pair carries a UNIQUE
// constraint; violations come back as common.ErrDuplicateKey so callers do not
// depend on driver error codes.
//
// Typical usage:
//
//	db, _ := client.InitDatabase(ctx, "roster.db")
//	repo := records.NewSQLiteRepository(db)
//	id, _ := repo.Create(ctx, rec)
//	list, _ := repo.List(ctx)
package records
