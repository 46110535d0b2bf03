// Package records is the Record Store: persistence for user records
// (full name, address, signature image bytes) in a single "users" table.
//
// # Operations
//
// Every Repository method issues exactly one SQL statement. There are no
// transactions, retries or caches; ListAll reads the table afresh on every
// call and returns rows in the engine's default scan order.
//
// Update and Delete on an id that does not exist affect zero rows. That is
// not an error: the methods report found == false and a nil error, so a
// second Delete of the same id is a harmless no-op.
//
// # Backends
//
//   - SQLiteRepository: modernc.org/sqlite, "?" placeholders
//   - PostgresRepository: pgx stdlib driver, "$n" placeholders
//
// Both run over a dbx.DBTX, so they work with *sql.DB or *sql.Tx.
//
// Typical usage
//
//	repo := records.NewSQLiteRepository(db)
//	id, _ := repo.Create(ctx, "Alice", "1 Main St", png)
//	found, _ := repo.Update(ctx, &models.Record{ID: id, FullName: "Alice B.", Address: "2 Oak St", Signature: png2})
//	all, _ := repo.ListAll(ctx)
//	found, _ = repo.Delete(ctx, id)
package records
