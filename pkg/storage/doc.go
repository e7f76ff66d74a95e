// Package storage provides the PostgreSQL persistence backend for accounts
// and tasks.
//
// It implements auth.AccountStore and tasks.Store on database/sql with the
// lib/pq driver. Username uniqueness is enforced by a unique index; a
// unique-constraint violation on insert is translated to auth.ErrDuplicateUser
// so the storage layer acts as the authoritative backstop for the
// check-then-create registration race. All other database failures are wrapped
// in *storage.Error and are recovered only at the HTTP boundary.
package storage
