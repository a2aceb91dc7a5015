// Package source defines the capability interfaces between the query
// core and the outside world, plus a SQLite-backed local source used by
// the CLI and integration tests.
//
// The core never talks to a network or a chat platform directly. It
// sees two narrow capabilities:
//
//	Client    — executes a Query, returns one result Page
//	Messenger — posts a rendered Block for display
//
// Production wiring binds these to a remote observation API and a chat
// platform; tests and the CLI bind them to LocalSource and a buffer.
//
// LocalSource compiles a query.Query into parameterized SQL. Every
// generated statement carries a deterministic ORDER BY with an ID
// tiebreaker, so identical queries over identical data always return
// identical pages.
package source
