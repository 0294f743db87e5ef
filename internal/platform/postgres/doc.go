// Package postgres provides PostgreSQL implementations of the store
// interfaces, built on database/sql over the pgx driver.
package postgres
