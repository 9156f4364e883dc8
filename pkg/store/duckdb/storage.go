package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const AuditEventsSchema = `
	CREATE TABLE IF NOT EXISTS audit_events (
		id VARCHAR NOT NULL PRIMARY KEY,
		type VARCHAR NOT NULL,
		ts VARCHAR NOT NULL,
		occurred_at TIMESTAMP NULL,
		amount VARCHAR NOT NULL,
		currency VARCHAR,
		status VARCHAR,
		lock_id VARCHAR,
		authorization_code VARCHAR,
		publication_code VARCHAR,
		actor VARCHAR,
		beneficiary VARCHAR,
		bank_name VARCHAR,
		tx_hash VARCHAR NULL,
		block_number BIGINT NULL,
		network VARCHAR NULL,
		chain_id BIGINT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const AuditSignaturesSchema = `
	CREATE TABLE IF NOT EXISTS audit_signatures (
		event_id VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		role VARCHAR,
		hash VARCHAR,
		ts VARCHAR
	);
`

var bootQueries = []string{
	AuditEventsSchema,
	AuditSignaturesSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return fmt.Errorf("boot schema: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", settings.DbPath, err)
	}

	db := sql.OpenDB(c)
	return db, nil
}
