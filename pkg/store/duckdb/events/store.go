package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
)

var (
	ErrNilDB     = errors.New("database connection is nil")
	ErrMissingID = errors.New("audit event has no id")
)

const (
	upsertEventQuery = `
		INSERT INTO audit_events (
			id, type, ts, occurred_at, amount, currency, status, lock_id,
			authorization_code, publication_code, actor, beneficiary, bank_name,
			tx_hash, block_number, network, chain_id
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			ts = excluded.ts,
			occurred_at = excluded.occurred_at,
			amount = excluded.amount,
			currency = excluded.currency,
			status = excluded.status,
			lock_id = excluded.lock_id,
			authorization_code = excluded.authorization_code,
			publication_code = excluded.publication_code,
			actor = excluded.actor,
			beneficiary = excluded.beneficiary,
			bank_name = excluded.bank_name,
			tx_hash = excluded.tx_hash,
			block_number = excluded.block_number,
			network = excluded.network,
			chain_id = excluded.chain_id`

	deleteSignaturesQuery = `DELETE FROM audit_signatures WHERE event_id = ?`

	insertSignatureQuery = `INSERT INTO audit_signatures (event_id, seq, role, hash, ts) VALUES (?, ?, ?, ?, ?)`

	selectEventsQuery = `
		SELECT id, type, ts, occurred_at, amount, currency, status, lock_id,
			authorization_code, publication_code, actor, beneficiary, bank_name,
			tx_hash, block_number, network, chain_id
		FROM audit_events`

	selectSignaturesQuery = `
		SELECT event_id, seq, role, hash, ts
		FROM audit_signatures
		WHERE event_id IN (SELECT id FROM audit_events%s)
		ORDER BY event_id, seq`

	statsQuery = `SELECT COUNT(*), MIN(occurred_at), MAX(occurred_at) FROM audit_events`
)

// Store persists ledger events and their signatures in DuckDB. Add joins the transaction carried
// by the context (duckdb.WithTransaction) or opens its own.
type Store interface {
	Add(ctx context.Context, rows []store.AuditEventRow) error
	List(ctx context.Context, from, to *time.Time) ([]store.AuditEventRow, error)
	Stats(ctx context.Context) (*store.EventStats, error)
}

type eventStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &eventStore{db: db}, nil
}

func (s *eventStore) Add(ctx context.Context, rows []store.AuditEventRow) (err error) {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == "" {
			return ErrMissingID
		}
	}

	tx := duckdb.GetTransaction(ctx)
	if tx == nil {
		tx, err = s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if cerr := tx.Commit(); cerr != nil {
				err = fmt.Errorf("commit events: %w", cerr)
			}
		}()
	}

	upsert, err := tx.PrepareContext(ctx, upsertEventQuery)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer upsert.Close()

	for _, row := range rows {
		_, err = upsert.ExecContext(ctx,
			row.ID,
			row.Type,
			row.Timestamp,
			row.OccurredAt,
			row.Amount,
			row.Currency,
			row.Status,
			row.LockID,
			row.AuthorizationCode,
			row.PublicationCode,
			row.Actor,
			row.Beneficiary,
			row.BankName,
			row.TxHash,
			row.BlockNumber,
			row.Network,
			row.ChainID,
		)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", row.ID, err)
		}

		if _, err = tx.ExecContext(ctx, deleteSignaturesQuery, row.ID); err != nil {
			return fmt.Errorf("clear signatures of %s: %w", row.ID, err)
		}
		for _, sig := range row.Signatures {
			if _, err = tx.ExecContext(ctx, insertSignatureQuery, row.ID, sig.Position, sig.Role, sig.Hash, sig.Timestamp); err != nil {
				return fmt.Errorf("insert signature of %s: %w", row.ID, err)
			}
		}
	}

	return nil
}

// rangeFilter builds the WHERE clause for an optional occurred_at window. Events whose timestamp
// could not be parsed are always included.
func rangeFilter(from, to *time.Time) (string, []any) {
	var conds []string
	var args []any
	if from != nil {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if to != nil {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE occurred_at IS NULL OR (" + strings.Join(conds, " AND ") + ")", args
}

func (s *eventStore) List(ctx context.Context, from, to *time.Time) ([]store.AuditEventRow, error) {
	where, args := rangeFilter(from, to)

	rows, err := s.db.QueryContext(ctx, selectEventsQuery+where+" ORDER BY occurred_at NULLS LAST, id", args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	events, err := scanEventRows(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	sigRows, err := s.db.QueryContext(ctx, fmt.Sprintf(selectSignaturesQuery, where), args...)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	signatures, err := scanSignatureRows(sigRows)
	if err != nil {
		return nil, err
	}

	for i := range events {
		events[i].Signatures = signatures[events[i].ID]
	}
	return events, nil
}

func (s *eventStore) Stats(ctx context.Context) (*store.EventStats, error) {
	var (
		total       int64
		first, last sql.NullTime
	)
	if err := s.db.QueryRowContext(ctx, statsQuery).Scan(&total, &first, &last); err != nil {
		return nil, fmt.Errorf("get event stats: %w", err)
	}
	res := &store.EventStats{Events: total}
	if first.Valid {
		t := first.Time
		res.FirstTime = &t
	}
	if last.Valid {
		t := last.Time
		res.LastTime = &t
	}
	return res, nil
}

func scanEventRows(rows *sql.Rows) ([]store.AuditEventRow, error) {
	defer rows.Close()

	events := make([]store.AuditEventRow, 0)
	for rows.Next() {
		var (
			row                                         store.AuditEventRow
			occurredAt                                  sql.NullTime
			currency, status, lockID, authCode, pubCode sql.NullString
			actor, beneficiary, bankName                sql.NullString
			txHash, network                             sql.NullString
			blockNumber, chainID                        sql.NullInt64
		)
		if err := rows.Scan(
			&row.ID, &row.Type, &row.Timestamp, &occurredAt, &row.Amount,
			&currency, &status, &lockID, &authCode, &pubCode, &actor, &beneficiary, &bankName,
			&txHash, &blockNumber, &network, &chainID,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		if occurredAt.Valid {
			t := occurredAt.Time.UTC()
			row.OccurredAt = &t
		}
		row.Currency = currency.String
		row.Status = status.String
		row.LockID = lockID.String
		row.AuthorizationCode = authCode.String
		row.PublicationCode = pubCode.String
		row.Actor = actor.String
		row.Beneficiary = beneficiary.String
		row.BankName = bankName.String
		row.TxHash = nullString(txHash)
		row.Network = nullString(network)
		row.BlockNumber = nullInt(blockNumber)
		row.ChainID = nullInt(chainID)

		events = append(events, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanSignatureRows(rows *sql.Rows) (map[string][]store.SignatureRow, error) {
	defer rows.Close()

	out := make(map[string][]store.SignatureRow)
	for rows.Next() {
		var (
			sig            store.SignatureRow
			role, hash, ts sql.NullString
		)
		if err := rows.Scan(&sig.EventID, &sig.Position, &role, &hash, &ts); err != nil {
			return nil, fmt.Errorf("scan signature: %w", err)
		}
		sig.Role = role.String
		sig.Hash = hash.String
		sig.Timestamp = ts.String
		out[sig.EventID] = append(out[sig.EventID], sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signatures: %w", err)
	}
	return out, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
