package store

import "time"

// AuditEventRow is one row of audit_events. OccurredAt is the parsed Timestamp, nil when the
// source value could not be parsed; Timestamp keeps the source text.
type AuditEventRow struct {
	ID                string
	Type              string
	Timestamp         string
	OccurredAt        *time.Time
	Amount            string
	Currency          string
	Status            string
	LockID            string
	AuthorizationCode string
	PublicationCode   string
	Actor             string
	Beneficiary       string
	BankName          string
	TxHash            *string
	BlockNumber       *int64
	Network           *string
	ChainID           *int64
	Signatures        []SignatureRow
}

type SignatureRow struct {
	EventID   string
	Position  int
	Role      string
	Hash      string
	Timestamp string
}

// EventStats summarises the stored ledger.
type EventStats struct {
	Events    int64
	FirstTime *time.Time
	LastTime  *time.Time
}
