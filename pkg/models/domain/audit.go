package domain

import (
	"fmt"
	"strings"
	"time"
)

type TransactionType string

const (
	TxLockCreated    TransactionType = "LOCK_CREATED"
	TxLockApproved   TransactionType = "LOCK_APPROVED"
	TxLockRejected   TransactionType = "LOCK_REJECTED"
	TxReserveCreated TransactionType = "LOCK_RESERVE_CREATED"
	TxMintCompleted  TransactionType = "MINT_COMPLETED"
	TxUSDInjection   TransactionType = "USD_INJECTION"
	TxCertification  TransactionType = "CERTIFICATION"
)

// TransactionTypes lists the closed set of ledger event kinds in presentation order.
var TransactionTypes = []TransactionType{
	TxLockCreated,
	TxLockApproved,
	TxLockRejected,
	TxReserveCreated,
	TxMintCompleted,
	TxUSDInjection,
	TxCertification,
}

const (
	MintedAssetCode  = "VUSD"
	ReserveAssetCode = "USD"
)

type Platform string

const (
	PlatformTreasury Platform = "DCB_TREASURY"
	PlatformMinting  Platform = "LEMX_MINTING"
)

type BlockchainRecord struct {
	TxHash      string
	BlockNumber int64
	Network     string
	ChainID     int64
}

type Signature struct {
	Role      string
	Hash      string
	Timestamp string
}

// AuditTransaction is one ledger event as it appears in the audit report.
// Amount is kept as the source string; parsing happens at aggregation/render time.
type AuditTransaction struct {
	ID                string
	Type              TransactionType
	Timestamp         string
	Amount            string
	Currency          string
	Status            string
	LockID            string
	AuthorizationCode string
	PublicationCode   string
	Actor             string
	Beneficiary       string
	BankName          string
	Blockchain        *BlockchainRecord
	Signatures        []Signature
}

// TxHash returns the recorded transaction hash or "" when the event is not on chain yet.
func (t AuditTransaction) TxHash() string {
	if t.Blockchain == nil {
		return ""
	}
	return t.Blockchain.TxHash
}

func (t AuditTransaction) HasTxHash() bool {
	return t.TxHash() != ""
}

type DateRange struct {
	From string
	To   string
}

func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.From, r.To)
}

// Bounds returns the parsed ends of the range; an end that is empty or unparsable is nil. A bare
// To date covers the whole day.
func (r DateRange) Bounds() (from, to *time.Time) {
	if t, ok := ParseTimestamp(r.From); ok {
		from = &t
	}
	if t, ok := ParseTimestamp(r.To); ok {
		if len(strings.TrimSpace(r.To)) == len(time.DateOnly) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	return from, to
}

// Contains reports whether the timestamp falls inside the range. Open ends match anything and
// timestamps that cannot be parsed are kept.
func (r DateRange) Contains(ts string) bool {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return true
	}
	from, to := r.Bounds()
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

type AuditReportConfig struct {
	Title                 string
	Subtitle              string
	Platform              Platform
	GeneratedBy           string
	DateRange             *DateRange
	IncludeBlockchainData bool
	IncludeSignatures     bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-like shapes ledger events carry.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
