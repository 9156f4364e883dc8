package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
)

const (
	defaultAmount = "0"
	defaultStatus = "pending"

	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// ConvertToAuditTransaction maps a loosely typed event onto the report model. It is total: every
// missing field gets its default, and now stands in for a missing timestamp.
func ConvertToAuditTransaction(e api.AuditEvent, now time.Time) domain.AuditTransaction {
	tx := domain.AuditTransaction{
		ID:                e.ID.String(),
		Type:              domain.TransactionType(orDefault(e.Type.String(), string(domain.TxLockCreated))),
		Timestamp:         orDefault(e.Timestamp.String(), now.UTC().Format(isoMillis)),
		Amount:            orDefault(e.Amount.String(), defaultAmount),
		Currency:          currencyFor(e.Type.String()),
		Status:            orDefault(e.Status.String(), defaultStatus),
		LockID:            e.LockID.String(),
		AuthorizationCode: e.AuthorizationCode.String(),
		PublicationCode:   e.PublicationCode.String(),
		Actor:             e.Actor.String(),
	}

	if e.Details != nil {
		tx.Beneficiary = e.Details.Beneficiary.String()
		tx.BankName = e.Details.BankName.String()
	}

	if e.Blockchain != nil {
		tx.Blockchain = &domain.BlockchainRecord{
			TxHash:      e.Blockchain.TxHash.String(),
			BlockNumber: int64(e.Blockchain.BlockNumber),
			Network:     e.Blockchain.Network.String(),
			ChainID:     int64(e.Blockchain.ChainID),
		}
	}

	if len(e.Signatures) > 0 {
		tx.Signatures = make([]domain.Signature, 0, len(e.Signatures))
		for _, s := range e.Signatures {
			tx.Signatures = append(tx.Signatures, domain.Signature{
				Role:      s.Role.String(),
				Hash:      s.Hash.String(),
				Timestamp: s.Timestamp.String(),
			})
		}
	}

	return tx
}

func ConvertToAuditTransactions(events []api.AuditEvent, now time.Time) []domain.AuditTransaction {
	txs := make([]domain.AuditTransaction, 0, len(events))
	for _, e := range events {
		txs = append(txs, ConvertToAuditTransaction(e, now))
	}
	return txs
}

// currencyFor infers the currency from the raw event type.
func currencyFor(eventType string) string {
	if domain.TransactionType(eventType) == domain.TxMintCompleted {
		return domain.MintedAssetCode
	}
	return domain.ReserveAssetCode
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DecodeAuditEvents reads either a JSON array of events or an object with an "events" array.
// Malformed JSON is an error; malformed events inside valid JSON are not.
func DecodeAuditEvents(r io.Reader) ([]api.AuditEvent, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	var events []api.AuditEvent
	if err := json.Unmarshal(raw, &events); err == nil {
		return events, nil
	}

	var envelope struct {
		Events []api.AuditEvent `json:"events"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode events: expected an array or an object with events: %w", err)
	}
	return envelope.Events, nil
}

func MapReportConfigApiToDomain(c api.ReportConfig) domain.AuditReportConfig {
	cfg := domain.AuditReportConfig{
		Title:                 c.Title,
		Subtitle:              c.Subtitle,
		Platform:              domain.Platform(c.Platform),
		GeneratedBy:           c.GeneratedBy,
		IncludeBlockchainData: c.IncludeBlockchainData,
		IncludeSignatures:     c.IncludeSignatures,
	}
	if c.DateRange != nil {
		cfg.DateRange = &domain.DateRange{From: c.DateRange.From, To: c.DateRange.To}
	}
	return cfg
}

func MapReportConfigDomainToApi(c domain.AuditReportConfig) api.ReportConfig {
	res := api.ReportConfig{
		Title:                 c.Title,
		Subtitle:              c.Subtitle,
		Platform:              string(c.Platform),
		GeneratedBy:           c.GeneratedBy,
		IncludeBlockchainData: c.IncludeBlockchainData,
		IncludeSignatures:     c.IncludeSignatures,
	}
	if c.DateRange != nil {
		res.DateRange = &api.DateRange{From: c.DateRange.From, To: c.DateRange.To}
	}
	return res
}

func MapSummaryDomainToApi(s stats.Summary) api.AuditSummary {
	res := api.AuditSummary{
		Transactions:   s.Transactions,
		Counts:         make(map[string]int, len(s.Counts)),
		TotalVolume:    s.TotalVolume.StringFixed(2),
		TotalMinted:    s.TotalMinted.StringFixed(2),
		AvgTransaction: s.AvgTransaction.StringFixed(2),
		MaxTransaction: s.MaxTransaction.StringFixed(2),
		SuccessRate:    s.SuccessRate,
		WithTxHash:     s.WithTxHash,
		WithSignatures: s.WithSignatures,
		Signatures:     s.Signatures,
	}
	for k, v := range s.Counts {
		res.Counts[string(k)] = v
	}
	return res
}

func MapAuditTransactionDomainToStore(tx domain.AuditTransaction) store.AuditEventRow {
	row := store.AuditEventRow{
		ID:                tx.ID,
		Type:              string(tx.Type),
		Timestamp:         tx.Timestamp,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		Status:            tx.Status,
		LockID:            tx.LockID,
		AuthorizationCode: tx.AuthorizationCode,
		PublicationCode:   tx.PublicationCode,
		Actor:             tx.Actor,
		Beneficiary:       tx.Beneficiary,
		BankName:          tx.BankName,
	}
	if t, ok := domain.ParseTimestamp(tx.Timestamp); ok {
		t = t.UTC()
		row.OccurredAt = &t
	}
	if b := tx.Blockchain; b != nil {
		row.TxHash = &b.TxHash
		row.BlockNumber = &b.BlockNumber
		row.Network = &b.Network
		row.ChainID = &b.ChainID
	}
	for i, s := range tx.Signatures {
		row.Signatures = append(row.Signatures, store.SignatureRow{
			EventID:   tx.ID,
			Position:  i,
			Role:      s.Role,
			Hash:      s.Hash,
			Timestamp: s.Timestamp,
		})
	}
	return row
}

func MapStoreAuditEventToDomain(row store.AuditEventRow) domain.AuditTransaction {
	tx := domain.AuditTransaction{
		ID:                row.ID,
		Type:              domain.TransactionType(row.Type),
		Timestamp:         row.Timestamp,
		Amount:            row.Amount,
		Currency:          row.Currency,
		Status:            row.Status,
		LockID:            row.LockID,
		AuthorizationCode: row.AuthorizationCode,
		PublicationCode:   row.PublicationCode,
		Actor:             row.Actor,
		Beneficiary:       row.Beneficiary,
		BankName:          row.BankName,
	}
	if row.TxHash != nil || row.BlockNumber != nil || row.Network != nil || row.ChainID != nil {
		tx.Blockchain = &domain.BlockchainRecord{
			TxHash:      deref(row.TxHash),
			BlockNumber: deref(row.BlockNumber),
			Network:     deref(row.Network),
			ChainID:     deref(row.ChainID),
		}
	}
	for _, s := range row.Signatures {
		tx.Signatures = append(tx.Signatures, domain.Signature{Role: s.Role, Hash: s.Hash, Timestamp: s.Timestamp})
	}
	return tx
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
