// Package stats reduces a ledger transaction list into the figures shown on the audit report.
package stats

import (
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Transactions int
	Counts       map[domain.TransactionType]int

	LockCreated    int
	LockApproved   int
	LockRejected   int
	ReserveCreated int
	MintCompleted  int
	USDInjection   int

	// TotalVolume is the USD committed into the reserve pipeline (created + approved locks).
	TotalVolume    decimal.Decimal
	TotalMinted    decimal.Decimal
	AvgTransaction decimal.Decimal
	MaxTransaction decimal.Decimal
	SuccessRate    float64

	WithTxHash     int
	WithSignatures int
	Signatures     int
}

// Aggregate is a pure function of txs. Invalid amounts count as zero and are left out of the
// average and maximum, but the record still counts towards its type.
func Aggregate(txs []domain.AuditTransaction) Summary {
	s := Summary{
		Transactions:   len(txs),
		Counts:         make(map[domain.TransactionType]int, len(domain.TransactionTypes)),
		TotalVolume:    decimal.Zero,
		TotalMinted:    decimal.Zero,
		AvgTransaction: decimal.Zero,
		MaxTransaction: decimal.Zero,
	}

	positive := 0
	sum := decimal.Zero

	for _, tx := range txs {
		s.Counts[tx.Type]++

		amount, _ := format.ParseAmount(tx.Amount)
		switch tx.Type {
		case domain.TxLockCreated, domain.TxLockApproved:
			s.TotalVolume = s.TotalVolume.Add(amount)
		case domain.TxMintCompleted:
			s.TotalMinted = s.TotalMinted.Add(amount)
		}

		if amount.IsPositive() {
			positive++
			sum = sum.Add(amount)
			if amount.GreaterThan(s.MaxTransaction) {
				s.MaxTransaction = amount
			}
		}

		if tx.HasTxHash() {
			s.WithTxHash++
		}
		if len(tx.Signatures) > 0 {
			s.WithSignatures++
			s.Signatures += len(tx.Signatures)
		}
	}

	s.LockCreated = s.Counts[domain.TxLockCreated]
	s.LockApproved = s.Counts[domain.TxLockApproved]
	s.LockRejected = s.Counts[domain.TxLockRejected]
	s.ReserveCreated = s.Counts[domain.TxReserveCreated]
	s.MintCompleted = s.Counts[domain.TxMintCompleted]
	s.USDInjection = s.Counts[domain.TxUSDInjection]

	if positive > 0 {
		s.AvgTransaction = sum.Div(decimal.NewFromInt(int64(positive)))
	}
	s.SuccessRate = successRate(s.LockApproved, s.LockRejected, s.MintCompleted)

	return s
}

// successRate is 100 while nothing has been processed yet.
func successRate(approved, rejected, minted int) float64 {
	processed := approved + rejected + minted
	if processed == 0 {
		return 100
	}
	return float64(approved+minted) / float64(processed) * 100
}

// AvgSignatures is the mean signature count over signed transactions, 0 when none are signed.
func (s Summary) AvgSignatures() float64 {
	if s.WithSignatures == 0 {
		return 0
	}
	return float64(s.Signatures) / float64(s.WithSignatures)
}
