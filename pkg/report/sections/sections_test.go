package sections_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/layout"
	"github.com/de-tools/audit-atlas/pkg/report/layout/layouttest"
	"github.com/de-tools/audit-atlas/pkg/report/sections"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fn func(*layout.Context, sections.Input), txs []domain.AuditTransaction) (*layouttest.Recorder, *layout.Context) {
	t.Helper()
	rec := layouttest.NewRecorder()
	ctx := layout.NewContext(rec, theme.DefaultPalette(), layout.A4())
	fn(ctx, sections.Input{
		Transactions: txs,
		Summary:      stats.Aggregate(txs),
		Config:       domain.AuditReportConfig{Title: "Test Report"},
		Brand:        theme.DefaultBranding(),
		ReportID:     "AUDIT-TEST",
		GeneratedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	return rec, ctx
}

func assertWithinLimit(t *testing.T, ctx *layout.Context) {
	t.Helper()
	limit := layout.A4().Limit()
	for _, u := range ctx.Units() {
		assert.LessOrEqual(t, u.Y+u.Height, limit, "%s unit on page %d at y=%.1f", u.Section, u.Page, u.Y)
	}
}

func hashed(n int) []domain.AuditTransaction {
	txs := make([]domain.AuditTransaction, n)
	for i := range txs {
		txs[i] = domain.AuditTransaction{
			ID:                fmt.Sprintf("tx-%d", i),
			Type:              domain.TxLockApproved,
			Timestamp:         "2024-02-01T10:00:00Z",
			Amount:            "1000",
			Currency:          "USD",
			Status:            "approved",
			AuthorizationCode: fmt.Sprintf("AUTH-%03d", i),
			Blockchain: &domain.BlockchainRecord{
				TxHash:      fmt.Sprintf("0x%064d", i),
				BlockNumber: int64(1000 + i),
			},
		}
	}
	return txs
}

func signedPending() domain.AuditTransaction {
	return domain.AuditTransaction{
		ID:                "tx-signed",
		Type:              domain.TxLockCreated,
		Timestamp:         "2024-02-01T10:00:00Z",
		Amount:            "5000",
		Currency:          "USD",
		Status:            "pending",
		AuthorizationCode: "AUTH-SIGNED",
		Signatures: []domain.Signature{
			{Role: "DCB Treasury", Hash: "0xsig-one", Timestamp: "2024-02-01T10:01:00Z"},
			{Role: "Treasury Minting", Hash: "0xsig-two", Timestamp: "2024-02-01T10:02:00Z"},
			{Role: "VUSDMinter Contract", Hash: "0xsig-three"},
		},
	}
}

func TestCover_EmptyLedger(t *testing.T) {
	rec, ctx := render(t, sections.Cover, nil)

	assert.Equal(t, 1, rec.PageCount())
	assert.True(t, rec.HasText("Test Report"))
	assert.True(t, rec.HasText("$0.00"))
	assert.True(t, rec.HasText("100.0%"))
	assert.True(t, rec.HasText("AUDIT-TEST"))
	assert.True(t, rec.HasText("All records"))
	for _, u := range ctx.Units() {
		assert.Equal(t, sections.NameCover, u.Section)
	}
	assertWithinLimit(t, ctx)
}

func TestCover_DefaultTitle(t *testing.T) {
	rec := layouttest.NewRecorder()
	ctx := layout.NewContext(rec, theme.DefaultPalette(), layout.A4())
	sections.Cover(ctx, sections.Input{Brand: theme.DefaultBranding(), Summary: stats.Aggregate(nil)})

	assert.True(t, rec.HasText("AUDIT REPORT"))
	assert.True(t, rec.HasText("LEMONCHAIN BLOCKCHAIN VERIFICATION"))
}

func TestAnalytics_SinglePage(t *testing.T) {
	rec, ctx := render(t, sections.Analytics, hashed(120))

	assert.Equal(t, 1, rec.PageCount())
	assert.Equal(t, 8, rec.CountText("AUTH-0"))
	assert.True(t, rec.HasText("ISO 840"))
	assert.True(t, rec.HasText("Recent Activity Timeline"))
	assertWithinLimit(t, ctx)
}

func TestTransactions(t *testing.T) {
	t.Run("empty ledger renders header and zero footer", func(t *testing.T) {
		rec, ctx := render(t, sections.Transactions, nil)

		assert.Equal(t, 1, rec.PageCount())
		assert.Equal(t, 1, rec.CountText("AUTH CODE"))
		assert.True(t, rec.HasText("Total: 0 transactions"))
		assert.True(t, rec.HasText("Verified on LemonChain: 0"))
		assert.Len(t, ctx.Units(), 3)
	})

	t.Run("malformed amount renders formatted fallback", func(t *testing.T) {
		txs := []domain.AuditTransaction{{
			Type:      domain.TxLockCreated,
			Timestamp: "2024-02-01T10:00:00Z",
			Amount:    "not-a-number",
			Status:    "pending",
		}}
		rec, _ := render(t, sections.Transactions, txs)

		assert.True(t, rec.HasText("$0.00"))
		assert.True(t, rec.HasText("PENDING"))
		assert.True(t, rec.HasText("N/A"))
	})

	t.Run("header repeats on every page", func(t *testing.T) {
		rec, ctx := render(t, sections.Transactions, hashed(100))

		require.Greater(t, rec.PageCount(), 1)
		assert.Equal(t, rec.PageCount(), rec.CountText("AUTH CODE"))
		assert.True(t, rec.HasText("Total: 100 transactions"))
		assert.True(t, rec.HasText("Verified on LemonChain: 100"))
		assertWithinLimit(t, ctx)
	})
}

func TestBlockchain_CapsVerifiedList(t *testing.T) {
	rec, ctx := render(t, sections.Blockchain, hashed(19))

	assert.True(t, rec.HasText("Verified Transactions (19)"))
	assert.Equal(t, 18, rec.CountText("Block: "))
	assert.True(t, rec.HasText("...and 1 more verified transactions"))
	assertWithinLimit(t, ctx)
}

func TestBlockchain_SkipsUnhashed(t *testing.T) {
	txs := append(hashed(2), signedPending())
	rec, _ := render(t, sections.Blockchain, txs)

	assert.True(t, rec.HasText("Verified Transactions (2)"))
	assert.Equal(t, 2, rec.CountText("Block: "))
	assert.Zero(t, rec.CountText("more verified transactions"))
}

func TestTraceability_PendingCardWithSignatures(t *testing.T) {
	rec, ctx := render(t, sections.Traceability, []domain.AuditTransaction{signedPending()})

	assert.True(t, rec.HasText("Pending blockchain confirmation"))
	assert.True(t, rec.HasText("SIGNATURES (3):"))
	assert.Equal(t, 3, rec.CountText("0xsig-"))
	assert.True(t, rec.HasText("1. DCB Treasury:"))
	assert.True(t, rec.HasText("3. VUSDMinter Contract:"))
	assert.Zero(t, rec.CountText("4. "))

	var card layout.Placement
	for _, u := range ctx.Units() {
		if u.Height > 40 {
			card = u
		}
	}
	assert.Equal(t, 38.0+3*6, card.Height)
}

func TestTraceability_FooterOnlyWhenItFits(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		rec, _ := render(t, sections.Traceability, hashed(4))
		assert.Equal(t, 1, rec.PageCount())
		assert.True(t, rec.HasText("Total Traced: 4 transactions"))
	})

	t.Run("omitted without a new page", func(t *testing.T) {
		rec, ctx := render(t, sections.Traceability, hashed(5))
		assert.Equal(t, 1, rec.PageCount())
		assert.Zero(t, rec.CountText("Total Traced"))
		assertWithinLimit(t, ctx)
	})
}

func TestTraceability_LongSignatureListContinues(t *testing.T) {
	tx := signedPending()
	tx.Signatures = nil
	for i := 0; i < 50; i++ {
		tx.Signatures = append(tx.Signatures, domain.Signature{Role: "Treasury Minting", Hash: fmt.Sprintf("0xsig-%02d", i)})
	}
	rec, ctx := render(t, sections.Traceability, []domain.AuditTransaction{tx})

	assert.Equal(t, 50, rec.CountText("0xsig-"))
	assert.True(t, rec.HasText("#1 AUTH-SIGNED (cont.)"))
	assert.True(t, rec.HasText("39. Treasury Minting:"))
	assert.True(t, rec.HasText("50. Treasury Minting:"))
	// the card does not fit below the info box and the continuation does not fit below the card
	assert.Equal(t, 3, rec.PageCount())
	assertWithinLimit(t, ctx)
}

func TestSignatures(t *testing.T) {
	t.Run("auth code on first row of a group only", func(t *testing.T) {
		rec, ctx := render(t, sections.Signatures, []domain.AuditTransaction{signedPending()})

		assert.Equal(t, 3, rec.CountText("0xsig-"))
		assert.Equal(t, 1, rec.CountText("AUTH-SIGNED"))
		assert.True(t, rec.HasText("Total Signatures: 3"))
		assert.True(t, rec.HasText("Avg Signatures/TX: 3.0"))
		assert.True(t, rec.HasText("N/A"))
		assertWithinLimit(t, ctx)
	})

	t.Run("nothing signed", func(t *testing.T) {
		rec, _ := render(t, sections.Signatures, hashed(3))

		assert.True(t, rec.HasText("No signatures recorded yet"))
		assert.Zero(t, rec.CountText("SIGNATURE HASH"))
	})

	t.Run("header repeats across pages", func(t *testing.T) {
		var txs []domain.AuditTransaction
		for i := 0; i < 30; i++ {
			tx := signedPending()
			tx.AuthorizationCode = fmt.Sprintf("AUTH-S%02d", i)
			txs = append(txs, tx)
		}
		rec, ctx := render(t, sections.Signatures, txs)

		require.Greater(t, rec.PageCount(), 1)
		assert.Equal(t, rec.PageCount(), rec.CountText("SIGNATURE HASH"))
		assert.Equal(t, 90, rec.CountText("0xsig-"))
		assertWithinLimit(t, ctx)
	})

	t.Run("row shading alternates across groups", func(t *testing.T) {
		signed := func(id string) domain.AuditTransaction {
			tx := signedPending()
			tx.ID = id
			tx.Signatures = tx.Signatures[:1]
			return tx
		}
		txs := []domain.AuditTransaction{signed("tx-a"), hashed(1)[0], signed("tx-b")}
		rec, _ := render(t, sections.Signatures, txs)

		p := theme.DefaultPalette()
		even := [3]int{p.Bg2.R, p.Bg2.G, p.Bg2.B}
		odd := [3]int{p.Bg3.R, p.Bg3.G, p.Bg3.B}
		var fills [][3]int
		for _, op := range rec.Ops {
			if op.Kind == "rect" && op.H == 7 && op.W == layout.A4().ContentWidth() &&
				(op.Fill == even || op.Fill == odd) {
				fills = append(fills, op.Fill)
			}
		}

		require.GreaterOrEqual(t, len(fills), 2)
		assert.Equal(t, [][3]int{even, odd}, fills[len(fills)-2:])
	})
}

func TestRenderers_Deterministic(t *testing.T) {
	txs := append(hashed(60), signedPending())
	for _, fn := range []func(*layout.Context, sections.Input){
		sections.Traceability, sections.Transactions, sections.Blockchain, sections.Signatures,
	} {
		_, first := render(t, fn, txs)
		_, second := render(t, fn, txs)
		assert.Equal(t, first.Units(), second.Units())
	}
}
