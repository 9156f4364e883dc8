package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/audit-atlas/pkg/models/store"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func ptr[T any](v T) *T { return &v }

func eventRow(id, ts string, occurred *time.Time, sigs int) store.AuditEventRow {
	row := store.AuditEventRow{
		ID:                id,
		Type:              "LOCK_APPROVED",
		Timestamp:         ts,
		OccurredAt:        occurred,
		Amount:            "1500.00",
		Currency:          "USD",
		Status:            "approved",
		AuthorizationCode: "AUTH-" + id,
	}
	for i := 0; i < sigs; i++ {
		row.Signatures = append(row.Signatures, store.SignatureRow{
			EventID:  id,
			Position: i,
			Role:     fmt.Sprintf("role-%d", i),
			Hash:     fmt.Sprintf("0x%s%d", id, i),
		})
	}
	return row
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.ErrorIs(t, err, ErrNilDB)
		assert.Nil(t, s)
	})
}

func TestStore_AddAndList(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	jan := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	chained := eventRow("e2", "2025-02-10T12:00:00Z", &feb, 3)
	chained.TxHash = ptr("0xabc")
	chained.BlockNumber = ptr(int64(42))
	chained.Network = ptr("LemonChain")
	chained.ChainID = ptr(int64(1006))

	rows := []store.AuditEventRow{
		chained,
		eventRow("e1", "2025-01-10T12:00:00Z", &jan, 0),
		eventRow("e3", "sometime", nil, 1),
	}
	require.NoError(t, f.store.Add(ctx, rows))

	t.Run("list all in time order", func(t *testing.T) {
		got, err := f.store.List(ctx, nil, nil)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, []string{"e1", "e2", "e3"}, []string{got[0].ID, got[1].ID, got[2].ID})
		assert.Nil(t, got[0].TxHash)
		assert.Empty(t, got[0].Signatures)
		assert.Equal(t, "0xabc", *got[1].TxHash)
		assert.Equal(t, int64(1006), *got[1].ChainID)
		require.Len(t, got[1].Signatures, 3)
		assert.Equal(t, "role-2", got[1].Signatures[2].Role)
		assert.Nil(t, got[2].OccurredAt)
		assert.Equal(t, "sometime", got[2].Timestamp)
	})

	t.Run("range keeps unparsable timestamps", func(t *testing.T) {
		from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		got, err := f.store.List(ctx, &from, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "e2", got[0].ID)
		assert.Equal(t, "e3", got[1].ID)
		assert.Len(t, got[1].Signatures, 1)
	})

	t.Run("re-import replaces signatures", func(t *testing.T) {
		again := eventRow("e2", "2025-02-10T12:00:00Z", &feb, 1)
		again.Status = "completed"
		require.NoError(t, f.store.Add(ctx, []store.AuditEventRow{again}))

		got, err := f.store.List(ctx, &feb, &feb)
		require.NoError(t, err)
		var e2 store.AuditEventRow
		for _, r := range got {
			if r.ID == "e2" {
				e2 = r
			}
		}
		assert.Equal(t, "completed", e2.Status)
		assert.Len(t, e2.Signatures, 1)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := f.store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Events)
		require.NotNil(t, stats.FirstTime)
		assert.Equal(t, jan.Unix(), stats.FirstTime.Unix())
		assert.Equal(t, feb.Unix(), stats.LastTime.Unix())
	})
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("empty rows", func(t *testing.T) {
		f := setupFixture(t)
		assert.NoError(t, f.store.Add(ctx, nil))
	})

	t.Run("missing id", func(t *testing.T) {
		f := setupFixture(t)
		err := f.store.Add(ctx, []store.AuditEventRow{eventRow("", "", nil, 0)})
		assert.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("joins the context transaction", func(t *testing.T) {
		f := setupFixture(t)
		tx, err := f.db.BeginTx(ctx, nil)
		require.NoError(t, err)

		err = f.store.Add(duckdb.WithTransaction(ctx, tx), []store.AuditEventRow{eventRow("t1", "", nil, 2)})
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		got, err := f.store.List(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_List_QueryShape(t *testing.T) {
	// Given: a sqlmock DB returning one event and its signature
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	where := " WHERE occurred_at IS NULL OR (occurred_at >= ? AND occurred_at <= ?)"

	cols := []string{
		"id", "type", "ts", "occurred_at", "amount", "currency", "status", "lock_id",
		"authorization_code", "publication_code", "actor", "beneficiary", "bank_name",
		"tx_hash", "block_number", "network", "chain_id",
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectEventsQuery+where+" ORDER BY occurred_at NULLS LAST, id")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"e1", "MINT_COMPLETED", "2025-01-05T00:00:00Z", from.AddDate(0, 0, 4), "10", "VUSD", "completed", nil,
			"AUTH-1", nil, nil, nil, nil,
			"0xabc", int64(9), nil, nil,
		))
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf(selectSignaturesQuery, where))).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "seq", "role", "hash", "ts"}).
			AddRow("e1", 0, "DCB Treasury", "0x1", nil))

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	got, err := s.List(context.Background(), &from, &to)

	// Then
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "VUSD", got[0].Currency)
	assert.Empty(t, got[0].LockID)
	assert.Equal(t, int64(9), *got[0].BlockNumber)
	assert.Nil(t, got[0].Network)
	require.Len(t, got[0].Signatures, 1)
	assert.Equal(t, "DCB Treasury", got[0].Signatures[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Add_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("constraint violated")
	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta(upsertEventQuery)).
		ExpectExec().
		WillReturnError(boom)
	mock.ExpectRollback()

	s, err := NewStore(db)
	require.NoError(t, err)

	err = s.Add(context.Background(), []store.AuditEventRow{eventRow("e1", "", nil, 0)})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
