package terminal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventsJSON = `{"events": [
	{"id": "e1", "type": "LOCK_CREATED", "timestamp": "2025-01-05T10:00:00Z", "amount": "1000", "status": "pending"},
	{"id": "e2", "type": "LOCK_APPROVED", "timestamp": "2025-01-06T10:00:00Z", "amount": "1000", "status": "approved",
	 "authorizationCode": "AUTH-1",
	 "blockchain": {"txHash": "0xabc", "blockNumber": 10, "network": "LemonChain", "chainId": 1006},
	 "signatures": [{"role": "DCB Treasury", "hash": "0x1"}]},
	{"id": "e3", "type": "MINT_COMPLETED", "timestamp": "2025-02-01T10:00:00Z", "amount": "1000", "status": "completed"}
]}`

const profiles = `
[january]
title = JANUARY AUDIT
from = 2025-01-01
to = 2025-01-31
`

type fixture struct {
	dir      string
	events   string
	profiles string
	db       string
}

func setupFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		events:   filepath.Join(dir, "events.json"),
		profiles: filepath.Join(dir, ".auditcfg"),
		db:       filepath.Join(dir, "audit.db"),
	}
	require.NoError(t, os.WriteFile(f.events, []byte(eventsJSON), 0o600))
	require.NoError(t, os.WriteFile(f.profiles, []byte(profiles), 0o600))
	return f
}

func run(t *testing.T, settings *config.Settings, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := NewCLI(Options{Settings: settings, Output: &out})
	cli.SetArgs(args)
	err := cli.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_ImportSummaryGenerate(t *testing.T) {
	f := setupFixture(t)
	settings := &config.Settings{DbPath: f.db, Profiles: f.profiles, OutputDir: filepath.Join(f.dir, "out")}

	out, err := run(t, settings, "import", "--input", f.events)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 events into "+f.db)

	t.Run("summary from the store", func(t *testing.T) {
		out, err := run(t, settings, "summary", "--from", "2025-01-01", "--to", "2025-01-31")
		require.NoError(t, err)
		assert.Contains(t, out, "Period: 2025-01-01 to 2025-01-31")
		assert.Contains(t, out, "$2,000.00")
		assert.Regexp(t, `\| Transactions\s+\|\s+2 \|`, out)
		assert.Regexp(t, `\| With TX Hash\s+\|\s+1 \|`, out)
	})

	t.Run("generate with a profile", func(t *testing.T) {
		out, err := run(t, settings, "generate", "--profile", "january")
		require.NoError(t, err)
		assert.Contains(t, out, "Audit report with 2 transactions written to ")

		matches, err := filepath.Glob(filepath.Join(f.dir, "out", "AUDIT_*.pdf"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("profiles", func(t *testing.T) {
		out, err := run(t, settings, "profiles")
		require.NoError(t, err)
		assert.Equal(t, "Profiles in "+f.profiles+":\njanuary\n", out)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := run(t, settings, "generate", "--profile", "march")
		assert.ErrorIs(t, err, config.ErrProfileNotFound)
	})
}

func TestCLI_SummaryFromInputFile(t *testing.T) {
	f := setupFixture(t)

	out, err := run(t, nil, "summary", "--input", f.events)

	require.NoError(t, err)
	assert.Contains(t, out, "Period: all records")
	assert.Regexp(t, `\| Transactions\s+\|\s+3 \|`, out)
	assert.Regexp(t, `\| Mint Completed\s+\|\s+1 \|`, out)
	assert.Contains(t, out, "100.0%")
}

func TestCLI_Errors(t *testing.T) {
	f := setupFixture(t)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "import needs input", args: []string{"import"}, errMsg: `required flag(s) "input" not set`},
		{name: "bad date", args: []string{"summary", "--input", f.events, "--from", "Jan"}, errMsg: "invalid 'from' date format"},
		{name: "missing input file", args: []string{"summary", "--input", filepath.Join(f.dir, "nope.json")}, errMsg: "open events file"},
		{name: "profiles file required", args: []string{"profiles"}, errMsg: "no profiles file given"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, nil, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestCLI_OpenerFailure(t *testing.T) {
	f := setupFixture(t)
	boom := errors.New("locked")
	var out bytes.Buffer
	cli := NewCLI(Options{
		Output: &out,
		Opener: func(context.Context, commands.Source) (audit.Service, func() error, error) {
			return nil, nil, boom
		},
	})
	cli.SetArgs([]string{"import", "--input", f.events, "--db", filepath.Join(f.dir, "x.db")})

	err := cli.Execute()

	assert.ErrorIs(t, err, boom)
	assert.False(t, strings.Contains(out.String(), "Imported"))
}
