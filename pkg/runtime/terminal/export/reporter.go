package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/format"
	"github.com/de-tools/audit-atlas/pkg/report/stats"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  28,
		ValueWidth: 24,
	}
}

// SummaryReport is what the summary command prints.
type SummaryReport struct {
	Title   string
	Period  *domain.DateRange
	Summary stats.Summary
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *SummaryReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"dollars":   format.Dollars,
		"typeLabel": format.TypeLabel,
		"count": func(counts map[domain.TransactionType]int, t domain.TransactionType) int {
			return counts[t]
		},
		"types": func() []domain.TransactionType { return domain.TransactionTypes },
	}

	tmpl := `
{{.Title}}
{{if .Period}}Period: {{or .Period.From "..."}} to {{or .Period.To "..."}}
{{else}}Period: all records
{{end}}
=== Volume ===
{{separator}}
{{formatRow "Transactions" .Summary.Transactions}}
{{formatRow "Total Volume" (dollars .Summary.TotalVolume)}}
{{formatRow "Total Minted" (dollars .Summary.TotalMinted)}}
{{formatRow "Average Transaction" (dollars .Summary.AvgTransaction)}}
{{formatRow "Largest Transaction" (dollars .Summary.MaxTransaction)}}
{{formatRow "Success Rate" (printf "%.1f%%" .Summary.SuccessRate)}}
{{separator}}

=== By Type ===
{{separator}}
{{range types}}{{formatRow (typeLabel .) (count $.Summary.Counts .)}}
{{end}}{{separator}}

=== Verification ===
{{separator}}
{{formatRow "With TX Hash" .Summary.WithTxHash}}
{{formatRow "With Signatures" .Summary.WithSignatures}}
{{formatRow "Total Signatures" .Summary.Signatures}}
{{separator}}
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
