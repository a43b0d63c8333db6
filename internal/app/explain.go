package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Explain resolves the descriptor and prints every field with the source
// that decided its value.
func (a *App) Explain(ctx context.Context, opts Options) error {
	tracer, done := a.startTracer(opts)
	defer done()

	res, err := a.resolve(ctx, tracer, opts)
	if err != nil {
		return err
	}

	rows, err := explainRows(res)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FIELD", "VALUE", "SOURCE").
		Rows(rows...)

	_, err = fmt.Fprintln(a.stdout, t.String())
	return err
}

// explainRows pairs each provenance entry with the field's JSON value.
func explainRows(res *domain.Resolution) ([][]string, error) {
	raw, err := json.Marshal(res.Descriptor)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrEmitFailed.Error())
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, zerr.Wrap(err, domain.ErrEmitFailed.Error())
	}

	rows := make([][]string, 0, len(res.Provenance))
	for _, name := range res.Fields() {
		rows = append(rows, []string{name, displayValue(fields[name]), res.Provenance[name].String()})
	}
	return rows, nil
}

func displayValue(v json.RawMessage) string {
	if len(v) == 0 {
		return "-"
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}
