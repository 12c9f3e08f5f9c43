package masking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/dataerr"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// StageName identifies the masker in errors and metrics
const StageName = "mask"

// Masker applies one-way redaction to the PII columns of a table
type Masker struct {
	logger *zap.Logger
}

// NewMasker creates a new Masker
func NewMasker(logger *zap.Logger) (*Masker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Masker{logger: logger}, nil
}

// Mask returns a new table with every PII column masked row by row. Null
// cells pass through. The input table is not modified.
func (m *Masker) Mask(t *table.Table) *table.Table {
	m.logger.Info("Starting PII masking", zap.Int("rowCount", t.Len()))

	out := t.Clone()
	for _, row := range out.Rows {
		for col, fn := range columnMasks {
			v := row.Get(col)
			if v.IsNull() {
				continue
			}
			row.Set(col, table.String(fn(v.Text)))
		}
	}

	m.logger.Info("PII masking completed", zap.Int("rowCount", out.Len()))
	return out
}

// Run masks t and writes the result to dest. MaskedRows counts the rows that
// reached the output, which is less than TotalRows only when the write fails.
func (m *Masker) Run(ctx context.Context, t *table.Table, dest string) (*table.Table, model.MaskingResult, error) {
	result := model.MaskingResult{TotalRows: t.Len()}

	masked := m.Mask(t)

	if err := ctx.Err(); err != nil {
		return nil, result, fmt.Errorf("masking cancelled: %w", err)
	}

	written, err := table.WriteFile(dest, masked)
	result.MaskedRows = written
	if err != nil {
		m.logger.Error("Failed to write masked table",
			zap.String("path", dest),
			zap.Int("maskedRows", written),
			zap.Error(err))
		return nil, result, dataerr.Write(StageName, dest, err)
	}

	m.logger.Info("Wrote masked table",
		zap.String("path", dest),
		zap.Int("totalRows", result.TotalRows),
		zap.Int("maskedRows", result.MaskedRows))

	return masked, result, nil
}

// Comparison is a before/after view of the masked columns for a few rows
type Comparison struct {
	Columns []string
	Before  []table.Row
	After   []table.Row
}

// CompareSample pairs the first n rows of before and after, restricted to the
// masked columns. Rows are matched by source index.
func CompareSample(before, after *table.Table, n int) Comparison {
	cmp := Comparison{Columns: MaskedColumns()}

	byIndex := make(map[int]table.Row, after.Len())
	for _, r := range after.Rows {
		byIndex[r.Index] = r
	}

	for _, r := range before.Rows {
		if len(cmp.Before) >= n {
			break
		}
		masked, ok := byIndex[r.Index]
		if !ok {
			continue
		}
		cmp.Before = append(cmp.Before, project(r, cmp.Columns))
		cmp.After = append(cmp.After, project(masked, cmp.Columns))
	}
	return cmp
}

func project(r table.Row, columns []string) table.Row {
	out := table.NewRow(r.Index)
	for _, c := range columns {
		out.Set(c, r.Get(c))
	}
	return out
}
