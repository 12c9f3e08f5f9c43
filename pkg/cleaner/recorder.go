package cleaner

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/dataerr"
	"github.com/David-Botos/data-quality/pkg/model"
)

// OperationRecorder persists the cell changes of a cleaning run
type OperationRecorder interface {
	RecordCleaningOperations(ctx context.Context, operations []model.CleaningOperation) error
}

var operationHeader = []string{
	"table_name",
	"column_name",
	"original_value",
	"new_value",
	"row_identifier",
	"cleaning_operation",
	"cleaning_reason",
	"cleaned_at",
}

// CSVRecorder writes cleaning operations to a flat file ledger
type CSVRecorder struct {
	path   string
	logger *zap.Logger
}

// NewCSVRecorder creates a recorder writing to path
func NewCSVRecorder(path string, logger *zap.Logger) (*CSVRecorder, error) {
	if path == "" {
		return nil, errors.New("operations path cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &CSVRecorder{path: path, logger: logger}, nil
}

// RecordCleaningOperations writes every operation to the ledger, replacing
// any previous contents
func (r *CSVRecorder) RecordCleaningOperations(ctx context.Context, operations []model.CleaningOperation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(r.path)
	if err != nil {
		return dataerr.Write(StageName, r.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(operationHeader); err != nil {
		return dataerr.Write(StageName, r.path, fmt.Errorf("failed to write header: %w", err))
	}

	for _, op := range operations {
		original := ""
		if op.OriginalValue != nil {
			original = *op.OriginalValue
		}
		record := []string{
			op.TableName,
			op.ColumnName,
			original,
			op.NewValue,
			op.RowIdentifier,
			op.CleaningOperation,
			op.CleaningReason,
			op.CleanedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return dataerr.Write(StageName, r.path, fmt.Errorf("failed to write operation: %w", err))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return dataerr.Write(StageName, r.path, err)
	}

	r.logger.Info("Recorded cleaning operations",
		zap.String("path", r.path),
		zap.Int("count", len(operations)))
	return nil
}
