package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"manuscript-tracker/internal/services"
)

// WriteCSV writes one row per chapter of the report.
func WriteCSV(w io.Writer, report *services.Report) error {
	writer := csv.NewWriter(w)

	header := []string{"Ordinal", "Title", "Status", "Word Count", "Target", "Progress", "Tasks Done", "Tasks Total", "Updated At"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Chapters {
		var progress, updated string
		if row.Fraction != nil {
			progress = strconv.FormatFloat(*row.Fraction, 'f', 4, 64)
		}
		if row.UpdatedAt != nil {
			updated = row.UpdatedAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			strconv.Itoa(row.Ordinal),
			row.Title,
			string(row.Status),
			strconv.Itoa(row.WordCount),
			row.Target.String(),
			progress,
			strconv.Itoa(row.TasksDone),
			strconv.Itoa(row.TasksTotal),
			updated,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
