package export

import (
	"encoding/csv"
	"io"

	"qtholidays-service/internal/usecase/aggregation"

	"github.com/spf13/cast"
)

// CSVSink writes rows as comma separated values with a header line
type CSVSink struct{}

// NewCSVSink creates a CSV export sink
func NewCSVSink() *CSVSink {
	return &CSVSink{}
}

// Format returns the file extension
func (s *CSVSink) Format() string {
	return "csv"
}

// ContentType returns the MIME type of the output
func (s *CSVSink) ContentType() string {
	return "text/csv"
}

// Write renders headers then one line per row. The sheet name has no place in CSV.
func (s *CSVSink) Write(w io.Writer, sheet string, headers []string, rows []aggregation.Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := row.Get(h); ok {
				record[i] = cast.ToString(v)
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
