package summary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lgeval/compare"
)

// ErrFormat is returned by ReadMetrics for a malformed metric line.
var ErrFormat = errors.New("summary: malformed metric line")

// headerTag starts the line naming the files of the next metric line.
const headerTag = "*M"

// Record is the metric line of one compared pair.
type Record struct {
	Output  string
	Target  string
	Metrics compare.Metrics
}

// ReadMetrics reads a metrics stream. A metric line without a preceding
// header gets empty file names.
func ReadMetrics(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out     []Record
		pending Record
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("summary: reading metrics: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if strings.TrimSpace(rec[0]) == headerTag {
			pending = Record{}
			if len(rec) > 1 {
				pending.Output = strings.TrimSpace(rec[1])
			}
			if len(rec) > 2 {
				pending.Target = strings.TrimSpace(rec[2])
			}
			continue
		}

		if len(rec)%2 != 0 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrFormat, line, len(rec))
		}
		m := make(compare.Metrics, 0, len(rec)/2)
		for i := 0; i < len(rec); i += 2 {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrFormat, line, err)
			}
			m = append(m, compare.Metric{Name: strings.TrimSpace(rec[i]), Value: v})
		}
		pending.Metrics = m
		out = append(out, pending)
		pending = Record{}
	}
}
