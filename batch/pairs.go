package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPairFormat is returned by ReadPairs for a line with fewer than two
// file names.
var ErrPairFormat = errors.New("batch: malformed pair line")

// Pair is one comparison of an output graph against a target graph.
type Pair struct {
	Output  string
	Target  string
	Display string // name used in confusion counts; defaults to Output
}

// Name returns Display, or Output when no display name was given.
func (p Pair) Name() string {
	if p.Display != "" {
		return p.Display
	}
	return p.Output
}

// ReadPairs reads a pair list.
func ReadPairs(r io.Reader) ([]Pair, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var pairs []Pair
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return pairs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("batch: reading pairs: %w", err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if len(rec) < 2 || rec[0] == "" || rec[1] == "" {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d", ErrPairFormat, line)
		}
		p := Pair{Output: rec[0], Target: rec[1]}
		if len(rec) > 2 {
			p.Display = rec[2]
		}
		pairs = append(pairs, p)
	}
}

// GTFirst returns pairs with Output and Target swapped, for lists whose
// first column is the ground truth. Display names are kept.
func GTFirst(pairs []Pair) []Pair {
	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		out[i] = Pair{Output: p.Target, Target: p.Output, Display: p.Display}
	}
	return out
}
