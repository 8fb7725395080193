package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Minimum field counts per record type, tag included.
const (
	minNodeFields     = 3
	minEdgeFields     = 4
	minObjectFields   = 5
	minRelationFields = 5
)

// Record is one parsed line of the .lg format: a NodeRecord, EdgeRecord,
// ObjectRecord or RelationRecord.
type Record interface {
	apply(b *builder)
}

// NodeRecord is "N, id, label[, weight]".
type NodeRecord struct {
	ID     string
	Label  string
	Weight float64
}

// EdgeRecord is "E, from, to, label[, weight]".
type EdgeRecord struct {
	From   string
	To     string
	Label  string
	Weight float64
}

// ObjectRecord is "O, id, label, weight, prim1, …, primN".
type ObjectRecord struct {
	ID         string
	Label      string
	Weight     float64
	Primitives []string
}

// RelationRecord is "R, obj1, obj2, label, weight" (tag EO is accepted too).
type RelationRecord struct {
	From   string
	To     string
	Label  string
	Weight float64
}

// ParseRecord parses one record from its comma-separated fields.
//
// It returns (nil, nil) for comments. Fields are trimmed. The returned error
// wraps ErrUnknownRecord, ErrRecordLength or ErrParse.
func ParseRecord(fields []string) (Record, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "") {
		return nil, nil
	}
	tag := fields[0]
	if strings.HasPrefix(tag, "#") {
		return nil, nil
	}

	switch tag {
	case "N":
		return parseNode(fields)
	case "E":
		return parseEdge(fields)
	case "O":
		return parseObject(fields)
	case "R", "EO":
		return parseRelation(fields)
	default:
		return nil, fmt.Errorf("%w: %q (expected N, E, O, R or EO)", ErrUnknownRecord, tag)
	}
}

func checkLength(fields []string, min int) error {
	if len(fields) < min {
		return fmt.Errorf("%w: %s record has %d fields, need %d", ErrRecordLength, fields[0], len(fields), min)
	}
	return nil
}

// optionalWeight parses fields[i] when present and non-empty.
func optionalWeight(fields []string, i int) (float64, error) {
	if len(fields) <= i || fields[i] == "" {
		return DefaultWeight, nil
	}
	return parseWeight(fields[i])
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: weight %q", ErrParse, s)
	}
	return w, nil
}

func parseNode(f []string) (Record, error) {
	if err := checkLength(f, minNodeFields); err != nil {
		return nil, err
	}
	w, err := optionalWeight(f, 3)
	if err != nil {
		return nil, err
	}
	return NodeRecord{ID: f[1], Label: f[2], Weight: w}, nil
}

func parseEdge(f []string) (Record, error) {
	if err := checkLength(f, minEdgeFields); err != nil {
		return nil, err
	}
	w, err := optionalWeight(f, 4)
	if err != nil {
		return nil, err
	}
	return EdgeRecord{From: f[1], To: f[2], Label: f[3], Weight: w}, nil
}

func parseObject(f []string) (Record, error) {
	if err := checkLength(f, minObjectFields); err != nil {
		return nil, err
	}
	w, err := optionalWeight(f, 3)
	if err != nil {
		return nil, err
	}
	prims := make([]string, 0, len(f)-4)
	for _, p := range f[4:] {
		if p != "" {
			prims = append(prims, p)
		}
	}
	return ObjectRecord{ID: f[1], Label: f[2], Weight: w, Primitives: prims}, nil
}

func parseRelation(f []string) (Record, error) {
	if err := checkLength(f, minRelationFields); err != nil {
		return nil, err
	}
	w, err := optionalWeight(f, 4)
	if err != nil {
		return nil, err
	}
	return RelationRecord{From: f[1], To: f[2], Label: f[3], Weight: w}, nil
}
