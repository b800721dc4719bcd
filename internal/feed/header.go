package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// HeaderNormalizer turns a header-based CSV feed into canonical rows
// using an alias table. A malformed row degrades or is skipped and
// counted, it never fails the file.
type HeaderNormalizer struct {
	Aliases AliasTable
}

// Parse reads the whole feed. It returns the accepted rows plus the
// number of rows skipped for structural reasons.
func (n *HeaderNormalizer) Parse(ctx context.Context, r io.Reader) ([]Row, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	cols := n.resolveColumns(header)

	var rows []Row
	var skipped int

	for {
		select {
		case <-ctx.Done():
			return rows, skipped, ctx.Err()
		default:
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// structural problem in this row only
			skipped++
			continue
		}

		row := make(Row, len(cols))
		empty := true
		for field, idx := range cols {
			if idx >= len(record) {
				continue
			}
			v := strings.TrimSpace(record[idx])
			if v == "" {
				continue
			}
			row[field] = v
			empty = false
		}

		if empty {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// resolveColumns maps each canonical field to the first header cell
// matching one of its aliases. Fields without a match stay unmapped
// and read as absent.
func (n *HeaderNormalizer) resolveColumns(header []string) map[string]int {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := make(map[string]int)
	for field, aliases := range n.Aliases {
		for _, alias := range aliases {
			for i, h := range lowered {
				if h == alias {
					cols[field] = i
					break
				}
			}
			if _, ok := cols[field]; ok {
				break
			}
		}
	}
	return cols
}
