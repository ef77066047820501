package player

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"dunkest-picker/internal/table"
)

// Record is one player row as the stats API sent it, keys in payload order.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set stores v under k. A repeated key keeps its first position and the last
// value.
func (r *Record) Set(k, v string) {
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

func (r *Record) Get(k string) string { return r.values[k] }

func (r *Record) Has(k string) bool {
	_, ok := r.values[k]
	return ok
}

func (r *Record) Keys() []string { return r.keys }

// DecodeRows extracts the player rows from a stats table payload. An object is
// expected to carry them under "data"; a bare array is taken as is; any other
// shape yields no rows.
func DecodeRows(body []byte) ([]*Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var rows json.RawMessage
	switch body[0] {
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode stats payload: %w", err)
		}
		rows = env["data"]
	case '[':
		rows = body
	default:
		if !json.Valid(body) {
			return nil, fmt.Errorf("decode stats payload: invalid JSON")
		}
		return nil, nil
	}

	rows = bytes.TrimSpace(rows)
	if len(rows) == 0 || rows[0] != '[' {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rows, &items); err != nil {
		return nil, fmt.Errorf("decode stats rows: %w", err)
	}

	out := make([]*Record, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		rec, err := decodeObject(item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decodeObject(raw []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode stats row: unexpected key %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode stats row field %q: %w", key, err)
		}
		rec.Set(key, renderCell(v))
	}
	return rec, nil
}

// renderCell flattens a JSON value into a CSV cell: strings unquoted, numbers
// as sent, null empty, objects and arrays compacted.
func renderCell(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	case 'n':
		return ""
	case '{', '[':
		buf := &bytes.Buffer{}
		if err := json.Compact(buf, v); err == nil {
			return buf.String()
		}
	}
	return string(v)
}

// RawTable lays records out with every field seen, in first-seen order.
func RawTable(recs []*Record) *table.Table {
	seen := make(map[string]bool)
	var header []string
	for _, r := range recs {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	t := table.New(header...)
	for _, r := range recs {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = r.Get(k)
		}
		t.Append(row...)
	}
	return t
}

// RecordsFromTable turns CSV rows back into records keyed by the header.
func RecordsFromTable(t *table.Table) []*Record {
	out := make([]*Record, 0, t.Len())
	for _, row := range t.Rows {
		rec := NewRecord()
		for i, h := range t.Header {
			if strings.TrimSpace(h) == "" {
				continue
			}
			if i < len(row) {
				rec.Set(h, row[i])
			} else {
				rec.Set(h, "")
			}
		}
		out = append(out, rec)
	}
	return out
}
