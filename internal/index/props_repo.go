package index

import (
	"database/sql"
	"fmt"
)

// PropertyRow is one stored inline property.
type PropertyRow struct {
	Path     string `json:"path"`
	Position int    `json:"position"`
	Key      string `json:"key"`
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	RawValue string `json:"raw_value"`
	Line     int    `json:"line"`
	GroupID  int    `json:"group_id,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

// Record is one grouped bracket span: the properties that share a group id
// within a note, in document order.
type Record struct {
	Path    string        `json:"path"`
	GroupID int           `json:"group_id"`
	Fields  []PropertyRow `json:"fields"`
}

const propertyColumns = `path, position, key, kind, value, raw_value, line, group_id, hidden`

// PropertiesForNote returns the stored properties of one note in document order.
func (db *DB) PropertiesForNote(path string) ([]PropertyRow, error) {
	rows, err := db.conn.Query(`SELECT `+propertyColumns+` FROM properties WHERE path = ? ORDER BY position`, path)
	if err != nil {
		return nil, fmt.Errorf("index: properties for note: %w", err)
	}
	return collectPropertyRows(rows)
}

// QueryProperties returns properties across the whole index, optionally
// filtered by key and/or kind, ordered by note path and document position.
func (db *DB) QueryProperties(key, kind string, limit int) ([]PropertyRow, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any
	switch {
	case key != "" && kind != "":
		query += ` WHERE key = ? AND kind = ?`
		args = append(args, key, kind)
	case key != "":
		query += ` WHERE key = ?`
		args = append(args, key)
	case kind != "":
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY path, position LIMIT ?`
	args = append(args, limit)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query properties: %w", err)
	}
	return collectPropertyRows(rows)
}

// Records returns the grouped property records of one note: one Record per
// shared group id, fields in document order. Standalone properties are not
// part of any record.
func (db *DB) Records(path string) ([]Record, error) {
	rows, err := db.conn.Query(`SELECT `+propertyColumns+` FROM properties WHERE path = ? AND group_id > 0 ORDER BY group_id, position`, path)
	if err != nil {
		return nil, fmt.Errorf("index: records: %w", err)
	}
	props, err := collectPropertyRows(rows)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, p := range props {
		if len(out) == 0 || out[len(out)-1].GroupID != p.GroupID {
			out = append(out, Record{Path: path, GroupID: p.GroupID})
		}
		last := &out[len(out)-1]
		last.Fields = append(last.Fields, p)
	}
	return out, nil
}

func collectPropertyRows(rows *sql.Rows) ([]PropertyRow, error) {
	defer rows.Close()
	var out []PropertyRow
	for rows.Next() {
		var p PropertyRow
		var hidden int
		if err := rows.Scan(&p.Path, &p.Position, &p.Key, &p.Kind, &p.Value, &p.RawValue, &p.Line, &p.GroupID, &hidden); err != nil {
			return nil, err
		}
		p.Hidden = hidden != 0
		out = append(out, p)
	}
	return out, rows.Err()
}
