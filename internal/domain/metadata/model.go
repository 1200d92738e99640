package metadata

import (
	"strconv"
	"strings"
)

// TableName identifies one of the static metadata tables published by the game API.
type TableName string

const (
	TableSpID      TableName = "spid"
	TableSeasonID  TableName = "seasonid"
	TableMatchType TableName = "matchtype"
	TableDivision  TableName = "division"
	TablePosition  TableName = "position"
)

// Tables lists every supported table in preload order.
var Tables = []TableName{
	TableSpID,
	TableSeasonID,
	TableMatchType,
	TableDivision,
	TablePosition,
}

func (n TableName) Valid() bool {
	switch n {
	case TableSpID, TableSeasonID, TableMatchType, TableDivision, TablePosition:
		return true
	default:
		return false
	}
}

// FileName is the name used both for the local static file and the remote path.
func (n TableName) FileName() string {
	return string(n) + ".json"
}

// CacheKey is the shared cache key holding the table contents.
func (n TableName) CacheKey() string {
	return "metadata:" + string(n)
}

// KeyField is the numeric field each record of the table is keyed by.
func (n TableName) KeyField() string {
	switch n {
	case TableSpID:
		return "id"
	case TableSeasonID:
		return "seasonId"
	case TableMatchType:
		return "matchtype"
	case TableDivision:
		return "divisionId"
	case TablePosition:
		return "spposition"
	default:
		return ""
	}
}

// Record is one flat row of a metadata table.
type Record map[string]any

// Table is a wholesale-loaded metadata table.
type Table []Record

// Int64 reads a numeric field. JSON numbers decode as float64, some feeds send strings.
func (r Record) Int64(field string) (int64, bool) {
	raw, ok := r[field]
	if !ok || raw == nil {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case string:
		out, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return out, true
	default:
		return 0, false
	}
}

// String reads a text field, empty when missing or not a string.
func (r Record) String(field string) string {
	raw, ok := r[field]
	if !ok || raw == nil {
		return ""
	}
	v, _ := raw.(string)
	return v
}

// Index builds a key -> record map. The first record wins on duplicate keys,
// matching a linear scan.
func (t Table) Index(keyField string) map[int64]Record {
	out := make(map[int64]Record, len(t))
	for _, record := range t {
		key, ok := record.Int64(keyField)
		if !ok {
			continue
		}
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = record
	}
	return out
}

// Find returns the first record whose key field equals id.
func (t Table) Find(keyField string, id int64) (Record, bool) {
	for _, record := range t {
		key, ok := record.Int64(keyField)
		if ok && key == id {
			return record, true
		}
	}
	return nil, false
}
