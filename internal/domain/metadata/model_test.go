package metadata

import "testing"

func TestTableName_Valid(t *testing.T) {
	for _, name := range Tables {
		if !name.Valid() {
			t.Fatalf("expected %q to be valid", name)
		}
	}

	for _, name := range []TableName{"", "spids", "SPID", "players"} {
		if name.Valid() {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}

func TestTableName_KeysAndFiles(t *testing.T) {
	if got := TableSeasonID.FileName(); got != "seasonid.json" {
		t.Fatalf("unexpected file name: %s", got)
	}
	if got := TableDivision.CacheKey(); got != "metadata:division" {
		t.Fatalf("unexpected cache key: %s", got)
	}
	if got := TableMatchType.KeyField(); got != "matchtype" {
		t.Fatalf("unexpected key field: %s", got)
	}
}

func TestRecord_Int64(t *testing.T) {
	r := Record{"f": float64(101000001), "s": " 42 ", "bad": "x", "nil": nil}

	if got, ok := r.Int64("f"); !ok || got != 101000001 {
		t.Fatalf("unexpected float field: %d %t", got, ok)
	}
	if got, ok := r.Int64("s"); !ok || got != 42 {
		t.Fatalf("unexpected string field: %d %t", got, ok)
	}
	if _, ok := r.Int64("bad"); ok {
		t.Fatalf("expected non numeric string to fail")
	}
	if _, ok := r.Int64("nil"); ok {
		t.Fatalf("expected nil field to fail")
	}
	if _, ok := r.Int64("missing"); ok {
		t.Fatalf("expected missing field to fail")
	}
}

func TestTable_FindAndIndex(t *testing.T) {
	table := Table{
		{"id": float64(1), "name": "first"},
		{"id": float64(2), "name": "second"},
		{"id": float64(1), "name": "duplicate"},
		{"name": "no key"},
	}

	record, ok := table.Find("id", 1)
	if !ok || record.String("name") != "first" {
		t.Fatalf("unexpected find result: %v %t", record, ok)
	}
	if _, ok := table.Find("id", 3); ok {
		t.Fatalf("expected miss for absent id")
	}

	index := table.Index("id")
	if len(index) != 2 {
		t.Fatalf("unexpected index size: %d", len(index))
	}
	if index[1].String("name") != "first" {
		t.Fatalf("expected first record to win on duplicate key")
	}
}
