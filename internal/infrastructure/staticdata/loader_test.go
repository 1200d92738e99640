package staticdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
	"github.com/stretchr/testify/require"
)

func TestLoader_FetchTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spid.json"), []byte(`[{"id":101000001,"name":"Pelé"}]`), 0o644))

	table, err := NewLoader(dir).FetchTable(context.Background(), metadata.TableSpID)
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.Equal(t, "Pelé", table[0].String("name"))
}

func TestLoader_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "division.json"), []byte(`{not json`), 0o644))
	loader := NewLoader(dir)

	_, err := loader.FetchTable(context.Background(), metadata.TableSeasonID)
	require.Error(t, err)

	_, err = loader.FetchTable(context.Background(), metadata.TableDivision)
	require.Error(t, err)

	_, err = NewLoader("").FetchTable(context.Background(), metadata.TableSpID)
	require.Error(t, err)
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	loader := NewLoader(dir)

	in := metadata.Table{{"matchtype": float64(50), "desc": "공식경기"}}
	require.NoError(t, loader.Save(metadata.TableMatchType, in))

	out, err := loader.FetchTable(context.Background(), metadata.TableMatchType)
	require.NoError(t, err)
	require.Equal(t, "공식경기", out[0].String("desc"))
	got, ok := out[0].Int64("matchtype")
	require.True(t, ok)
	require.Equal(t, int64(50), got)
}
