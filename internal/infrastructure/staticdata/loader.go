package staticdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
)

// Loader reads <dir>/<table>.json files shipped with the deployment.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: strings.TrimSpace(dir)}
}

func (l *Loader) Path(name metadata.TableName) string {
	return filepath.Join(l.dir, name.FileName())
}

func (l *Loader) FetchTable(ctx context.Context, name metadata.TableName) (metadata.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.dir == "" {
		return nil, fmt.Errorf("static data dir is not configured")
	}

	path := l.Path(name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var table metadata.Table
	if err := sonic.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return table, nil
}

// Save writes a table in the same layout FetchTable reads, used to snapshot
// remote tables for offline runs.
func (l *Loader) Save(name metadata.TableName, table metadata.Table) error {
	if l.dir == "" {
		return fmt.Errorf("static data dir is not configured")
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create static data dir: %w", err)
	}

	raw, err := sonic.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode table %s: %w", name, err)
	}

	path := l.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
