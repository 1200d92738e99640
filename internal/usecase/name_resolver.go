package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fconline-tracker/internal/domain/metadata"
)

// Kind labels used in placeholder names. Callers detect unresolved names by
// the "Unknown <Kind>" prefix.
const (
	KindPlayer    = "Player"
	KindSeason    = "Season"
	KindMatchType = "MatchType"
	KindDivision  = "Division"
	KindPosition  = "Position"
)

// UnknownPlayerPrefix marks performance rows still carrying a placeholder name.
var UnknownPlayerPrefix = unknownPrefix(KindPlayer)

func unknownPrefix(kind string) string {
	return "Unknown " + kind
}

// Placeholder renders the deterministic fallback for an unresolved id.
func Placeholder(kind string, id int64) string {
	return fmt.Sprintf("%s (%d)", unknownPrefix(kind), id)
}

// IsUnresolved reports whether name is a placeholder of the given kind.
func IsUnresolved(name, kind string) bool {
	return strings.HasPrefix(name, unknownPrefix(kind))
}

type SeasonInfo struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type lookupSpec struct {
	table metadata.TableName
	kind  string
}

var (
	playerLookup    = lookupSpec{table: metadata.TableSpID, kind: KindPlayer}
	seasonLookup    = lookupSpec{table: metadata.TableSeasonID, kind: KindSeason}
	matchTypeLookup = lookupSpec{table: metadata.TableMatchType, kind: KindMatchType}
	divisionLookup  = lookupSpec{table: metadata.TableDivision, kind: KindDivision}
	positionLookup  = lookupSpec{table: metadata.TablePosition, kind: KindPosition}
)

type tableLoader interface {
	Load(ctx context.Context, name metadata.TableName) (metadata.Table, error)
}

// NameResolver turns numeric ids into display names using metadata tables.
type NameResolver struct {
	store tableLoader
}

func NewNameResolver(store *MetadataStore) *NameResolver {
	return &NameResolver{store: store}
}

func (r *NameResolver) lookup(ctx context.Context, spec lookupSpec, id int64) (metadata.Record, bool) {
	table, err := r.store.Load(ctx, spec.table)
	if err != nil || table == nil {
		return nil, false
	}
	return table.Find(spec.table.KeyField(), id)
}

// resolveField returns the placeholder when the record or its field is missing.
func (r *NameResolver) resolveField(ctx context.Context, spec lookupSpec, id int64, field string) string {
	record, ok := r.lookup(ctx, spec, id)
	if !ok {
		return Placeholder(spec.kind, id)
	}
	if value := record.String(field); value != "" {
		return value
	}
	return Placeholder(spec.kind, id)
}

func (r *NameResolver) PlayerName(ctx context.Context, spID int64) string {
	return r.resolveField(ctx, playerLookup, spID, "name")
}

func (r *NameResolver) SeasonName(ctx context.Context, seasonID int64) string {
	return r.resolveField(ctx, seasonLookup, seasonID, "className")
}

// SeasonImage returns the badge url, or the season placeholder when unknown.
func (r *NameResolver) SeasonImage(ctx context.Context, seasonID int64) string {
	return r.resolveField(ctx, seasonLookup, seasonID, "seasonImg")
}

func (r *NameResolver) SeasonInfo(ctx context.Context, seasonID int64) SeasonInfo {
	record, ok := r.lookup(ctx, seasonLookup, seasonID)
	if !ok {
		return SeasonInfo{Name: Placeholder(KindSeason, seasonID)}
	}
	name := trimSeasonClass(record.String("className"))
	if name == "" {
		name = Placeholder(KindSeason, seasonID)
	}
	return SeasonInfo{
		Name:     name,
		ImageURL: record.String("seasonImg"),
	}
}

func (r *NameResolver) MatchTypeName(ctx context.Context, matchType int64) string {
	return r.resolveField(ctx, matchTypeLookup, matchType, "desc")
}

func (r *NameResolver) DivisionName(ctx context.Context, division int64) string {
	return r.resolveField(ctx, divisionLookup, division, "divisionName")
}

func (r *NameResolver) PositionName(ctx context.Context, position int64) string {
	return r.resolveField(ctx, positionLookup, position, "desc")
}

// trimSeasonClass keeps the text before the first "(": "ICON (ICON)" -> "ICON".
func trimSeasonClass(className string) string {
	if idx := strings.Index(className, "("); idx >= 0 {
		className = className[:idx]
	}
	return strings.TrimSpace(className)
}
