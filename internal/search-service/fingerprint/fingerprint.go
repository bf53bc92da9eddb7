package fingerprint

import (
	"Proximity_Search_Microservice/internal/search-service/model"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
	"time"
)

// version is bumped whenever the canonical encoding changes so old keys stop matching.
const version = "v1"

type Fingerprinter interface {
	// Normalize builds the canonical query that is both fingerprinted and executed.
	// origin is the validated origin, nil when distance ordering is not in effect.
	Normalize(query model.SearchQuery, sort model.SortMode, origin *model.GeoPoint, now time.Time) model.NormalizedQuery
	Fingerprint(query model.NormalizedQuery) string
}

type fingerprinter struct {
	prefix    string
	precision int
}

func (f *fingerprinter) Normalize(query model.SearchQuery, sort model.SortMode, origin *model.GeoPoint, now time.Time) model.NormalizedQuery {
	nq := model.NormalizedQuery{
		Sort:       sort,
		Categories: canonicalSet(query.Filters.Categories),
		Agencies:   canonicalSet(query.Filters.Agencies),
		OpenNow:    query.Filters.OpenNow,
		Offset:     query.Offset,
		Limit:      query.Limit,
	}
	if sort == model.SortDistanceAsc && origin != nil {
		rounded := origin.Round(f.precision)
		nq.Origin = &rounded
		nq.RadiusMeters = query.RadiusMeters
	}
	if nq.OpenNow {
		nq.OpenAt = now.UTC().Truncate(time.Minute)
	}
	return nq
}

func (f *fingerprinter) Fingerprint(query model.NormalizedQuery) string {
	sum := sha256.Sum256([]byte(f.canonical(query)))
	return f.prefix + ":" + version + ":" + hex.EncodeToString(sum[:])
}

func (f *fingerprinter) canonical(query model.NormalizedQuery) string {
	var b strings.Builder
	b.WriteString(version)
	b.WriteString("\nsort=")
	b.WriteString(string(query.Sort))
	if query.Sort == model.SortDistanceAsc && query.Origin != nil {
		b.WriteString("\norigin=")
		b.WriteString(strconv.FormatFloat(query.Origin.Lat, 'f', f.precision, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(query.Origin.Lng, 'f', f.precision, 64))
		b.WriteString("\nradius=")
		b.WriteString(strconv.Itoa(query.RadiusMeters))
	}
	b.WriteString("\ncategories=")
	writeList(&b, query.Categories)
	b.WriteString("\nagencies=")
	writeList(&b, query.Agencies)
	b.WriteString("\nopen_at=")
	if query.OpenNow {
		b.WriteString(query.OpenAt.UTC().Format(time.RFC3339))
	}
	b.WriteString("\noffset=")
	b.WriteString(strconv.Itoa(query.Offset))
	b.WriteString("\nlimit=")
	b.WriteString(strconv.Itoa(query.Limit))
	return b.String()
}

func writeList(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(v))
	}
}

// canonicalSet trims, lower-cases, de-duplicates and sorts.
func canonicalSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func NewFingerprinter(prefix string, precision int) Fingerprinter {
	return &fingerprinter{
		prefix:    prefix,
		precision: precision,
	}
}
