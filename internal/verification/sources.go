package verification

import "sort"

// Source name keys. These appear in persisted attempt rows, so treat them as
// part of the stored data contract.
const (
	SourceINRIS     = "INRIS"
	SourceZRA       = "ZRA"
	SourceMNOAirtel = "MNO_AIRTEL"
)

// AggregateSource tags attempt rows that were not produced by any specific
// source: the legacy all-sources search and the terminal not-found outcome of
// the multi-source search.
const AggregateSource = "MOCK_API"

// registry is the fixed set of verification sources. Configuration is static
// at process start; priorities are distinct and ascending order is the probe
// order.
var registry = []SourceDescriptor{
	{Name: SourceINRIS, DisplayName: "Integrated National Registration System", Priority: 1},
	{Name: SourceZRA, DisplayName: "Zambia Revenue Authority", Priority: 2},
	{Name: SourceMNOAirtel, DisplayName: "Airtel Mobile Subscriber Registry", Priority: 3},
}

// SourcesByPriority returns the registered sources in ascending priority
// order. Callers receive a copy and may not mutate the registry.
func SourcesByPriority() []SourceDescriptor {
	out := make([]SourceDescriptor, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// DisplayNameFor resolves a source key to its human label, falling back to
// the key itself for unknown sources.
func DisplayNameFor(sourceName string) string {
	for _, s := range registry {
		if s.Name == sourceName {
			return s.DisplayName
		}
	}
	return sourceName
}
