package filter

import (
	"nichefeed/internal/judgment"
	"nichefeed/internal/vocab"
)

// Snapshot is the read-only group -> field -> value view of one candidate
// record, assembled from its startup attributes, its derived selection
// attributes, its flattened theme judgments, and its landing-page metrics.
// Values are scalars (string, bool, numeric) or []string for list-valued
// text fields.
type Snapshot struct {
	groups map[vocab.Group]map[string]any
}

// BuildSnapshot assembles a candidate snapshot. Any input map may be nil;
// judgments mount under the mother_theme group, one value per theme key.
func BuildSnapshot(startup, selection map[string]any, judgments *judgment.ProductJudgments, landingPage map[string]any) Snapshot {
	groups := make(map[vocab.Group]map[string]any, 4)
	if len(startup) > 0 {
		groups[vocab.GroupStartup] = startup
	}
	if len(selection) > 0 {
		groups[vocab.GroupSelection] = selection
	}
	if judgments != nil && judgments.Len() > 0 {
		groups[vocab.GroupMotherTheme] = judgments.Flatten()
	}
	if len(landingPage) > 0 {
		groups[vocab.GroupLandingPage] = landingPage
	}
	return Snapshot{groups: groups}
}

// SnapshotFromGroups wraps an already-grouped value mapping, e.g. one read
// straight from the persistence layer.
func SnapshotFromGroups(groups map[vocab.Group]map[string]any) Snapshot {
	return Snapshot{groups: groups}
}

// Value returns the candidate's value for a (group, field) pair. The second
// return is false when the group or field is absent from the snapshot.
func (s Snapshot) Value(g vocab.Group, field string) (any, bool) {
	fields, ok := s.groups[g]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}
