package domain

import "strings"

// Legend is the set of status entries present in a collection plus the
// single active status filter (FilterAll or one present class).
type Legend struct {
	Active  string
	Entries []StatusDefinition
}

// PresentLegendEntries returns, in table order, the status definitions that
// occur in records. An entry is present when a record's status equals one of
// its keys after trimming, uppercasing and removing whitespace and hyphens.
// The default entry is present only when some record has an empty status.
func PresentLegendEntries(records []*Record) []StatusDefinition {
	present := make(map[string]struct{})
	hasEmpty := false
	for _, r := range records {
		key := legendKey(r.Status)
		if key == "" {
			hasEmpty = true
			continue
		}
		present[key] = struct{}{}
	}

	var entries []StatusDefinition
	for _, def := range statusDefinitions {
		if def.Class == StatusDefault {
			if hasEmpty {
				entries = append(entries, def)
			}
			continue
		}
		for _, k := range def.Keys {
			if _, ok := present[legendKey(k)]; ok {
				entries = append(entries, def)
				break
			}
		}
	}
	return entries
}

// NewLegend builds the legend for records, which must not be filtered by
// status. An active class that is no longer present falls back to FilterAll.
func NewLegend(records []*Record, active string) Legend {
	l := Legend{Entries: PresentLegendEntries(records), Active: FilterAll}
	if l.has(active) {
		l.Active = active
	}
	return l
}

func (l Legend) has(class string) bool {
	for _, e := range l.Entries {
		if string(e.Class) == class {
			return true
		}
	}
	return false
}

// Click applies a click on the entry for class and returns the updated legend.
// Clicking the active entry or FilterAll resets to FilterAll; clicking another
// present entry activates it. Clicking an absent class changes nothing and
// reports false.
func (l Legend) Click(class string) (Legend, bool) {
	switch {
	case class == FilterAll || strings.TrimSpace(class) == "":
		l.Active = FilterAll
	case class == l.Active:
		l.Active = FilterAll
	case l.has(class):
		l.Active = class
	default:
		return l, false
	}
	return l, true
}

// IsActive reports whether the entry for class (or FilterAll) is the active one.
func (l Legend) IsActive(class string) bool {
	return l.Active == class
}

// ClickIndex clicks the entry at position i (1-based); 0 selects FilterAll.
func (l Legend) ClickIndex(i int) (Legend, bool) {
	if i == 0 {
		return l.Click(FilterAll)
	}
	if i < 1 || i > len(l.Entries) {
		return l, false
	}
	return l.Click(string(l.Entries[i-1].Class))
}
