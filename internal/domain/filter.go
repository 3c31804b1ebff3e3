package domain

import "sort"

// FilterAll is the selector value that places no restriction on a dimension.
const FilterAll = "ALL"

// Filters is the active selection across the five filter dimensions.
// Status compares against Record.StatusClass; the others against raw fields.
type Filters struct {
	Project        string `json:"project" yaml:"project"`
	Responsible    string `json:"responsible" yaml:"responsible"`
	Classification string `json:"classification" yaml:"classification"`
	Sector         string `json:"sector" yaml:"sector"`
	Status         string `json:"status" yaml:"status"`
}

// AllFilters returns filters with every dimension unrestricted.
func AllFilters() Filters {
	return Filters{
		Project:        FilterAll,
		Responsible:    FilterAll,
		Classification: FilterAll,
		Sector:         FilterAll,
		Status:         FilterAll,
	}
}

// WithoutStatus returns a copy with the status dimension unrestricted.
func (f Filters) WithoutStatus() Filters {
	f.Status = FilterAll
	return f
}

// IsAll reports whether no dimension is restricted.
func (f Filters) IsAll() bool {
	return f == AllFilters()
}

func matches(selected, value string) bool {
	return selected == FilterAll || selected == value
}

// Matches reports whether r passes every dimension of f.
func (f Filters) Matches(r *Record) bool {
	return matches(f.Project, r.Project) &&
		matches(f.Responsible, r.Responsible) &&
		matches(f.Classification, r.Classification) &&
		matches(f.Sector, r.Sector) &&
		matches(f.Status, string(r.StatusClass))
}

// ApplyFilters returns the records passing f, in their original order.
// The result is never nil, so an empty match stays distinguishable from
// a collection that was never loaded.
func ApplyFilters(records []*Record, f Filters) []*Record {
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterOptions lists the distinct observed values of each dimension, sorted.
type FilterOptions struct {
	Projects        []string
	Responsibles    []string
	Classifications []string
	Sectors         []string
}

// CollectFilterOptions gathers selector choices from records.
// The empty string is a regular value.
func CollectFilterOptions(records []*Record) FilterOptions {
	collect := func(field func(*Record) string) []string {
		seen := make(map[string]struct{})
		var values []string
		for _, r := range records {
			v := field(r)
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		sort.Strings(values)
		return values
	}
	return FilterOptions{
		Projects:        collect(func(r *Record) string { return r.Project }),
		Responsibles:    collect(func(r *Record) string { return r.Responsible }),
		Classifications: collect(func(r *Record) string { return r.Classification }),
		Sectors:         collect(func(r *Record) string { return r.Sector }),
	}
}

// Cycle returns the value after current in ALL, options[0], options[1], ...
// wrapping back to ALL. An unknown current restarts at ALL.
func Cycle(current string, options []string) string {
	if current == FilterAll {
		if len(options) == 0 {
			return FilterAll
		}
		return options[0]
	}
	for i, o := range options {
		if o == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return FilterAll
		}
	}
	return FilterAll
}
