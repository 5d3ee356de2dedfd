// Package zone works with the JAKIM zone directory: grouping zones by
// state for pickers and resolving district names back to zone codes.
package zone

import (
	"strings"

	"github.com/solatku/solatku/internal/api"
)

// District is one selectable entry inside a state group.
type District struct {
	JakimCode string
	Name      string
}

// Group collects a state's districts under its name.
type Group struct {
	Negeri    string
	Districts []District
}

// GroupByState partitions the zone directory by state name, preserving
// the order states first appear in the input.
func GroupByState(zones []api.Zone) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, z := range zones {
		i, ok := index[z.Negeri]
		if !ok {
			i = len(groups)
			index[z.Negeri] = i
			groups = append(groups, Group{Negeri: z.Negeri})
		}
		groups[i].Districts = append(groups[i].Districts, District{
			JakimCode: z.JakimCode,
			Name:      z.Daerah,
		})
	}

	return groups
}

// CodeForDistrict resolves a district name to its JAKIM zone code.
// Matching is case-insensitive; returns "" when the district is unknown.
func CodeForDistrict(district string, groups []Group) string {
	code := ""
	for _, g := range groups {
		for _, d := range g.Districts {
			if strings.EqualFold(d.Name, district) {
				code = d.JakimCode
			}
		}
	}
	return code
}

// FilterByState returns only the groups whose state name contains the
// given filter, case-insensitively. An empty filter returns everything.
func FilterByState(groups []Group, state string) []Group {
	if strings.TrimSpace(state) == "" {
		return groups
	}
	var out []Group
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Negeri), strings.ToLower(state)) {
			out = append(out, g)
		}
	}
	return out
}
