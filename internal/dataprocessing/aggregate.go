package dataprocessing

import "sort"

// Role describes how a field behaves when quarter-hour rows are collapsed
// into one hour: prices and rates are averaged, energies and costs are summed,
// published min/max prices take the group extreme.
type Role int

const (
	RoleAverage Role = iota
	RoleSum
	RoleMin
	RoleMax
)

type hourKey struct {
	date string
	hour int
}

// aggregator groups sub-hourly values by (date, hour) and reduces each field
// according to its role. Every series shares this one strategy; only the role
// table differs.
type aggregator struct {
	roles  []Role
	groups map[hourKey][][]float64
}

func newAggregator(roles ...Role) *aggregator {
	return &aggregator{
		roles:  roles,
		groups: make(map[hourKey][][]float64),
	}
}

// hourForPeriod maps a 1-based quarter-hour period index to its clock hour:
// periods 1-4 belong to hour 1, 5-8 to hour 2, and so on.
func hourForPeriod(period int) int {
	return (period-1)/4 + 1
}

// add collects one sub-hourly row. values must match the role table in length
// and order; nil values are skipped so they never drag an average toward zero.
func (a *aggregator) add(date string, hour int, values ...*float64) {
	key := hourKey{date: date, hour: hour}
	group, ok := a.groups[key]
	if !ok {
		group = make([][]float64, len(a.roles))
		a.groups[key] = group
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		group[i] = append(group[i], *v)
	}
}

// aggregated is one reduced hour. A field with no observed values stays nil.
type aggregated struct {
	Date   string
	Hour   int
	Values []*float64
}

// results reduces every group and returns the hours sorted ascending by
// (date, hour). Map iteration order is not chronological, so the sort here is
// load-bearing for the output tables.
func (a *aggregator) results() []aggregated {
	keys := make([]hourKey, 0, len(a.groups))
	for k := range a.groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].hour < keys[j].hour
	})

	out := make([]aggregated, 0, len(keys))
	for _, k := range keys {
		group := a.groups[k]
		values := make([]*float64, len(a.roles))
		for i, role := range a.roles {
			values[i] = reduce(role, group[i])
		}
		out = append(out, aggregated{Date: k.date, Hour: k.hour, Values: values})
	}
	return out
}

func reduce(role Role, observed []float64) *float64 {
	if len(observed) == 0 {
		return nil
	}
	switch role {
	case RoleAverage:
		sum := 0.0
		for _, v := range observed {
			sum += v
		}
		avg := sum / float64(len(observed))
		return &avg
	case RoleSum:
		sum := 0.0
		for _, v := range observed {
			sum += v
		}
		return &sum
	case RoleMin:
		min := observed[0]
		for _, v := range observed[1:] {
			if v < min {
				min = v
			}
		}
		return &min
	default: // RoleMax
		max := observed[0]
		for _, v := range observed[1:] {
			if v > max {
				max = v
			}
		}
		return &max
	}
}
