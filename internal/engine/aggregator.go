package engine

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"salarydash/internal/country"
	"salarydash/internal/models"
)

// DefaultTargetRole is the role the country-year section is restricted to.
const DefaultTargetRole = "Data Scientist"

type meanAcc struct {
	Sum   float64
	Count int
}

func (a *meanAcc) add(v float64) {
	a.Sum += v
	a.Count++
}

func (a *meanAcc) mean() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// TopRolesByMean returns the n roles with the highest mean salary, ordered
// ascending by mean. Ties keep the order in which roles first appear in v.
func TopRolesByMean(v *View, n int) []models.RoleMean {
	if v.Len() == 0 || n <= 0 {
		return []models.RoleMean{}
	}

	groups := orderedmap.NewOrderedMap[int32, *meanAcc]()
	roles := v.store.RoleIDs
	sal := v.store.Salaries
	for _, idx := range v.indices {
		acc, ok := groups.Get(roles[idx])
		if !ok {
			acc = &meanAcc{}
			groups.Set(roles[idx], acc)
		}
		acc.add(sal[idx])
	}

	out := make([]models.RoleMean, 0, groups.Len())
	for el := groups.Front(); el != nil; el = el.Next() {
		out = append(out, models.RoleMean{
			Role:    v.store.RoleDict[el.Key],
			MeanUSD: el.Value.mean(),
			Count:   el.Value.Count,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MeanUSD > out[j].MeanUSD })
	if len(out) > n {
		out = out[:n]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MeanUSD < out[j].MeanUSD })
	return out
}

type yearCountry struct {
	year    int32
	country int32
}

// CountryYearMeans restricts v to role and averages salaries per (year,
// residence country). Each row carries the deviation of its mean from the
// mean of all role rows of the same year. Rows are ordered by mean
// descending.
func CountryYearMeans(v *View, role string) []models.CountryYearMean {
	roleID := lookup(v.store.RoleDict, role)
	if roleID < 0 || v.Len() == 0 {
		return []models.CountryYearMean{}
	}

	cs := v.store
	subset := v.Where(func(row int) bool { return cs.RoleIDs[row] == roleID })
	groups := orderedmap.NewOrderedMap[yearCountry, *meanAcc]()
	yearly := make(map[int32]*meanAcc)
	for _, idx := range subset.indices {
		key := yearCountry{year: cs.Years[idx], country: cs.CountryIDs[idx]}
		acc, ok := groups.Get(key)
		if !ok {
			acc = &meanAcc{}
			groups.Set(key, acc)
		}
		acc.add(cs.Salaries[idx])

		y, ok := yearly[key.year]
		if !ok {
			y = &meanAcc{}
			yearly[key.year] = y
		}
		y.add(cs.Salaries[idx])
	}

	out := make([]models.CountryYearMean, 0, groups.Len())
	for el := groups.Front(); el != nil; el = el.Next() {
		iso3 := cs.CountryDict[el.Key.country]
		name, abbrev := country.Lookup(iso3)
		mean := el.Value.mean()
		yearMean := yearly[el.Key.year].mean()
		out = append(out, models.CountryYearMean{
			Year:        int(el.Key.year),
			ISO3:        iso3,
			Country:     name,
			Abbrev:      abbrev,
			MeanUSD:     mean,
			Count:       el.Value.Count,
			YearMeanUSD: yearMean,
			Deviation:   mean - yearMean,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MeanUSD > out[j].MeanUSD })
	return out
}

// Frames splits country-year rows into one frame per year, years ascending.
// Row order inside a frame is preserved.
func Frames(rows []models.CountryYearMean) []models.CountryFrame {
	byYear := make(map[int][]models.CountryYearMean)
	years := make([]int, 0)
	for _, r := range rows {
		if _, ok := byYear[r.Year]; !ok {
			years = append(years, r.Year)
		}
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	sort.Ints(years)

	frames := make([]models.CountryFrame, 0, len(years))
	for _, y := range years {
		frames = append(frames, models.CountryFrame{Year: y, Rows: byYear[y]})
	}
	return frames
}

// Summarize computes the headline metrics. An empty view yields zero values
// and an empty role.
func Summarize(v *View) models.Metrics {
	var m models.Metrics
	if v.Len() == 0 {
		return m
	}

	cs := v.store
	counts := orderedmap.NewOrderedMap[int32, int]()
	var sum float64
	m.MaxSalary = cs.Salaries[v.indices[0]]
	for _, idx := range v.indices {
		s := cs.Salaries[idx]
		sum += s
		if s > m.MaxSalary {
			m.MaxSalary = s
		}
		c, _ := counts.Get(cs.RoleIDs[idx])
		counts.Set(cs.RoleIDs[idx], c+1)
	}
	m.RecordCount = v.Len()
	m.MeanSalary = sum / float64(v.Len())

	best := -1
	for el := counts.Front(); el != nil; el = el.Next() {
		if el.Value > best {
			best = el.Value
			m.MostCommonRole = cs.RoleDict[el.Key]
		}
	}
	return m
}

// Histogram buckets salaries into bins equal-width intervals spanning the
// observed range. The last bin is closed on the right.
func Histogram(v *View, bins int) []models.HistogramBin {
	if v.Len() == 0 || bins <= 0 {
		return []models.HistogramBin{}
	}

	lo, hi := v.Salary(0), v.Salary(0)
	for i := 1; i < v.Len(); i++ {
		s := v.Salary(i)
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	// Halved so the span of any two finite salaries stays finite.
	half := hi/2 - lo/2
	step := half / float64(bins)
	if half == 0 || step == 0 {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: v.Len()}}
	}

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + step*float64(i) + step*float64(i)
		out[i].Upper = lo + step*float64(i+1) + step*float64(i+1)
	}
	out[bins-1].Upper = hi

	for i := 0; i < v.Len(); i++ {
		b := int((v.Salary(i)/2 - lo/2) / half * float64(bins))
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		out[b].Count++
	}
	return out
}

// RemoteShare counts records per remote-work mode, most frequent first.
func RemoteShare(v *View) []models.RemoteShare {
	if v.Len() == 0 {
		return []models.RemoteShare{}
	}

	cs := v.store
	counts := orderedmap.NewOrderedMap[int32, int]()
	for _, idx := range v.indices {
		c, _ := counts.Get(cs.RemoteIDs[idx])
		counts.Set(cs.RemoteIDs[idx], c+1)
	}

	total := float64(v.Len())
	out := make([]models.RemoteShare, 0, counts.Len())
	for el := counts.Front(); el != nil; el = el.Next() {
		out = append(out, models.RemoteShare{
			Mode:    cs.RemoteDict[el.Key],
			Count:   el.Value,
			Percent: float64(el.Value) / total * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Preview returns at most limit records from the head of v.
func Preview(v *View, limit int) []models.Record {
	if limit < 0 || limit >= v.Len() {
		return v.Records()
	}
	out := make([]models.Record, limit)
	for i := range out {
		out[i] = v.Record(i)
	}
	return out
}
