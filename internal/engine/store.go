package engine

import (
	"sort"

	"salarydash/internal/models"
)

// ColumnStore holds data in Struct-of-Arrays format for speed
type ColumnStore struct {
	// Data Columns (Flat Arrays)
	Years    []int32
	Salaries []float64

	// Dictionary Encoded IDs (0..N)
	SeniorityIDs []int32
	ContractIDs  []int32
	SizeIDs      []int32
	RoleIDs      []int32
	RemoteIDs    []int32
	CountryIDs   []int32

	// Dictionaries (ID -> String), first-encounter order
	SeniorityDict []string
	ContractDict  []string
	SizeDict      []string
	RoleDict      []string
	RemoteDict    []string
	CountryDict   []string

	// Rows dropped at load because ano/usd were not numeric
	Skipped int
}

func (cs *ColumnStore) Len() int { return len(cs.Years) }

// Record materializes row i.
func (cs *ColumnStore) Record(i int) models.Record {
	return models.Record{
		Year:          int(cs.Years[i]),
		Seniority:     cs.SeniorityDict[cs.SeniorityIDs[i]],
		ContractType:  cs.ContractDict[cs.ContractIDs[i]],
		CompanySize:   cs.SizeDict[cs.SizeIDs[i]],
		RoleTitle:     cs.RoleDict[cs.RoleIDs[i]],
		RemoteMode:    cs.RemoteDict[cs.RemoteIDs[i]],
		ResidenceISO3: cs.CountryDict[cs.CountryIDs[i]],
		SalaryUSD:     cs.Salaries[i],
	}
}

// Options returns the sorted observed values of every filter dimension.
func (cs *ColumnStore) Options() models.Options {
	seen := make(map[int32]struct{})
	years := make([]int, 0)
	for _, y := range cs.Years {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, int(y))
		}
	}
	sort.Ints(years)

	return models.Options{
		Years:        years,
		Seniorities:  sortedCopy(cs.SeniorityDict),
		Contracts:    sortedCopy(cs.ContractDict),
		CompanySizes: sortedCopy(cs.SizeDict),
	}
}

func sortedCopy(dict []string) []string {
	out := make([]string, len(dict))
	copy(out, dict)
	sort.Strings(out)
	return out
}

// dictEncoder assigns ids to strings in first-encounter order.
type dictEncoder struct {
	ids  map[string]int32
	list []string
}

func newDictEncoder() *dictEncoder {
	return &dictEncoder{ids: make(map[string]int32)}
}

func (d *dictEncoder) encode(s string) int32 {
	if id, ok := d.ids[s]; ok {
		return id
	}
	id := int32(len(d.list))
	d.list = append(d.list, s)
	d.ids[s] = id
	return id
}

// lookup returns the id of s, or -1 when s was never seen.
func lookup(dict []string, s string) int32 {
	for i, v := range dict {
		if v == s {
			return int32(i)
		}
	}
	return -1
}

// NewColumnStore builds a store from row records. Mainly used by tests and
// callers that already hold decoded rows.
func NewColumnStore(records []models.Record) *ColumnStore {
	b := newStoreBuilder(len(records))
	for _, r := range records {
		b.append(r)
	}
	return b.finish()
}

type storeBuilder struct {
	store *ColumnStore

	sen, con, size, role, remote, country *dictEncoder
}

func newStoreBuilder(capacity int) *storeBuilder {
	return &storeBuilder{
		store: &ColumnStore{
			Years:        make([]int32, 0, capacity),
			Salaries:     make([]float64, 0, capacity),
			SeniorityIDs: make([]int32, 0, capacity),
			ContractIDs:  make([]int32, 0, capacity),
			SizeIDs:      make([]int32, 0, capacity),
			RoleIDs:      make([]int32, 0, capacity),
			RemoteIDs:    make([]int32, 0, capacity),
			CountryIDs:   make([]int32, 0, capacity),
		},
		sen:     newDictEncoder(),
		con:     newDictEncoder(),
		size:    newDictEncoder(),
		role:    newDictEncoder(),
		remote:  newDictEncoder(),
		country: newDictEncoder(),
	}
}

func (b *storeBuilder) append(r models.Record) {
	s := b.store
	s.Years = append(s.Years, int32(r.Year))
	s.Salaries = append(s.Salaries, r.SalaryUSD)
	s.SeniorityIDs = append(s.SeniorityIDs, b.sen.encode(r.Seniority))
	s.ContractIDs = append(s.ContractIDs, b.con.encode(r.ContractType))
	s.SizeIDs = append(s.SizeIDs, b.size.encode(r.CompanySize))
	s.RoleIDs = append(s.RoleIDs, b.role.encode(r.RoleTitle))
	s.RemoteIDs = append(s.RemoteIDs, b.remote.encode(r.RemoteMode))
	s.CountryIDs = append(s.CountryIDs, b.country.encode(r.ResidenceISO3))
}

func (b *storeBuilder) finish() *ColumnStore {
	s := b.store
	s.SeniorityDict = b.sen.list
	s.ContractDict = b.con.list
	s.SizeDict = b.size.list
	s.RoleDict = b.role.list
	s.RemoteDict = b.remote.list
	s.CountryDict = b.country.list
	return s
}
