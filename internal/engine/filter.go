package engine

import "salarydash/internal/models"

// Selection holds the allowed values of each filter dimension. A dimension
// with an empty set matches no record.
type Selection struct {
	Years        []int
	Seniorities  []string
	Contracts    []string
	CompanySizes []string
}

// DefaultSelection selects every observed value, which makes Filter the
// identity.
func DefaultSelection(cs *ColumnStore) Selection {
	opts := cs.Options()
	return Selection{
		Years:        opts.Years,
		Seniorities:  opts.Seniorities,
		Contracts:    opts.Contracts,
		CompanySizes: opts.CompanySizes,
	}
}

// View is a filtered subset of a ColumnStore. It holds row indices into the
// parent in original order.
type View struct {
	store   *ColumnStore
	indices []int
}

// FullView returns a view over every row of cs.
func FullView(cs *ColumnStore) *View {
	indices := make([]int, cs.Len())
	for i := range indices {
		indices[i] = i
	}
	return &View{store: cs, indices: indices}
}

func (v *View) Len() int { return len(v.indices) }
func (v *View) Store() *ColumnStore { return v.store }
func (v *View) Index(i int) int { return v.indices[i] }
func (v *View) Salary(i int) float64 { return v.store.Salaries[v.indices[i]] }
func (v *View) Record(i int) models.Record {
	return v.store.Record(v.indices[i])
}

// Records materializes every row of the view.
func (v *View) Records() []models.Record {
	out := make([]models.Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.store.Record(idx)
	}
	return out
}

// Where narrows v to the rows accepted by keep, which receives store row
// indices.
func (v *View) Where(keep func(row int) bool) *View {
	out := make([]int, 0, len(v.indices))
	for _, idx := range v.indices {
		if keep(idx) {
			out = append(out, idx)
		}
	}
	return &View{store: v.store, indices: out}
}

// Filter keeps the records whose year, seniority, contract type and company
// size are all members of the corresponding selection set.
func Filter(cs *ColumnStore, sel Selection) *View {
	if len(sel.Years) == 0 || len(sel.Seniorities) == 0 ||
		len(sel.Contracts) == 0 || len(sel.CompanySizes) == 0 {
		return &View{store: cs, indices: []int{}}
	}

	years := make(map[int]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		years[y] = struct{}{}
	}
	senMask := dictMask(cs.SeniorityDict, sel.Seniorities)
	conMask := dictMask(cs.ContractDict, sel.Contracts)
	sizeMask := dictMask(cs.SizeDict, sel.CompanySizes)

	ys := cs.Years
	sen := cs.SeniorityIDs
	con := cs.ContractIDs
	size := cs.SizeIDs
	return FullView(cs).Where(func(i int) bool {
		if !senMask[sen[i]] || !conMask[con[i]] || !sizeMask[size[i]] {
			return false
		}
		_, ok := years[int(ys[i])]
		return ok
	})
}

// dictMask turns a set of allowed strings into a boolean table indexed by
// dictionary id. Values absent from the dictionary are ignored.
func dictMask(dict []string, allowed []string) []bool {
	mask := make([]bool, len(dict))
	for _, s := range allowed {
		if id := lookup(dict, s); id >= 0 {
			mask[id] = true
		}
	}
	return mask
}
