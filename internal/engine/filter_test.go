package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/models"
)

func filterFixture() *ColumnStore {
	return NewColumnStore([]models.Record{
		{Year: 2023, Seniority: "senior", ContractType: "integral", CompanySize: "grande", RoleTitle: "Data Scientist", RemoteMode: "remoto", ResidenceISO3: "USA", SalaryUSD: 50000},
		{Year: 2022, Seniority: "junior", ContractType: "integral", CompanySize: "media", RoleTitle: "Data Analyst", RemoteMode: "hibrido", ResidenceISO3: "BRA", SalaryUSD: 20000},
		{Year: 2023, Seniority: "pleno", ContractType: "freelancer", CompanySize: "pequena", RoleTitle: "Data Engineer", RemoteMode: "presencial", ResidenceISO3: "DEU", SalaryUSD: 70000},
		{Year: 2024, Seniority: "senior", ContractType: "integral", CompanySize: "media", RoleTitle: "Data Scientist", RemoteMode: "remoto", ResidenceISO3: "USA", SalaryUSD: 90000},
	})
}

func TestFilterAllObservedIsIdentity(t *testing.T) {
	store := filterFixture()
	view := Filter(store, DefaultSelection(store))

	require.Equal(t, store.Len(), view.Len())
	assert.Equal(t, FullView(store).Records(), view.Records())
}

func TestFilterEmptyDimensionYieldsEmpty(t *testing.T) {
	store := filterFixture()
	base := DefaultSelection(store)

	cases := map[string]func(s *Selection){
		"years":         func(s *Selection) { s.Years = nil },
		"seniorities":   func(s *Selection) { s.Seniorities = []string{} },
		"contracts":     func(s *Selection) { s.Contracts = nil },
		"company sizes": func(s *Selection) { s.CompanySizes = []string{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			sel := base
			mutate(&sel)
			assert.Equal(t, 0, Filter(store, sel).Len())
		})
	}
}

func TestFilterConjunction(t *testing.T) {
	store := filterFixture()
	sel := DefaultSelection(store)
	sel.Years = []int{2023, 2024}
	sel.Seniorities = []string{"senior", "pleno"}
	sel.CompanySizes = []string{"grande", "media"}

	view := Filter(store, sel)
	require.Equal(t, 2, view.Len())
	// Order preserved
	assert.Equal(t, 0, view.Index(0))
	assert.Equal(t, 3, view.Index(1))
	assert.Equal(t, 90000.0, view.Salary(1))
}

func TestFilterUnknownValuesMatchNothing(t *testing.T) {
	store := filterFixture()
	sel := DefaultSelection(store)
	sel.Contracts = []string{"temporary"}
	assert.Equal(t, 0, Filter(store, sel).Len())

	sel = DefaultSelection(store)
	sel.Years = []int{1999}
	assert.Equal(t, 0, Filter(store, sel).Len())
}

func TestDefaultSelectionSorted(t *testing.T) {
	store := filterFixture()
	sel := DefaultSelection(store)
	assert.Equal(t, []int{2022, 2023, 2024}, sel.Years)
	assert.Equal(t, []string{"junior", "pleno", "senior"}, sel.Seniorities)
	assert.Equal(t, []string{"freelancer", "integral"}, sel.Contracts)
	assert.Equal(t, []string{"grande", "media", "pequena"}, sel.CompanySizes)
}

func TestViewWhere(t *testing.T) {
	store := filterFixture()
	v := FullView(store).Where(func(row int) bool { return store.Salaries[row] > 40000 })
	require.Equal(t, 3, v.Len())
	assert.Equal(t, "Data Engineer", v.Record(1).RoleTitle)
	assert.Same(t, store, v.Store())
}

func TestFilterYearsBeyondColumnWidth(t *testing.T) {
	store := filterFixture()
	sel := DefaultSelection(store)
	sel.Years = []int{2023 + 1<<32}
	assert.Equal(t, 0, Filter(store, sel).Len())
}
