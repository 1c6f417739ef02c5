package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"salarydash/internal/engine"
	"salarydash/internal/models"
)

func TestWriteFullReport(t *testing.T) {
	store := engine.NewColumnStore([]models.Record{
		{Year: 2023, Seniority: "senior", ContractType: "integral", CompanySize: "grande", RoleTitle: "Data Scientist", RemoteMode: "remoto", ResidenceISO3: "USA", SalaryUSD: 150000},
		{Year: 2023, Seniority: "junior", ContractType: "integral", CompanySize: "media", RoleTitle: "Data Analyst", RemoteMode: "hibrido", ResidenceISO3: "BRA", SalaryUSD: 30000},
		{Year: 2023, Seniority: "pleno", ContractType: "integral", CompanySize: "media", RoleTitle: "Data Scientist", RemoteMode: "remoto", ResidenceISO3: "BRA", SalaryUSD: 50000},
	})
	data := engine.BuildDashboard(store, engine.State{
		Selection: engine.DefaultSelection(store),
		TopN:      10,
		Bins:      30,
	}, engine.ViewOptions{})

	var buf bytes.Buffer
	Write(&buf, data, Options{NoColor: true, Countries: true})
	out := buf.String()

	assert.Contains(t, out, "Mean salary")
	assert.Contains(t, out, "$76,667")
	assert.Contains(t, out, "Top 2 roles by mean salary")
	assert.Contains(t, out, "Work arrangement")
	assert.Contains(t, out, "Data Scientist mean salary by country")
	assert.Contains(t, out, "+50000")
	assert.NotContains(t, out, "\x1b[")

	// Highest role printed first
	roles := out[strings.Index(out, "Top 2 roles"):strings.Index(out, "Work arrangement")]
	assert.Less(t, strings.Index(roles, "Data Scientist"), strings.Index(roles, "Data Analyst"))
}

func TestWriteEmptyReport(t *testing.T) {
	store := engine.NewColumnStore(nil)
	data := engine.BuildDashboard(store, engine.State{Selection: engine.DefaultSelection(store), TopN: 10, Bins: 30}, engine.ViewOptions{})

	var buf bytes.Buffer
	Write(&buf, data, Options{NoColor: true})

	assert.Contains(t, buf.String(), "No records match the current filters.")
	assert.NotContains(t, buf.String(), "Top ")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "abc  ", pad("abc", 5))
	assert.Equal(t, 4, len([]rune(pad("abcdefgh", 4))))
}
