package engine

import (
	"math"
	"testing"

	"salarydash/internal/models"
)

const eps = 1e-6

func rec(year int, role string, usd float64, iso3 string) models.Record {
	return models.Record{
		Year:          year,
		Seniority:     "senior",
		ContractType:  "integral",
		CompanySize:   "media",
		RoleTitle:     role,
		RemoteMode:    "remoto",
		ResidenceISO3: iso3,
		SalaryUSD:     usd,
	}
}

func TestTopRolesByMean(t *testing.T) {
	// Scenario:
	// Analyst mean 40, Engineer mean 90, Scientist mean 60, Manager mean 90
	store := NewColumnStore([]models.Record{
		rec(2023, "Analyst", 30, "USA"),
		rec(2023, "Engineer", 80, "USA"),
		rec(2023, "Scientist", 60, "USA"),
		rec(2023, "Analyst", 50, "USA"),
		rec(2023, "Manager", 90, "USA"),
		rec(2023, "Engineer", 100, "USA"),
	})

	top := TopRolesByMean(FullView(store), 3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 roles, got %d", len(top))
	}

	// Ascending for presentation, Engineer/Manager tie keeps encounter order
	want := []string{"Scientist", "Engineer", "Manager"}
	for i, w := range want {
		if top[i].Role != w {
			t.Errorf("Position %d: Expected %s, got %s", i, w, top[i].Role)
		}
	}
	if top[1].Count != 2 || math.Abs(top[1].MeanUSD-90) > eps {
		t.Errorf("Engineer stats incorrect: %+v", top[1])
	}

	// Excluded roles never exceed the selected minimum
	all := TopRolesByMean(FullView(store), 100)
	if len(all) != 4 {
		t.Fatalf("Expected 4 roles when N exceeds distinct roles, got %d", len(all))
	}
	for _, r := range all {
		selected := false
		for _, s := range top {
			if s.Role == r.Role {
				selected = true
			}
		}
		if !selected && r.MeanUSD > top[0].MeanUSD+eps {
			t.Errorf("Unselected role %s mean %f exceeds selected minimum %f", r.Role, r.MeanUSD, top[0].MeanUSD)
		}
	}
	for i := 1; i < len(all); i++ {
		if all[i].MeanUSD < all[i-1].MeanUSD {
			t.Errorf("Result not ascending at %d", i)
		}
	}
}

func TestTopRolesByMeanEmpty(t *testing.T) {
	store := NewColumnStore(nil)
	if got := TopRolesByMean(FullView(store), 10); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
	store = NewColumnStore([]models.Record{rec(2023, "A", 1, "USA")})
	if got := TopRolesByMean(FullView(store), 0); len(got) != 0 {
		t.Errorf("Expected empty result for N=0, got %v", got)
	}
}

func TestCountryYearMeans(t *testing.T) {
	store := NewColumnStore([]models.Record{
		rec(2023, "Data Scientist", 50000, "USA"),
		rec(2023, "Data Scientist", 70000, "USA"),
		rec(2023, "Data Scientist", 30000, "BRA"),
		rec(2022, "Data Scientist", 60000, "USA"),
		rec(2023, "Data Engineer", 999999, "USA"),
	})

	rows := CountryYearMeans(FullView(store), DefaultTargetRole)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(rows))
	}

	// Sorted by mean descending
	for i := 1; i < len(rows); i++ {
		if rows[i].MeanUSD > rows[i-1].MeanUSD {
			t.Errorf("Rows not sorted descending at %d", i)
		}
	}

	// 2023 global mean = (50000+70000+30000)/3 = 50000
	weighted := map[int]float64{}
	for _, r := range rows {
		if math.Abs(r.Deviation-(r.MeanUSD-r.YearMeanUSD)) > eps {
			t.Errorf("Deviation mismatch for %+v", r)
		}
		weighted[r.Year] += r.Deviation * float64(r.Count)
		if r.Year == 2023 && math.Abs(r.YearMeanUSD-50000) > eps {
			t.Errorf("Expected 2023 year mean 50000, got %f", r.YearMeanUSD)
		}
		if r.ISO3 == "BRA" && r.Abbrev != "BR" {
			t.Errorf("Expected BRA abbrev BR, got %s", r.Abbrev)
		}
	}
	for y, w := range weighted {
		if math.Abs(w) > 1e-3 {
			t.Errorf("Year %d weighted deviations should net to zero, got %f", y, w)
		}
	}

	frames := Frames(rows)
	if len(frames) != 2 || frames[0].Year != 2022 || frames[1].Year != 2023 {
		t.Fatalf("Unexpected frames: %+v", frames)
	}
	if len(frames[1].Rows) != 2 {
		t.Errorf("Expected 2 rows in 2023 frame, got %d", len(frames[1].Rows))
	}
}

func TestCountryYearMeansUnknownRole(t *testing.T) {
	store := NewColumnStore([]models.Record{rec(2023, "Data Engineer", 1, "USA")})
	if rows := CountryYearMeans(FullView(store), DefaultTargetRole); len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestSummarize(t *testing.T) {
	store := NewColumnStore([]models.Record{
		rec(2023, "B", 10, "USA"),
		rec(2023, "A", 30, "USA"),
		rec(2023, "A", 20, "USA"),
		rec(2023, "B", 40, "USA"),
	})
	m := Summarize(FullView(store))
	if m.RecordCount != 4 || m.MaxSalary != 40 || math.Abs(m.MeanSalary-25) > eps {
		t.Errorf("Unexpected metrics: %+v", m)
	}
	// A and B tie, B seen first
	if m.MostCommonRole != "B" {
		t.Errorf("Expected most common role B, got %s", m.MostCommonRole)
	}

	empty := Summarize(FullView(NewColumnStore(nil)))
	if empty != (models.Metrics{}) {
		t.Errorf("Expected zero metrics, got %+v", empty)
	}
}

func TestHistogram(t *testing.T) {
	store := NewColumnStore([]models.Record{
		rec(2023, "A", 0, "USA"),
		rec(2023, "A", 25, "USA"),
		rec(2023, "A", 50, "USA"),
		rec(2023, "A", 99, "USA"),
		rec(2023, "A", 100, "USA"),
	})
	bins := Histogram(FullView(store), 4)
	if len(bins) != 4 {
		t.Fatalf("Expected 4 bins, got %d", len(bins))
	}
	want := []int{1, 1, 1, 2}
	total := 0
	for i, b := range bins {
		if b.Count != want[i] {
			t.Errorf("Bin %d: Expected %d, got %d", i, want[i], b.Count)
		}
		total += b.Count
	}
	if total != 5 {
		t.Errorf("Bin counts should sum to 5, got %d", total)
	}
	if bins[0].Lower != 0 || bins[3].Upper != 100 {
		t.Errorf("Unexpected bin range %f..%f", bins[0].Lower, bins[3].Upper)
	}

	flat := NewColumnStore([]models.Record{rec(2023, "A", 7, "USA"), rec(2023, "A", 7, "USA")})
	single := Histogram(FullView(flat), 30)
	if len(single) != 1 || single[0].Count != 2 {
		t.Errorf("Expected one bin with 2 entries, got %+v", single)
	}
}

func TestRemoteShare(t *testing.T) {
	records := []models.Record{
		rec(2023, "A", 1, "USA"),
		rec(2023, "A", 1, "USA"),
		rec(2023, "A", 1, "USA"),
		rec(2023, "A", 1, "USA"),
	}
	records[0].RemoteMode = "presencial"
	records[1].RemoteMode = "hibrido"
	records[2].RemoteMode = "hibrido"
	records[3].RemoteMode = "remoto"

	shares := RemoteShare(FullView(NewColumnStore(records)))
	if len(shares) != 3 {
		t.Fatalf("Expected 3 modes, got %d", len(shares))
	}
	if shares[0].Mode != "hibrido" || shares[0].Count != 2 || shares[0].Percent != 50 {
		t.Errorf("Unexpected top share: %+v", shares[0])
	}
	// presencial seen before remoto
	if shares[1].Mode != "presencial" || shares[2].Mode != "remoto" {
		t.Errorf("Tie order not preserved: %+v", shares)
	}
}

func TestPreview(t *testing.T) {
	records := make([]models.Record, 0, 5)
	for i := 0; i < 5; i++ {
		records = append(records, rec(2020+i, "A", float64(i), "USA"))
	}
	store := NewColumnStore(records)
	got := Preview(FullView(store), 3)
	if len(got) != 3 || got[2].Year != 2022 {
		t.Errorf("Unexpected preview: %+v", got)
	}
	if len(Preview(FullView(store), 1000)) != 5 {
		t.Error("Preview should cap at view length")
	}
}

func TestHistogramExtremeRanges(t *testing.T) {
	cases := map[string][2]float64{
		"subnormal":   {0, 5e-324},
		"full range":  {-math.MaxFloat64, math.MaxFloat64},
		"huge values": {math.MaxFloat64 / 2, math.MaxFloat64},
	}
	for name, vals := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewColumnStore([]models.Record{
				rec(2023, "A", vals[0], "USA"),
				rec(2023, "A", vals[1], "USA"),
				rec(2023, "A", vals[1], "USA"),
			})
			bins := Histogram(FullView(store), 30)
			if len(bins) == 0 {
				t.Fatal("Expected at least one bin")
			}
			total := 0
			for _, b := range bins {
				total += b.Count
				if math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) {
					t.Errorf("Non-finite bin bounds %+v", b)
				}
			}
			if total != 3 {
				t.Errorf("Bin counts should sum to 3, got %d", total)
			}
			if bins[0].Lower != vals[0] || bins[len(bins)-1].Upper != vals[1] {
				t.Errorf("Unexpected bin range %g..%g", bins[0].Lower, bins[len(bins)-1].Upper)
			}
		})
	}

	store := NewColumnStore([]models.Record{
		rec(2023, "A", -math.MaxFloat64, "USA"),
		rec(2023, "A", math.MaxFloat64, "USA"),
	})
	bins := Histogram(FullView(store), 30)
	if len(bins) != 30 || bins[0].Count != 1 || bins[29].Count != 1 {
		t.Errorf("Expected extremes in first and last of 30 bins, got %d bins", len(bins))
	}
}
