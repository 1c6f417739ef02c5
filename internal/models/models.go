package models

// Record is one salary observation.
type Record struct {
	Year          int     `json:"year"`
	Seniority     string  `json:"seniority"`
	ContractType  string  `json:"contract_type"`
	CompanySize   string  `json:"company_size"`
	RoleTitle     string  `json:"role_title"`
	RemoteMode    string  `json:"remote_mode"`
	ResidenceISO3 string  `json:"residence_iso3"`
	SalaryUSD     float64 `json:"salary_usd"`
}

type DashboardData struct {
	Empty     bool            `json:"empty"`
	State     StateEcho       `json:"state"`
	Metrics   Metrics         `json:"metrics"`
	TopRoles  []RoleMean      `json:"top_roles,omitempty"`
	Histogram []HistogramBin  `json:"histogram,omitempty"`
	Remote    []RemoteShare   `json:"remote,omitempty"`
	Countries *CountrySection `json:"countries,omitempty"`
	Preview   []Record        `json:"preview"`
	Total     int             `json:"total_records"`
}

// StateEcho reports the normalized inputs the dashboard was computed from.
type StateEcho struct {
	TopN int `json:"top_n"`
	Bins int `json:"bins"`
}

type Metrics struct {
	MeanSalary     float64 `json:"mean_salary"`
	MaxSalary      float64 `json:"max_salary"`
	RecordCount    int     `json:"record_count"`
	MostCommonRole string  `json:"most_common_role"`

	MeanSalaryText  string `json:"mean_salary_text"`
	MaxSalaryText   string `json:"max_salary_text"`
	RecordCountText string `json:"record_count_text"`
}

type RoleMean struct {
	Role    string  `json:"role"`
	MeanUSD float64 `json:"mean_usd"`
	Count   int     `json:"count"`
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type RemoteShare struct {
	Mode    string  `json:"mode"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type CountryYearMean struct {
	Year        int     `json:"year"`
	ISO3        string  `json:"iso3"`
	Country     string  `json:"country"`
	Abbrev      string  `json:"abbrev"`
	MeanUSD     float64 `json:"mean_usd"`
	Count       int     `json:"count"`
	YearMeanUSD float64 `json:"year_mean_usd"`
	Deviation   float64 `json:"deviation"`
}

type CountryFrame struct {
	Year int               `json:"year"`
	Rows []CountryYearMean `json:"rows"`
}

type CountrySection struct {
	Role   string         `json:"role"`
	Frames []CountryFrame `json:"frames"`
}

// Options lists the observed values behind each sidebar control.
type Options struct {
	Years        []int    `json:"years"`
	Seniorities  []string `json:"seniorities"`
	Contracts    []string `json:"contracts"`
	CompanySizes []string `json:"company_sizes"`
	TopN         Slider   `json:"top_n"`
	Bins         Slider   `json:"bins"`
}

type Slider struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}
