package contracts

// State is a top-level administrative region.
type State struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// District is a sub-region belonging to exactly one State.
type District struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// StatRow is one year of MGNREGA statistics for a district as scanned from the
// stats query. Every measure column may be NULL.
type StatRow struct {
	Year              Int     `db:"year"`
	PeopleEmployed    Int     `db:"num_people_employed"`
	TotalFunds        Decimal `db:"total_funds"`
	Projects          Int     `db:"num_projects"`
	AverageWage       Decimal `db:"average_wage"`
	TotalWorkDays     Int     `db:"total_work_days"`
	HouseholdsCovered Int     `db:"households_covered"`
	EmploymentRate    Decimal `db:"employment_rate"`
	Remarks           Text    `db:"remarks"`
	DistrictName      Text    `db:"district_name"`
	StateName         Text    `db:"state_name"`
}

// Stat is the response shape of a StatRow.
// It never contains null, missing values are rendered as empty strings.
type Stat struct {
	Year              Int     `json:"year"`
	PeopleEmployed    Int     `json:"num_people_employed"`
	TotalFunds        Decimal `json:"total_funds"`
	Projects          Int     `json:"num_projects"`
	AverageWage       Decimal `json:"average_wage"`
	TotalWorkDays     Int     `json:"total_work_days"`
	HouseholdsCovered Int     `json:"households_covered"`
	EmploymentRate    Decimal `json:"employment_rate"`
	Remarks           Text    `json:"remarks"`
	DistrictName      Text    `json:"district_name"`
	StateName         Text    `json:"state_name"`
}

// NewStat maps a scanned row to its response.
func NewStat(row StatRow) Stat {
	return Stat{
		Year:              row.Year,
		PeopleEmployed:    row.PeopleEmployed,
		TotalFunds:        row.TotalFunds,
		Projects:          row.Projects,
		AverageWage:       row.AverageWage,
		TotalWorkDays:     row.TotalWorkDays,
		HouseholdsCovered: row.HouseholdsCovered,
		EmploymentRate:    row.EmploymentRate,
		Remarks:           row.Remarks,
		DistrictName:      row.DistrictName,
		StateName:         row.StateName,
	}
}

// NewStats maps rows in order. The result is never nil.
func NewStats(rows []StatRow) []Stat {
	stats := make([]Stat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, NewStat(row))
	}

	return stats
}
