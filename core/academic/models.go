package academic

// Years of study (Mumbai University B.E. structure)
const (
	YearFE = "FE"
	YearSE = "SE"
	YearTE = "TE"
	YearBE = "BE"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	Years = []Option{
		{Value: YearFE, Label: "First Year (F.E.)"},
		{Value: YearSE, Label: "Second Year (S.E.)"},
		{Value: YearTE, Label: "Third Year (T.E.)"},
		{Value: YearBE, Label: "Final Year (B.E.)"},
	}

	semestersByYear = map[string][]string{
		YearFE: {"1", "2"},
		YearSE: {"3", "4"},
		YearTE: {"5", "6"},
		YearBE: {"7", "8"},
	}

	Branches = []Option{
		{Value: "AUTO", Label: "Automobile Engineering"},
		{Value: "BIOMED", Label: "Biomedical Engineering"},
		{Value: "BIOTECH", Label: "Biotechnology"},
		{Value: "CHEM", Label: "Chemical Engineering"},
		{Value: "CIVIL", Label: "Civil Engineering"},
		{Value: "COMP", Label: "Computer Engineering"},
		{Value: "ELEC", Label: "Electrical Engineering"},
		{Value: "ETRX", Label: "Electronics Engineering"},
		{Value: "EXTC", Label: "Electronics & Telecommunication Engineering"},
		{Value: "IT", Label: "Information Technology"},
		{Value: "INST", Label: "Instrumentation Engineering"},
		{Value: "MECH", Label: "Mechanical Engineering"},
		{Value: "MECA", Label: "Mechatronics Engineering"},
		{Value: "PRINT", Label: "Printing & Packaging Technology"},
		{Value: "PROD", Label: "Production Engineering"},
		{Value: "AIDS", Label: "Artificial Intelligence and Data Science"},
		{Value: "CYBER", Label: "Cyber Security Engineering"},
		{Value: "IOT", Label: "Internet of Things (IoT) Engineering"},
		{Value: "CIVIL_INFRA", Label: "Civil & Infrastructure Engineering"},
	}

	// electives get more specialized in later years; FE has a common curriculum
	ElectivesByYear = map[string][]string{
		YearFE: {},
		YearSE: {"Advanced Mathematics", "Environmental Studies", "Engineering Economics", "Professional Communication"},
		YearTE: {
			"Machine Learning Fundamentals", "Web Development", "Mobile Computing",
			"Cyber Security Basics", "Data Analytics", "Cloud Computing Intro",
			"Entrepreneurship Development",
		},
		YearBE: {
			"Advanced Artificial Intelligence", "Blockchain Technology", "Internet of Things",
			"Advanced Data Science", "Cloud Computing & DevOps", "Research Methodology",
			"Industry 4.0", "Project Management", "Innovation & Design Thinking",
		},
	}
)

// Info is the academic context driving conditional data fetches across the app.
type Info struct {
	Year      string   `json:"year"`
	Semester  string   `json:"semester"`
	Branch    string   `json:"branch"`
	Electives []string `json:"electives"`
}

// IsComplete reports whether the context can gate resource fetches:
// year and semester are set, and branch is set unless the year is FE
// (first-years share a common curriculum and pick no branch).
func (i Info) IsComplete() bool {
	return i.Year != "" && i.Semester != "" && (i.Branch != "" || i.Year == YearFE)
}

// BranchRequired reports whether a branch must be selected for the given year.
func BranchRequired(year string) bool {
	return year != YearFE
}

func SemestersForYear(year string) []string {
	return semestersByYear[year]
}

func ValidYear(year string) bool {
	_, ok := semestersByYear[year]
	return ok
}

func ValidSemesterForYear(year, semester string) bool {
	for _, s := range semestersByYear[year] {
		if s == semester {
			return true
		}
	}
	return false
}

func ValidBranch(branch string) bool {
	for _, b := range Branches {
		if b.Value == branch {
			return true
		}
	}
	return false
}

func YearLabel(year string) string {
	for _, y := range Years {
		if y.Value == year {
			return y.Label
		}
	}
	return year
}

func BranchLabel(branch string) string {
	for _, b := range Branches {
		if b.Value == branch {
			return b.Label
		}
	}
	return branch
}

// YearFromSemester maps a semester number back to its year of study.
func YearFromSemester(semester string) string {
	for year, semesters := range semestersByYear {
		for _, s := range semesters {
			if s == semester {
				return year
			}
		}
	}
	return YearFE
}
