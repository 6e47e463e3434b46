package resource

// Resource kinds served by the managed backend.
type Kind string

const (
	KindSyllabus     Kind = "syllabus"
	KindPYQ          Kind = "pyq"
	KindPYQSolution  Kind = "pyq_solution"
	KindQuestionBank Kind = "question_bank"
	KindPeerNote     Kind = "peer_note"
)

var allKinds = []Kind{KindSyllabus, KindPYQ, KindPYQSolution, KindQuestionBank, KindPeerNote}

func ValidKind(k Kind) bool {
	for _, v := range allKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Resource is one row from the managed backend, tagged with its kind.
type Resource struct {
	ID         string  `json:"id"`
	Type       Kind    `json:"type"`
	Subject    string  `json:"subject"`
	Year       string  `json:"year,omitempty"`
	Semester   int     `json:"semester"`
	Branch     string  `json:"branch,omitempty"`
	Title      string  `json:"title"`
	FileURL    string  `json:"fileUrl"`
	ExamDate   string  `json:"examDate,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	UploadedBy string  `json:"uploadedBy,omitempty"`
	CreatedAt  string  `json:"createdAt,omitempty"`
}

// Query identifies the academic slice of resources to fetch.
type Query struct {
	Year     string
	Semester int
	Branch   string
}
