package database

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mustyhq/musty/core/resource"
)

type resourceRow struct {
	ID         string          `db:"id"`
	Subject    string          `db:"subject"`
	Year       string          `db:"year"`
	Semester   int             `db:"semester"`
	Branch     string          `db:"branch"`
	Title      string          `db:"title"`
	FileURL    string          `db:"file_url"`
	ExamDate   string          `db:"exam_date"`
	Rating     sql.NullFloat64 `db:"rating"`
	UploadedBy string          `db:"uploaded_by"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (r resourceRow) toResource() resource.Resource {
	return resource.Resource{
		ID:         r.ID,
		Subject:    r.Subject,
		Year:       r.Year,
		Semester:   r.Semester,
		Branch:     r.Branch,
		Title:      r.Title,
		FileURL:    r.FileURL,
		ExamDate:   r.ExamDate,
		Rating:     r.Rating.Float64,
		UploadedBy: r.UploadedBy,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type resourceRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*resourceRepository)(nil)

func NewResourceRepository(db *sqlx.DB) resource.Repository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) query(query string, args ...interface{}) ([]resource.Resource, error) {
	var rows []resourceRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	resources := make([]resource.Resource, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, r.toResource())
	}
	return resources, nil
}

func (repo *resourceRepository) Syllabus(q resource.Query) ([]resource.Resource, error) {
	// FE shares a common curriculum; its syllabus rows are not branch-specific
	if q.Year == "FE" {
		return repo.query(
			`SELECT * FROM syllabus WHERE year = $1 AND semester = $2 ORDER BY created_at`,
			q.Year, q.Semester,
		)
	}
	return repo.query(
		`SELECT * FROM syllabus WHERE year = $1 AND semester = $2 AND branch = $3 ORDER BY created_at`,
		q.Year, q.Semester, q.Branch,
	)
}

func (repo *resourceRepository) PYQs(q resource.Query) ([]resource.Resource, error) {
	return repo.query(
		`SELECT * FROM pyqs WHERE semester = $1 AND branch = $2 ORDER BY exam_date DESC`,
		q.Semester, q.Branch,
	)
}

func (repo *resourceRepository) PYQSolutions(q resource.Query) ([]resource.Resource, error) {
	return repo.query(
		`SELECT * FROM pyq_solutions WHERE semester = $1 AND branch = $2 ORDER BY created_at`,
		q.Semester, q.Branch,
	)
}

func (repo *resourceRepository) QuestionBanks(q resource.Query) ([]resource.Resource, error) {
	return repo.query(
		`SELECT * FROM question_banks WHERE semester = $1 AND branch = $2 ORDER BY created_at`,
		q.Semester, q.Branch,
	)
}

func (repo *resourceRepository) PeerNotes(q resource.Query) ([]resource.Resource, error) {
	return repo.query(
		`SELECT * FROM peer_notes WHERE semester = $1 AND branch = $2 ORDER BY rating DESC`,
		q.Semester, q.Branch,
	)
}
