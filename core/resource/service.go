package resource

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/academic"
)

var (
	// errors
	ErrUnknownKind       = errors.New("unknown resource type")
	ErrIncompleteContext = errors.New("academic context is not fully set")
)

type (
	// Repository reads resource rows from the managed backend; the portal never
	// writes them.
	Repository interface {
		// Syllabus rows for FE ignore the branch filter: first-years share a
		// common curriculum.
		Syllabus(q Query) ([]Resource, error)
		PYQs(q Query) ([]Resource, error)
		PYQSolutions(q Query) ([]Resource, error)
		QuestionBanks(q Query) ([]Resource, error)
		PeerNotes(q Query) ([]Resource, error)
	}

	ServiceInterface interface {
		ByKind(kind Kind, info academic.Info) ([]Resource, error)
		All(info academic.Info) ([]Resource, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) query(info academic.Info) (Query, error) {
	if !info.IsComplete() {
		return Query{}, ErrIncompleteContext
	}
	sem, err := strconv.Atoi(info.Semester)
	if err != nil {
		return Query{}, core.NewValidationError(errors.New("invalid semester"),
			core.FieldError{Field: "semester", Error: "must be a number"})
	}
	return Query{Year: info.Year, Semester: sem, Branch: info.Branch}, nil
}

// ByKind fetches one resource kind for the given academic context.
// Fetches are gated: an incomplete context returns ErrIncompleteContext
// instead of an unfiltered query.
func (svc *service) ByKind(kind Kind, info academic.Info) ([]Resource, error) {
	if !ValidKind(kind) {
		return nil, core.NewValidationError(ErrUnknownKind,
			core.FieldError{Field: "type", Error: ErrUnknownKind.Error()})
	}
	q, err := svc.query(info)
	if err != nil {
		return nil, err
	}

	var rows []Resource
	switch kind {
	case KindSyllabus:
		rows, err = svc.repo.Syllabus(q)
	case KindPYQ:
		rows, err = svc.repo.PYQs(q)
	case KindPYQSolution:
		rows, err = svc.repo.PYQSolutions(q)
	case KindQuestionBank:
		rows, err = svc.repo.QuestionBanks(q)
	case KindPeerNote:
		rows, err = svc.repo.PeerNotes(q)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", kind)
	}
	for i := range rows {
		rows[i].Type = kind
	}
	return rows, nil
}

// All aggregates every kind, each row tagged with its type discriminator.
func (svc *service) All(info academic.Info) ([]Resource, error) {
	var all []Resource
	for _, kind := range allKinds {
		rows, err := svc.ByKind(kind, info)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}
