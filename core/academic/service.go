package academic

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
)

var (
	// errors
	ErrNotSet          = errors.New("academic context not set")
	errUnknownYear     = "unknown year of study"
	errUnknownBranch   = "unknown branch"
	errSemesterForYear = "semester does not belong to the selected year"
	errBranchRequired  = "branch is required from second year onwards"
)

type (
	// Repository persists the selected academic context under its own durable key.
	Repository interface {
		GetContext() (Info, error)
		SaveContext(info Info) error
		ClearContext() error
	}

	ServiceInterface interface {
		Set(info Info) (Info, error)
		Get() (Info, error)
		IsSet() bool
		Clear() error
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// Set validates and persists the academic context.
func (svc *service) Set(info Info) (Info, error) {
	info.Year = strings.ToUpper(core.CleanString(info.Year))
	info.Semester = core.CleanString(info.Semester)
	info.Branch = strings.ToUpper(core.CleanString(info.Branch))

	var flds []core.FieldError
	if !ValidYear(info.Year) {
		flds = append(flds, core.FieldError{Field: "year", Error: errUnknownYear})
	} else {
		if !ValidSemesterForYear(info.Year, info.Semester) {
			flds = append(flds, core.FieldError{Field: "semester", Error: errSemesterForYear})
		}
		if info.Branch == "" {
			if BranchRequired(info.Year) {
				flds = append(flds, core.FieldError{Field: "branch", Error: errBranchRequired})
			}
		} else if !ValidBranch(info.Branch) {
			flds = append(flds, core.FieldError{Field: "branch", Error: errUnknownBranch})
		}
	}
	if flds != nil {
		return Info{}, core.NewValidationError(errors.New("invalid academic context"), flds...)
	}

	if info.Electives == nil {
		info.Electives = []string{}
	}
	if err := svc.repo.SaveContext(info); err != nil {
		return Info{}, errors.Wrap(err, "saving academic context")
	}
	return info, nil
}

func (svc *service) Get() (Info, error) {
	return svc.repo.GetContext()
}

func (svc *service) IsSet() bool {
	_, err := svc.repo.GetContext()
	return err == nil
}

func (svc *service) Clear() error {
	return svc.repo.ClearContext()
}
