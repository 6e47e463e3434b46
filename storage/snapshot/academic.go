package snapshotdb

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core/academic"
)

// AcademicContextKey is the durable key holding the selected academic context.
const AcademicContextKey = "musty_academic_context"

type academicRepository struct {
	backend Backend
}

var _ academic.Repository = (*academicRepository)(nil)

func NewAcademicRepository(backend Backend) academic.Repository {
	return &academicRepository{backend: backend}
}

func (repo *academicRepository) GetContext() (academic.Info, error) {
	raw, err := repo.backend.Read(AcademicContextKey)
	if err != nil {
		if errors.Cause(err) == ErrKeyNotFound {
			return academic.Info{}, academic.ErrNotSet
		}
		return academic.Info{}, errors.Wrap(err, "reading academic context")
	}

	var info academic.Info
	if err := json.Unmarshal(raw, &info); err != nil {
		// corrupt context reads as unset; the next Set overwrites it
		return academic.Info{}, academic.ErrNotSet
	}
	if !info.IsComplete() {
		return academic.Info{}, academic.ErrNotSet
	}
	return info, nil
}

func (repo *academicRepository) SaveContext(info academic.Info) error {
	data, err := json.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "marshaling academic context")
	}
	return repo.backend.Write(AcademicContextKey, data)
}

func (repo *academicRepository) ClearContext() error {
	return repo.backend.Delete(AcademicContextKey)
}
