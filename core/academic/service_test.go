package academic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core"
)

// fakeRepository holds the context in memory.
type fakeRepository struct {
	info Info
	set  bool
}

func (r *fakeRepository) GetContext() (Info, error) {
	if !r.set {
		return Info{}, ErrNotSet
	}
	return r.info, nil
}

func (r *fakeRepository) SaveContext(info Info) error {
	r.info, r.set = info, true
	return nil
}

func (r *fakeRepository) ClearContext() error {
	r.info, r.set = Info{}, false
	return nil
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	flds := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds[f.Field] = f.Error
	}
	return flds
}

func Test_service_Set(t *testing.T) {
	svc := NewService(&fakeRepository{})

	t.Run("valid context", func(t *testing.T) {
		got, err := svc.Set(Info{Year: "se", Semester: "3", Branch: "comp"})
		require.NoError(t, err)
		assert.Equal(t, YearSE, got.Year, "year and branch are normalized to upper case")
		assert.Equal(t, "COMP", got.Branch)
		assert.NotNil(t, got.Electives)
	})

	t.Run("FE needs no branch", func(t *testing.T) {
		got, err := svc.Set(Info{Year: YearFE, Semester: "1"})
		require.NoError(t, err)
		assert.Empty(t, got.Branch)
	})

	t.Run("unknown year", func(t *testing.T) {
		_, err := svc.Set(Info{Year: "PHD", Semester: "1"})
		assert.Contains(t, fieldErrors(t, err), "year")
	})

	t.Run("semester outside year", func(t *testing.T) {
		_, err := svc.Set(Info{Year: YearFE, Semester: "5"})
		assert.Contains(t, fieldErrors(t, err), "semester")
	})

	t.Run("branch required from SE onwards", func(t *testing.T) {
		_, err := svc.Set(Info{Year: YearSE, Semester: "3"})
		assert.Contains(t, fieldErrors(t, err), "branch")
	})

	t.Run("unknown branch", func(t *testing.T) {
		_, err := svc.Set(Info{Year: YearSE, Semester: "3", Branch: "WIZARDRY"})
		assert.Contains(t, fieldErrors(t, err), "branch")
	})
}

func Test_service_lifecycle(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewService(repo)

	assert.False(t, svc.IsSet())
	_, err := svc.Get()
	assert.Equal(t, ErrNotSet, err)

	want, err := svc.Set(Info{Year: YearTE, Semester: "5", Branch: "IT", Electives: []string{"Web Development"}})
	require.NoError(t, err)
	assert.True(t, svc.IsSet())

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, svc.Clear())
	assert.False(t, svc.IsSet())
}

func Test_Info_IsComplete(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{name: "empty", info: Info{}, want: false},
		{name: "FE without branch", info: Info{Year: YearFE, Semester: "1"}, want: true},
		{name: "SE without branch", info: Info{Year: YearSE, Semester: "3"}, want: false},
		{name: "SE with branch", info: Info{Year: YearSE, Semester: "3", Branch: "COMP"}, want: true},
		{name: "missing semester", info: Info{Year: YearSE, Branch: "COMP"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.IsComplete())
		})
	}
}

func Test_YearFromSemester(t *testing.T) {
	assert.Equal(t, YearFE, YearFromSemester("1"))
	assert.Equal(t, YearSE, YearFromSemester("4"))
	assert.Equal(t, YearBE, YearFromSemester("8"))
	assert.Equal(t, YearFE, YearFromSemester("9"), "unknown semesters default to the first year")
}
