package snapshotdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core/study"
)

func Test_Watch_memoryBackendIsNoop(t *testing.T) {
	store, _ := newTestStore(t)

	stop, err := Watch(store, nil)
	require.NoError(t, err)
	stop() // must not panic
}

func Test_Watch_picksUpExternalWrites(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	store := Open(backend, nil)

	stop, err := Watch(store, nil)
	require.NoError(t, err)
	defer stop()

	// simulate another process replacing the snapshot file
	external := defaultSnapshot()
	external.LastUpdated = time.Now().UTC().UnixMilli() + 1000
	external.Courses = []study.Course{{ID: "course_ext", Name: "Physics", Status: study.CourseNotStarted}}
	raw, err := json.Marshal(external)
	require.NoError(t, err)
	require.NoError(t, backend.Write(SnapshotKey, raw))

	assert.Eventually(t, func() bool {
		_, err := store.GetCourseByID("course_ext")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}
