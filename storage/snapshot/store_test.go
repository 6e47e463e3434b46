package snapshotdb

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustyhq/musty/core/study"
)

func newTestStore(t *testing.T) (*Store, Backend) {
	t.Helper()
	backend := NewMemoryBackend()
	return Open(backend, nil), backend
}

func createCourse(t *testing.T, svc study.ServiceInterface, name string) study.Course {
	t.Helper()
	course, err := svc.CreateCourse(study.NewCourse{Name: name})
	require.NoError(t, err)
	return course
}

func strPtr(s string) *string { return &s }

func Test_Store_CreateCourse(t *testing.T) {
	store, backend := newTestStore(t)
	svc := study.NewService(store)

	c1 := createCourse(t, svc, "Data Structures")
	c2 := createCourse(t, svc, "Physics")

	assert.True(t, strings.HasPrefix(c1.ID, "course_"))
	assert.NotEqual(t, c1.ID, c2.ID)
	assert.Equal(t, study.CourseNotStarted, c1.Status, "status defaults when omitted")
	assert.NotZero(t, c1.CreatedAt)
	assert.Equal(t, c1.CreatedAt, c1.LastUpdated)
	assert.False(t, c1.Archived)

	// every mutation is mirrored to durable storage
	raw, err := backend.Read(SnapshotKey)
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Len(t, snap.Courses, 2)
	assert.Equal(t, CurrentVersion, snap.Version)
}

func Test_Store_CheckCourseNameUniqueness(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	ds := createCourse(t, svc, "Data Structures")

	err := store.CheckCourseNameUniqueness("data structures")
	assert.Equal(t, study.ErrNameExists, errors.Cause(err), "names are unique case-insensitively")

	assert.NoError(t, store.CheckCourseNameUniqueness("Algorithms"))
	assert.NoError(t, store.CheckCourseNameUniqueness("Data Structures", ds), "a course may keep its own name")
}

func Test_Store_UpdateCourse(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	orig := createCourse(t, svc, "Data Structures")
	status := study.CourseInProgress

	got, err := store.UpdateCourse(orig.ID, study.UpdateCourse{
		Professor: strPtr("Prof. Mehta"),
		Status:    &status,
	}, orig.LastUpdated+5)
	require.NoError(t, err)

	// unset fields are preserved (shallow merge)
	assert.Equal(t, "Data Structures", got.Name)
	assert.Equal(t, "Prof. Mehta", got.Professor)
	assert.Equal(t, study.CourseInProgress, got.Status)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)
	assert.Greater(t, got.LastUpdated, orig.LastUpdated)
}

func Test_Store_UpdateCourse_notFound(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	createCourse(t, svc, "Data Structures")

	before, err := store.QueryAllCourses()
	require.NoError(t, err)

	_, err = store.UpdateCourse("course_nope", study.UpdateCourse{Name: strPtr("X")}, 1)
	assert.Equal(t, study.ErrNotFound, errors.Cause(err))

	after, err := store.QueryAllCourses()
	require.NoError(t, err)
	assert.Equal(t, before, after, "a missed update alters nothing")
}

func Test_Store_FilterCourses(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	ds := createCourse(t, svc, "Data Structures")
	phy := createCourse(t, svc, "Physics")
	completed := study.CourseCompleted
	_, err := store.UpdateCourse(ds.ID, study.UpdateCourse{
		Professor:  strPtr("Prof. Mehta"),
		CourseCode: strPtr("CSC301"),
		Status:     &completed,
	}, ds.LastUpdated+1)
	require.NoError(t, err)
	_, err = svc.ArchiveCourse(phy.ID)
	require.NoError(t, err)

	bPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name      string
		filter    study.QueryFilter
		wantNames []string
	}{
		{name: "search by name", filter: study.QueryFilter{Search: "data"}, wantNames: []string{"Data Structures"}},
		{name: "search by code", filter: study.QueryFilter{Search: "csc3"}, wantNames: []string{"Data Structures"}},
		{name: "search by professor", filter: study.QueryFilter{Search: "mehta"}, wantNames: []string{"Data Structures"}},
		{name: "search miss", filter: study.QueryFilter{Search: "chemistry"}, wantNames: nil},
		{name: "archived only", filter: study.QueryFilter{Archived: bPtr(true)}, wantNames: []string{"Physics"}},
		{name: "active only", filter: study.QueryFilter{Archived: bPtr(false)}, wantNames: []string{"Data Structures"}},
		{name: "by status", filter: study.QueryFilter{Status: &completed}, wantNames: []string{"Data Structures"}},
		{name: "status and search miss", filter: study.QueryFilter{Search: "physics", Status: &completed}, wantNames: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses, err := store.FilterCourses(tt.filter)
			require.NoError(t, err)
			var names []string
			for _, c := range courses {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func Test_Store_archiveRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	course := createCourse(t, svc, "Data Structures")
	_, err := svc.CreateTopic(course.ID, study.NewTopic{Name: "Graphs"})
	require.NoError(t, err)

	archived, err := svc.ArchiveCourse(course.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.NotZero(t, archived.ArchivedAt)

	// archival does not touch children
	topics, err := store.TopicsByCourseID(course.ID)
	require.NoError(t, err)
	assert.Len(t, topics, 1)

	restored, err := svc.UnarchiveCourse(course.ID)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Zero(t, restored.ArchivedAt)
}

func Test_Store_DeleteCourse_cascades(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	doomed := createCourse(t, svc, "Data Structures")
	kept := createCourse(t, svc, "Physics")

	_, err := svc.CreateTopic(doomed.ID, study.NewTopic{Name: "Graphs"})
	require.NoError(t, err)
	_, err = svc.CreateAssignment(doomed.ID, study.NewAssignment{Name: "Lab 1"})
	require.NoError(t, err)
	_, err = svc.CreateExam(doomed.ID, study.NewExam{Name: "Midterm"})
	require.NoError(t, err)
	_, err = svc.CreateReview(doomed.ID, study.NewReview{TopicName: "Graphs"})
	require.NoError(t, err)
	_, err = svc.CreateAnalytics(doomed.ID, study.NewAnalytics{Subject: "DS", TotalTopics: 10})
	require.NoError(t, err)
	_, err = svc.CreateEvent(doomed.ID, study.NewCourseEvent{Title: "Lecture", Type: study.EventLecture})
	require.NoError(t, err)
	keptTopic, err := svc.CreateTopic(kept.ID, study.NewTopic{Name: "Optics"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCourse(doomed.ID))

	_, err = store.GetCourseByID(doomed.ID)
	assert.Equal(t, study.ErrNotFound, errors.Cause(err))

	for kind, count := range map[string]int{
		"topics": 1, "assignments": 0, "exams": 0,
		"reviews": 0, "analytics": 0, "events": 0,
	} {
		assert.Equal(t, count, store.Stats().Counts[kind], kind)
	}

	// unrelated children survive
	topics, err := store.TopicsByCourseID(kept.ID)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, keptTopic.ID, topics[0].ID)

	assert.Equal(t, study.ErrNotFound, errors.Cause(store.DeleteCourse(doomed.ID)))
}

func Test_Store_childOperations(t *testing.T) {
	store, _ := newTestStore(t)
	svc := study.NewService(store)

	course := createCourse(t, svc, "Data Structures")

	t.Run("create requires parent course", func(t *testing.T) {
		_, err := svc.CreateTopic("course_nope", study.NewTopic{Name: "Graphs"})
		assert.Equal(t, study.ErrNotFound, errors.Cause(err))
		_, err = svc.CreateAssignment("course_nope", study.NewAssignment{Name: "Lab 1"})
		assert.Equal(t, study.ErrNotFound, errors.Cause(err))
		_, err = svc.CreateExam("course_nope", study.NewExam{Name: "Midterm"})
		assert.Equal(t, study.ErrNotFound, errors.Cause(err))
	})

	t.Run("topic lifecycle", func(t *testing.T) {
		topic, err := svc.CreateTopic(course.ID, study.NewTopic{Name: "Graphs"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(topic.ID, "topic_"))
		assert.Equal(t, course.ID, topic.CourseID)
		assert.Equal(t, study.MasteryNotStarted, topic.Mastery)

		mastered := study.MasteryMastered
		topic, err = svc.UpdateTopic(topic.ID, study.UpdateTopic{Mastery: &mastered})
		require.NoError(t, err)
		assert.Equal(t, study.MasteryMastered, topic.Mastery)
		assert.Equal(t, "Graphs", topic.Name)

		require.NoError(t, svc.DeleteTopic(topic.ID))
		topics, err := svc.TopicsByCourseID(course.ID)
		require.NoError(t, err)
		assert.Empty(t, topics)

		assert.Equal(t, study.ErrNotFound, errors.Cause(svc.DeleteTopic(topic.ID)))
	})

	t.Run("assignment lifecycle", func(t *testing.T) {
		a, err := svc.CreateAssignment(course.ID, study.NewAssignment{Name: "Lab 1", DueDate: "2026-09-15"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(a.ID, "assignment_"))
		assert.Equal(t, study.AssignmentPending, a.Status)

		done := study.AssignmentCompleted
		a, err = svc.UpdateAssignment(a.ID, study.UpdateAssignment{Status: &done})
		require.NoError(t, err)
		assert.Equal(t, study.AssignmentCompleted, a.Status)
		assert.Equal(t, "2026-09-15", a.DueDate)

		require.NoError(t, svc.DeleteAssignment(a.ID))
	})

	t.Run("exam lifecycle", func(t *testing.T) {
		exam, err := svc.CreateExam(course.ID, study.NewExam{Name: "Midterm", Date: "2026-10-20"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(exam.ID, "exam_"))
		assert.Equal(t, study.PrepNotStarted, exam.PrepStatus)

		ready := study.PrepReady
		exam, err = svc.UpdateExam(exam.ID, study.UpdateExam{PrepStatus: &ready})
		require.NoError(t, err)
		assert.Equal(t, study.PrepReady, exam.PrepStatus)

		require.NoError(t, svc.DeleteExam(exam.ID))
	})

	t.Run("review update", func(t *testing.T) {
		review, err := svc.CreateReview(course.ID, study.NewReview{TopicName: "Graphs"})
		require.NoError(t, err)

		notes := "revise BFS"
		review, err = svc.UpdateReview(review.ID, study.UpdateReview{ReviewNotes: &notes})
		require.NoError(t, err)
		assert.Equal(t, "revise BFS", review.ReviewNotes)
		assert.Equal(t, "Graphs", review.TopicName)

		_, err = svc.UpdateReview("review_nope", study.UpdateReview{ReviewNotes: &notes})
		assert.Equal(t, study.ErrNotFound, errors.Cause(err))
	})

	t.Run("analytics update", func(t *testing.T) {
		analytics, err := svc.CreateAnalytics(course.ID, study.NewAnalytics{Subject: "DS", TotalTopics: 10})
		require.NoError(t, err)

		mastered := 4
		analytics, err = svc.UpdateAnalytics(analytics.ID, study.UpdateAnalytics{TopicsMastered: &mastered})
		require.NoError(t, err)
		assert.Equal(t, 4, analytics.TopicsMastered)
		assert.Equal(t, 10, analytics.TotalTopics)
	})

	t.Run("event update", func(t *testing.T) {
		event, err := svc.CreateEvent(course.ID, study.NewCourseEvent{Title: "Lecture", Type: study.EventLecture})
		require.NoError(t, err)

		date := "2026-09-10"
		event, err = svc.UpdateEvent(event.ID, study.UpdateCourseEvent{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, "2026-09-10", event.Date)
		assert.Equal(t, "Lecture", event.Title)

		_, err = svc.UpdateEvent("event_nope", study.UpdateCourseEvent{Date: &date})
		assert.Equal(t, study.ErrNotFound, errors.Cause(err))
	})
}

// failingBackend reads fine but refuses every write.
type failingBackend struct{ Backend }

func (b *failingBackend) Write(string, []byte) error { return ErrStorageUnavailable }

func Test_Store_persistFailureKeepsMemoryState(t *testing.T) {
	store := Open(&failingBackend{Backend: NewMemoryBackend()}, nil)
	svc := study.NewService(store)

	course, err := svc.CreateCourse(study.NewCourse{Name: "Data Structures"})
	require.NoError(t, err, "persistence failures never surface to callers")

	got, err := store.GetCourseByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, got, "in-memory state stays authoritative for the session")
}

func Test_Store_Reload(t *testing.T) {
	backend := NewMemoryBackend()
	store := Open(backend, nil)
	svc := study.NewService(store)

	createCourse(t, svc, "Data Structures")

	newer := defaultSnapshot()
	newer.LastUpdated = store.Stats().LastUpdated + 10
	newer.Courses = []study.Course{{ID: "course_ext", Name: "Physics", Status: study.CourseNotStarted}}
	raw, err := json.Marshal(newer)
	require.NoError(t, err)
	require.NoError(t, backend.Write(SnapshotKey, raw))

	store.Reload()

	_, err = store.GetCourseByID("course_ext")
	assert.NoError(t, err, "newer stored snapshot replaces memory")

	// a stale stored snapshot is ignored
	stale := defaultSnapshot()
	stale.LastUpdated = 1
	raw, err = json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, backend.Write(SnapshotKey, raw))

	store.Reload()
	_, err = store.GetCourseByID("course_ext")
	assert.NoError(t, err)
}
