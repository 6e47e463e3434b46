package snapshotdb

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
	"github.com/mustyhq/musty/core/study"
)

// Store is the sole mutator of the snapshot. It owns an in-memory snapshot of
// all locally-authored entities, mirrors every mutation to durable storage and
// serves reads without touching the backend.
//
// The in-memory snapshot remains the source of truth for the session even when
// a durable write fails: persistence errors are logged, never propagated, and
// never corrupt the in-memory state.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	backend Backend
	logger  core.Logger
}

var _ study.Repository = (*Store)(nil)

// Open loads and migrates whatever the backend currently holds.
// An absent key or corrupt data starts from the default empty snapshot.
func Open(backend Backend, logger core.Logger) *Store {
	s := &Store{backend: backend, logger: logger}

	raw, err := backend.Read(SnapshotKey)
	if err != nil && errors.Cause(err) != ErrKeyNotFound {
		s.logError("snapshot: reading durable storage", err)
	}
	s.snap = Load(raw)
	return s
}

func (s *Store) logError(msg string, err error) {
	if s.logger != nil {
		s.logger.Error(msg, err)
	}
}

// persist mirrors the whole snapshot to durable storage; caller holds the lock.
func (s *Store) persist() {
	s.snap.Version = CurrentVersion
	s.snap.LastUpdated = time.Now().UTC().UnixMilli()

	data, err := json.Marshal(s.snap)
	if err != nil {
		s.logError("snapshot: marshaling", err)
		return
	}
	if err := s.backend.Write(SnapshotKey, data); err != nil {
		s.logError("snapshot: persisting (in-memory state kept)", err)
	}
}

// Reload re-reads durable storage, replacing the in-memory snapshot when the
// stored copy is newer. Last-write-wins at whole-snapshot granularity.
func (s *Store) Reload() {
	raw, err := s.backend.Read(SnapshotKey)
	if err != nil {
		if errors.Cause(err) != ErrKeyNotFound {
			s.logError("snapshot: reloading", err)
		}
		return
	}
	loaded := Load(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	if loaded.LastUpdated >= s.snap.LastUpdated {
		s.snap = loaded
	}
}

// Stats summarizes the current snapshot for inspection tooling.
type Stats struct {
	Version     string
	LastUpdated int64
	Counts      map[string]int
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Version:     s.snap.Version,
		LastUpdated: s.snap.LastUpdated,
		Counts: map[string]int{
			"courses":     len(s.snap.Courses),
			"topics":      len(s.snap.Topics),
			"assignments": len(s.snap.Assignments),
			"exams":       len(s.snap.Exams),
			"reviews":     len(s.snap.Reviews),
			"analytics":   len(s.snap.Analytics),
			"events":      len(s.snap.Events),
		},
	}
}

func newID(kind string) string {
	return kind + "_" + uuid.NewString()
}

// Courses

func (s *Store) CheckCourseNameUniqueness(name string, excludedCourses ...study.Course) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[string]struct{}, len(excludedCourses))
	for _, c := range excludedCourses {
		excluded[c.ID] = struct{}{}
	}

	for _, c := range s.snap.Courses {
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		if strings.EqualFold(c.Name, name) {
			return study.ErrNameExists
		}
	}
	return nil
}

func (s *Store) CreateCourse(course study.Course) (study.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course.ID = newID("course")
	s.snap.Courses = append(s.snap.Courses, course)
	s.persist()
	return course, nil
}

func (s *Store) QueryAllCourses() ([]study.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]study.Course, len(s.snap.Courses))
	copy(courses, s.snap.Courses)
	return courses, nil
}

func (s *Store) GetCourseByID(id string) (study.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.snap.Courses {
		if c.ID == id {
			return c, nil
		}
	}
	return study.Course{}, study.ErrNotFound
}

func (s *Store) FilterCourses(filter study.QueryFilter) ([]study.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var courses []study.Course
	for _, c := range s.snap.Courses {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.CourseCode), search) &&
			!strings.Contains(strings.ToLower(c.Professor), search) {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Archived != nil && c.Archived != *filter.Archived {
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (s *Store) UpdateCourse(id string, up study.UpdateCourse, lastUpdated int64) (study.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Courses {
		if s.snap.Courses[i].ID != id {
			continue
		}
		c := &s.snap.Courses[i]
		if up.Name != nil && *up.Name != "" {
			c.Name = *up.Name
		}
		if up.Subtext != nil {
			c.Subtext = *up.Subtext
		}
		if up.Icon != nil {
			c.Icon = *up.Icon
		}
		if up.CardBgColor != nil {
			c.CardBgColor = *up.CardBgColor
		}
		if up.Professor != nil {
			c.Professor = *up.Professor
		}
		if up.Email != nil {
			c.Email = *up.Email
		}
		if up.Website != nil {
			c.Website = *up.Website
		}
		if up.CourseCode != nil {
			c.CourseCode = *up.CourseCode
		}
		if up.Status != nil {
			c.Status = *up.Status
		}
		c.LastUpdated = lastUpdated
		s.persist()
		return *c, nil
	}
	return study.Course{}, study.ErrNotFound
}

func (s *Store) SetCourseArchived(id string, archived bool, at int64) (study.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Courses {
		if s.snap.Courses[i].ID != id {
			continue
		}
		c := &s.snap.Courses[i]
		c.Archived = archived
		if archived {
			c.ArchivedAt = at
		} else {
			c.ArchivedAt = 0
		}
		c.LastUpdated = at
		s.persist()
		return *c, nil
	}
	return study.Course{}, study.ErrNotFound
}

// DeleteCourse removes the course and every child record referencing it.
// The snapshot persists once after all removals, so the cascade is atomic from
// the caller's perspective.
func (s *Store) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.snap.Courses {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return study.ErrNotFound
	}
	s.snap.Courses = append(s.snap.Courses[:idx], s.snap.Courses[idx+1:]...)

	topics := s.snap.Topics[:0]
	for _, t := range s.snap.Topics {
		if t.CourseID != id {
			topics = append(topics, t)
		}
	}
	s.snap.Topics = topics

	assignments := s.snap.Assignments[:0]
	for _, a := range s.snap.Assignments {
		if a.CourseID != id {
			assignments = append(assignments, a)
		}
	}
	s.snap.Assignments = assignments

	exams := s.snap.Exams[:0]
	for _, e := range s.snap.Exams {
		if e.CourseID != id {
			exams = append(exams, e)
		}
	}
	s.snap.Exams = exams

	reviews := s.snap.Reviews[:0]
	for _, r := range s.snap.Reviews {
		if r.CourseID != id {
			reviews = append(reviews, r)
		}
	}
	s.snap.Reviews = reviews

	analytics := s.snap.Analytics[:0]
	for _, a := range s.snap.Analytics {
		if a.CourseID != id {
			analytics = append(analytics, a)
		}
	}
	s.snap.Analytics = analytics

	events := s.snap.Events[:0]
	for _, e := range s.snap.Events {
		if e.CourseID != id {
			events = append(events, e)
		}
	}
	s.snap.Events = events

	s.persist()
	return nil
}

// Topics

func (s *Store) CreateTopic(topic study.Topic) (study.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topic.ID = newID("topic")
	s.snap.Topics = append(s.snap.Topics, topic)
	s.persist()
	return topic, nil
}

func (s *Store) UpdateTopic(id string, up study.UpdateTopic) (study.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Topics {
		if s.snap.Topics[i].ID != id {
			continue
		}
		t := &s.snap.Topics[i]
		if up.Name != nil && *up.Name != "" {
			t.Name = *up.Name
		}
		if up.Date != nil {
			t.Date = *up.Date
		}
		if up.Mastery != nil {
			t.Mastery = *up.Mastery
		}
		if up.Details != nil {
			t.Details = *up.Details
		}
		s.persist()
		return *t, nil
	}
	return study.Topic{}, study.ErrNotFound
}

func (s *Store) DeleteTopic(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.snap.Topics {
		if t.ID == id {
			s.snap.Topics = append(s.snap.Topics[:i], s.snap.Topics[i+1:]...)
			s.persist()
			return nil
		}
	}
	return study.ErrNotFound
}

func (s *Store) TopicsByCourseID(courseID string) ([]study.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var topics []study.Topic
	for _, t := range s.snap.Topics {
		if t.CourseID == courseID {
			topics = append(topics, t)
		}
	}
	return topics, nil
}

// Assignments

func (s *Store) CreateAssignment(a study.Assignment) (study.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = newID("assignment")
	s.snap.Assignments = append(s.snap.Assignments, a)
	s.persist()
	return a, nil
}

func (s *Store) UpdateAssignment(id string, up study.UpdateAssignment) (study.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Assignments {
		if s.snap.Assignments[i].ID != id {
			continue
		}
		a := &s.snap.Assignments[i]
		if up.Name != nil && *up.Name != "" {
			a.Name = *up.Name
		}
		if up.DueDate != nil {
			a.DueDate = *up.DueDate
		}
		if up.Status != nil {
			a.Status = *up.Status
		}
		if up.SubmissionLink != nil {
			a.SubmissionLink = *up.SubmissionLink
		}
		s.persist()
		return *a, nil
	}
	return study.Assignment{}, study.ErrNotFound
}

func (s *Store) DeleteAssignment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.snap.Assignments {
		if a.ID == id {
			s.snap.Assignments = append(s.snap.Assignments[:i], s.snap.Assignments[i+1:]...)
			s.persist()
			return nil
		}
	}
	return study.ErrNotFound
}

func (s *Store) AssignmentsByCourseID(courseID string) ([]study.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var assignments []study.Assignment
	for _, a := range s.snap.Assignments {
		if a.CourseID == courseID {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

// Exams

func (s *Store) CreateExam(exam study.Exam) (study.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exam.ID = newID("exam")
	s.snap.Exams = append(s.snap.Exams, exam)
	s.persist()
	return exam, nil
}

func (s *Store) UpdateExam(id string, up study.UpdateExam) (study.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Exams {
		if s.snap.Exams[i].ID != id {
			continue
		}
		e := &s.snap.Exams[i]
		if up.Name != nil && *up.Name != "" {
			e.Name = *up.Name
		}
		if up.Date != nil {
			e.Date = *up.Date
		}
		if up.Syllabus != nil {
			e.Syllabus = *up.Syllabus
		}
		if up.PrepStatus != nil {
			e.PrepStatus = *up.PrepStatus
		}
		s.persist()
		return *e, nil
	}
	return study.Exam{}, study.ErrNotFound
}

func (s *Store) DeleteExam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.snap.Exams {
		if e.ID == id {
			s.snap.Exams = append(s.snap.Exams[:i], s.snap.Exams[i+1:]...)
			s.persist()
			return nil
		}
	}
	return study.ErrNotFound
}

func (s *Store) ExamsByCourseID(courseID string) ([]study.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exams []study.Exam
	for _, e := range s.snap.Exams {
		if e.CourseID == courseID {
			exams = append(exams, e)
		}
	}
	return exams, nil
}

// Auxiliary child records

func (s *Store) CreateReview(r study.Review) (study.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = newID("review")
	s.snap.Reviews = append(s.snap.Reviews, r)
	s.persist()
	return r, nil
}

func (s *Store) UpdateReview(id string, up study.UpdateReview) (study.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Reviews {
		if s.snap.Reviews[i].ID != id {
			continue
		}
		r := &s.snap.Reviews[i]
		if up.TopicName != nil && *up.TopicName != "" {
			r.TopicName = *up.TopicName
		}
		if up.LastReviewed != nil {
			r.LastReviewed = *up.LastReviewed
		}
		if up.ReviewNotes != nil {
			r.ReviewNotes = *up.ReviewNotes
		}
		s.persist()
		return *r, nil
	}
	return study.Review{}, study.ErrNotFound
}

func (s *Store) ReviewsByCourseID(courseID string) ([]study.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []study.Review
	for _, r := range s.snap.Reviews {
		if r.CourseID == courseID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (s *Store) CreateAnalytics(a study.Analytics) (study.Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = newID("analytics")
	s.snap.Analytics = append(s.snap.Analytics, a)
	s.persist()
	return a, nil
}

func (s *Store) UpdateAnalytics(id string, up study.UpdateAnalytics) (study.Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Analytics {
		if s.snap.Analytics[i].ID != id {
			continue
		}
		a := &s.snap.Analytics[i]
		if up.Subject != nil && *up.Subject != "" {
			a.Subject = *up.Subject
		}
		if up.TopicsMastered != nil {
			a.TopicsMastered = *up.TopicsMastered
		}
		if up.TotalTopics != nil {
			a.TotalTopics = *up.TotalTopics
		}
		if up.Score != nil {
			a.Score = *up.Score
		}
		s.persist()
		return *a, nil
	}
	return study.Analytics{}, study.ErrNotFound
}

func (s *Store) AnalyticsByCourseID(courseID string) ([]study.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var analytics []study.Analytics
	for _, a := range s.snap.Analytics {
		if a.CourseID == courseID {
			analytics = append(analytics, a)
		}
	}
	return analytics, nil
}

func (s *Store) CreateEvent(e study.CourseEvent) (study.CourseEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = newID("event")
	s.snap.Events = append(s.snap.Events, e)
	s.persist()
	return e, nil
}

func (s *Store) UpdateEvent(id string, up study.UpdateCourseEvent) (study.CourseEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Events {
		if s.snap.Events[i].ID != id {
			continue
		}
		e := &s.snap.Events[i]
		if up.Title != nil && *up.Title != "" {
			e.Title = *up.Title
		}
		if up.Date != nil {
			e.Date = *up.Date
		}
		if up.Type != nil {
			e.Type = *up.Type
		}
		if up.Description != nil {
			e.Description = *up.Description
		}
		s.persist()
		return *e, nil
	}
	return study.CourseEvent{}, study.ErrNotFound
}

func (s *Store) EventsByCourseID(courseID string) ([]study.CourseEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []study.CourseEvent
	for _, e := range s.snap.Events {
		if e.CourseID == courseID {
			events = append(events, e)
		}
	}
	return events, nil
}
