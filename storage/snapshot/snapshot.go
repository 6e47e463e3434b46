package snapshotdb

import (
	"time"

	"github.com/mustyhq/musty/core/study"
)

const (
	// SnapshotKey is the single durable key holding the whole snapshot.
	SnapshotKey = "musty_courses_v2"

	CurrentVersion = "2.0.0"
)

// Snapshot is the single serialized object representing all locally-persisted
// entities and their schema version.
type Snapshot struct {
	Version     string              `json:"version"`
	LastUpdated int64               `json:"lastUpdated"` // epoch-ms, UTC
	Courses     []study.Course      `json:"courses"`
	Topics      []study.Topic       `json:"topics"`
	Assignments []study.Assignment  `json:"assignments"`
	Exams       []study.Exam        `json:"exams"`
	Reviews     []study.Review      `json:"reviews"`
	Analytics   []study.Analytics   `json:"analytics"`
	Events      []study.CourseEvent `json:"events"`
}

func defaultSnapshot() Snapshot {
	return Snapshot{
		Version:     CurrentVersion,
		LastUpdated: time.Now().UTC().UnixMilli(),
		Courses:     []study.Course{},
		Topics:      []study.Topic{},
		Assignments: []study.Assignment{},
		Exams:       []study.Exam{},
		Reviews:     []study.Review{},
		Analytics:   []study.Analytics{},
		Events:      []study.CourseEvent{},
	}
}

// normalize backfills nil collections so the persisted snapshot always has the
// fixed top-level shape.
func (s *Snapshot) normalize() {
	if s.Version == "" {
		s.Version = CurrentVersion
	}
	if s.LastUpdated == 0 {
		s.LastUpdated = time.Now().UTC().UnixMilli()
	}
	if s.Courses == nil {
		s.Courses = []study.Course{}
	}
	if s.Topics == nil {
		s.Topics = []study.Topic{}
	}
	if s.Assignments == nil {
		s.Assignments = []study.Assignment{}
	}
	if s.Exams == nil {
		s.Exams = []study.Exam{}
	}
	if s.Reviews == nil {
		s.Reviews = []study.Review{}
	}
	if s.Analytics == nil {
		s.Analytics = []study.Analytics{}
	}
	if s.Events == nil {
		s.Events = []study.CourseEvent{}
	}
}
