package snapshotdb

import (
	"encoding/json"
	"time"

	"github.com/mustyhq/musty/core/study"
)

// Schema history:
//
//	1.x — courses carried their topics/assignments/exams nested inside each
//	      course record; no archival metadata, no creation timestamps.
//	2.0 — children normalized into top-level collections keyed by courseId;
//	      courses gained createdAt/lastUpdated/archived/archivedAt.
//
// Each upgrade step is pure and total: missing fields get their documented
// defaults, extra fields are tolerated, and nothing panics. Loading corrupt or
// absent data yields the default empty snapshot (fails closed to "no data").

// snapshotV1 is the legacy persisted shape.
type snapshotV1 struct {
	Version     string     `json:"version"`
	LastUpdated int64      `json:"lastUpdated"`
	Courses     []courseV1 `json:"courses"`
}

type courseV1 struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Subtext     string             `json:"subtext"`
	Icon        string             `json:"icon"`
	CardBgColor string             `json:"cardBgColor"`
	Professor   string             `json:"professor"`
	Email       string             `json:"email"`
	Website     string             `json:"website"`
	CourseCode  string             `json:"courseCode"`
	Status      string             `json:"status"`
	Topics      []study.Topic      `json:"topics"`
	Assignments []study.Assignment `json:"assignments"`
	Exams       []study.Exam       `json:"exams"`
	CreatedAt   int64              `json:"createdAt"`
	LastUpdated int64              `json:"lastUpdated"`
	Archived    *bool              `json:"archived"`
	ArchivedAt  int64              `json:"archivedAt"`
}

// Load produces a current-shape snapshot from whatever `raw` holds.
// It never returns an error to its caller: malformed input yields the default
// empty snapshot.
func Load(raw []byte) Snapshot {
	if len(raw) == 0 {
		return defaultSnapshot()
	}

	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return defaultSnapshot()
	}

	switch probe.Version {
	case CurrentVersion:
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return defaultSnapshot()
		}
		snap.normalize()
		return snap
	default:
		// every pre-2.0 shape decodes as v1
		var legacy snapshotV1
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return defaultSnapshot()
		}
		return migrateV1toV2(legacy)
	}
}

// migrateV1toV2 flattens nested course children into top-level collections and
// backfills the v2 metadata fields with their documented defaults.
func migrateV1toV2(legacy snapshotV1) Snapshot {
	now := time.Now().UTC().UnixMilli()
	snap := defaultSnapshot()
	if legacy.LastUpdated != 0 {
		snap.LastUpdated = legacy.LastUpdated
	}

	for _, c := range legacy.Courses {
		course := study.Course{
			ID:          c.ID,
			Name:        c.Name,
			Subtext:     c.Subtext,
			Icon:        c.Icon,
			CardBgColor: c.CardBgColor,
			Professor:   c.Professor,
			Email:       c.Email,
			Website:     c.Website,
			CourseCode:  c.CourseCode,
			Status:      study.CourseStatus(c.Status),
			CreatedAt:   c.CreatedAt,
			LastUpdated: c.LastUpdated,
			ArchivedAt:  c.ArchivedAt,
		}
		if !study.ValidCourseStatus(course.Status) {
			course.Status = study.CourseNotStarted
		}
		if course.CreatedAt == 0 {
			course.CreatedAt = now
		}
		if course.LastUpdated == 0 {
			course.LastUpdated = now
		}
		if c.Archived != nil {
			course.Archived = *c.Archived
		}
		snap.Courses = append(snap.Courses, course)

		for _, t := range c.Topics {
			if t.CourseID == "" {
				t.CourseID = c.ID
			}
			if !study.ValidMastery(t.Mastery) {
				t.Mastery = study.MasteryNotStarted
			}
			snap.Topics = append(snap.Topics, t)
		}
		for _, a := range c.Assignments {
			if a.CourseID == "" {
				a.CourseID = c.ID
			}
			if !study.ValidAssignmentStatus(a.Status) {
				a.Status = study.AssignmentPending
			}
			snap.Assignments = append(snap.Assignments, a)
		}
		for _, e := range c.Exams {
			if e.CourseID == "" {
				e.CourseID = c.ID
			}
			if !study.ValidPrepStatus(e.PrepStatus) {
				e.PrepStatus = study.PrepNotStarted
			}
			snap.Exams = append(snap.Exams, e)
		}
	}
	return snap
}
