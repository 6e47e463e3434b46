package study

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core"
)

var (
	// errors
	ErrNotFound   = errors.New("record not found")
	ErrNameExists = errors.New("a course with this name already exists")
)

type (
	// Repository is the persistence contract for locally-authored study data.
	// Implementations must never mutate records they did not match; an update
	// or delete referencing a nonexistent id returns ErrNotFound and leaves
	// every collection untouched.
	Repository interface {
		CheckCourseNameUniqueness(name string, excludedCourses ...Course) error
		CreateCourse(course Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		// FilterCourses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// Course.Name, Course.CourseCode or Course.Professor.
		FilterCourses(filter QueryFilter) ([]Course, error)
		// UpdateCourse merges the set fields of `up` into the matching course
		// (shallow merge) and stamps lastUpdated.
		UpdateCourse(id string, up UpdateCourse, lastUpdated int64) (Course, error)
		SetCourseArchived(id string, archived bool, at int64) (Course, error)
		// DeleteCourse removes the course and cascades to every child record
		// whose courseId matches; the snapshot persists once afterwards.
		DeleteCourse(id string) error

		CreateTopic(topic Topic) (Topic, error)
		UpdateTopic(id string, up UpdateTopic) (Topic, error)
		DeleteTopic(id string) error
		TopicsByCourseID(courseID string) ([]Topic, error)

		CreateAssignment(a Assignment) (Assignment, error)
		UpdateAssignment(id string, up UpdateAssignment) (Assignment, error)
		DeleteAssignment(id string) error
		AssignmentsByCourseID(courseID string) ([]Assignment, error)

		CreateExam(exam Exam) (Exam, error)
		UpdateExam(id string, up UpdateExam) (Exam, error)
		DeleteExam(id string) error
		ExamsByCourseID(courseID string) ([]Exam, error)

		CreateReview(r Review) (Review, error)
		UpdateReview(id string, up UpdateReview) (Review, error)
		ReviewsByCourseID(courseID string) ([]Review, error)
		CreateAnalytics(a Analytics) (Analytics, error)
		UpdateAnalytics(id string, up UpdateAnalytics) (Analytics, error)
		AnalyticsByCourseID(courseID string) ([]Analytics, error)
		CreateEvent(e CourseEvent) (CourseEvent, error)
		UpdateEvent(id string, up UpdateCourseEvent) (CourseEvent, error)
		EventsByCourseID(courseID string) ([]CourseEvent, error)
	}

	ServiceInterface interface {
		CheckNameUniqueness(name string, excludedCourses ...Course) error
		CreateCourse(nc NewCourse) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		FilterCourses(filter QueryFilter) ([]Course, error)
		UpdateCourse(id string, uc UpdateCourse) (Course, error)
		ArchiveCourse(id string) (Course, error)
		UnarchiveCourse(id string) (Course, error)
		DeleteCourse(id string) error

		CreateTopic(courseID string, nt NewTopic) (Topic, error)
		UpdateTopic(id string, up UpdateTopic) (Topic, error)
		DeleteTopic(id string) error
		TopicsByCourseID(courseID string) ([]Topic, error)

		CreateAssignment(courseID string, na NewAssignment) (Assignment, error)
		UpdateAssignment(id string, ua UpdateAssignment) (Assignment, error)
		DeleteAssignment(id string) error
		AssignmentsByCourseID(courseID string) ([]Assignment, error)

		CreateExam(courseID string, ne NewExam) (Exam, error)
		UpdateExam(id string, ue UpdateExam) (Exam, error)
		DeleteExam(id string) error
		ExamsByCourseID(courseID string) ([]Exam, error)

		CreateReview(courseID string, nr NewReview) (Review, error)
		UpdateReview(id string, ur UpdateReview) (Review, error)
		ReviewsByCourseID(courseID string) ([]Review, error)
		CreateAnalytics(courseID string, na NewAnalytics) (Analytics, error)
		UpdateAnalytics(id string, ua UpdateAnalytics) (Analytics, error)
		AnalyticsByCourseID(courseID string) ([]Analytics, error)
		CreateEvent(courseID string, ne NewCourseEvent) (CourseEvent, error)
		UpdateEvent(id string, ue UpdateCourseEvent) (CourseEvent, error)
		EventsByCourseID(courseID string) ([]CourseEvent, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func (svc *service) CheckNameUniqueness(name string, excludedCourses ...Course) error {
	if err := svc.repo.CheckCourseNameUniqueness(name, excludedCourses...); err != nil {
		if errors.Cause(err) == ErrNameExists {
			return core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) CreateCourse(nc NewCourse) (Course, error) {
	now := nowMillis()
	status := nc.Status
	if status == "" {
		status = CourseNotStarted
	}
	course := Course{
		Name:        nc.Name,
		Subtext:     nc.Subtext,
		Icon:        nc.Icon,
		CardBgColor: nc.CardBgColor,
		Professor:   nc.Professor,
		Email:       nc.Email,
		Website:     nc.Website,
		CourseCode:  nc.CourseCode,
		Status:      status,
		CreatedAt:   now,
		LastUpdated: now,
		Archived:    false,
	}
	return svc.repo.CreateCourse(course)
}

func (svc *service) QueryAllCourses() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *service) GetCourseByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) FilterCourses(filter QueryFilter) ([]Course, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllCourses()
	}
	return svc.repo.FilterCourses(filter)
}

func (svc *service) UpdateCourse(id string, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(id, uc, nowMillis())
}

func (svc *service) ArchiveCourse(id string) (Course, error) {
	return svc.repo.SetCourseArchived(id, true, nowMillis())
}

func (svc *service) UnarchiveCourse(id string) (Course, error) {
	return svc.repo.SetCourseArchived(id, false, nowMillis())
}

func (svc *service) DeleteCourse(id string) error {
	return svc.repo.DeleteCourse(id)
}

func (svc *service) CreateTopic(courseID string, nt NewTopic) (Topic, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Topic{}, errors.Wrap(err, "resolving parent course")
	}
	mastery := nt.Mastery
	if mastery == "" {
		mastery = MasteryNotStarted
	}
	topic := Topic{
		CourseID: courseID,
		Name:     nt.Name,
		Date:     nt.Date,
		Mastery:  mastery,
		Details:  nt.Details,
	}
	return svc.repo.CreateTopic(topic)
}

func (svc *service) UpdateTopic(id string, up UpdateTopic) (Topic, error) {
	return svc.repo.UpdateTopic(id, up)
}

func (svc *service) DeleteTopic(id string) error {
	return svc.repo.DeleteTopic(id)
}

func (svc *service) TopicsByCourseID(courseID string) ([]Topic, error) {
	return svc.repo.TopicsByCourseID(courseID)
}

func (svc *service) CreateAssignment(courseID string, na NewAssignment) (Assignment, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Assignment{}, errors.Wrap(err, "resolving parent course")
	}
	status := na.Status
	if status == "" {
		status = AssignmentPending
	}
	a := Assignment{
		CourseID:       courseID,
		Name:           na.Name,
		DueDate:        na.DueDate,
		Status:         status,
		SubmissionLink: na.SubmissionLink,
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *service) UpdateAssignment(id string, ua UpdateAssignment) (Assignment, error) {
	return svc.repo.UpdateAssignment(id, ua)
}

func (svc *service) DeleteAssignment(id string) error {
	return svc.repo.DeleteAssignment(id)
}

func (svc *service) AssignmentsByCourseID(courseID string) ([]Assignment, error) {
	return svc.repo.AssignmentsByCourseID(courseID)
}

func (svc *service) CreateExam(courseID string, ne NewExam) (Exam, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Exam{}, errors.Wrap(err, "resolving parent course")
	}
	prep := ne.PrepStatus
	if prep == "" {
		prep = PrepNotStarted
	}
	exam := Exam{
		CourseID:   courseID,
		Name:       ne.Name,
		Date:       ne.Date,
		Syllabus:   ne.Syllabus,
		PrepStatus: prep,
	}
	return svc.repo.CreateExam(exam)
}

func (svc *service) UpdateExam(id string, ue UpdateExam) (Exam, error) {
	return svc.repo.UpdateExam(id, ue)
}

func (svc *service) DeleteExam(id string) error {
	return svc.repo.DeleteExam(id)
}

func (svc *service) ExamsByCourseID(courseID string) ([]Exam, error) {
	return svc.repo.ExamsByCourseID(courseID)
}

func (svc *service) CreateReview(courseID string, nr NewReview) (Review, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Review{}, errors.Wrap(err, "resolving parent course")
	}
	return svc.repo.CreateReview(Review{
		CourseID:     courseID,
		TopicName:    nr.TopicName,
		LastReviewed: nr.LastReviewed,
		ReviewNotes:  nr.ReviewNotes,
	})
}

func (svc *service) UpdateReview(id string, ur UpdateReview) (Review, error) {
	return svc.repo.UpdateReview(id, ur)
}

func (svc *service) ReviewsByCourseID(courseID string) ([]Review, error) {
	return svc.repo.ReviewsByCourseID(courseID)
}

func (svc *service) CreateAnalytics(courseID string, na NewAnalytics) (Analytics, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return Analytics{}, errors.Wrap(err, "resolving parent course")
	}
	return svc.repo.CreateAnalytics(Analytics{
		CourseID:       courseID,
		Subject:        na.Subject,
		TopicsMastered: na.TopicsMastered,
		TotalTopics:    na.TotalTopics,
		Score:          na.Score,
	})
}

func (svc *service) UpdateAnalytics(id string, ua UpdateAnalytics) (Analytics, error) {
	return svc.repo.UpdateAnalytics(id, ua)
}

func (svc *service) AnalyticsByCourseID(courseID string) ([]Analytics, error) {
	return svc.repo.AnalyticsByCourseID(courseID)
}

func (svc *service) CreateEvent(courseID string, ne NewCourseEvent) (CourseEvent, error) {
	if _, err := svc.repo.GetCourseByID(courseID); err != nil {
		return CourseEvent{}, errors.Wrap(err, "resolving parent course")
	}
	return svc.repo.CreateEvent(CourseEvent{
		CourseID:    courseID,
		Title:       ne.Title,
		Date:        ne.Date,
		Type:        ne.Type,
		Description: ne.Description,
	})
}

func (svc *service) UpdateEvent(id string, ue UpdateCourseEvent) (CourseEvent, error) {
	return svc.repo.UpdateEvent(id, ue)
}

func (svc *service) EventsByCourseID(courseID string) ([]CourseEvent, error) {
	return svc.repo.EventsByCourseID(courseID)
}
