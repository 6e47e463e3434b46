package study

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mustyhq/musty/core"
)

// Course statuses
type CourseStatus string

const (
	CourseNotStarted CourseStatus = "Not Started"
	CourseInProgress CourseStatus = "In Progress"
	CourseCompleted  CourseStatus = "Completed"
)

// Topic mastery levels
type Mastery string

const (
	MasteryNotStarted Mastery = "Not Started"
	MasteryLearning   Mastery = "Learning"
	MasteryMastered   Mastery = "Mastered"
)

// Assignment statuses
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "Pending"
	AssignmentCompleted AssignmentStatus = "Completed"
	AssignmentOverdue   AssignmentStatus = "Overdue"
)

// Exam preparation statuses
type PrepStatus string

const (
	PrepNotStarted PrepStatus = "Not Started"
	PrepStudying   PrepStatus = "Studying"
	PrepReady      PrepStatus = "Ready"
)

// Event types
const (
	EventLecture    = "lecture"
	EventAssignment = "assignment"
	EventExam       = "exam"
	EventReview     = "review"
)

// Course is the root aggregate; it owns Topics, Assignments, Exams and the
// auxiliary child records by courseId.
type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Subtext     string       `json:"subtext,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	CardBgColor string       `json:"cardBgColor,omitempty"`
	Professor   string       `json:"professor,omitempty"`
	Email       string       `json:"email,omitempty"`
	Website     string       `json:"website,omitempty"`
	CourseCode  string       `json:"courseCode,omitempty"`
	Status      CourseStatus `json:"status"`
	CreatedAt   int64        `json:"createdAt"`   // epoch-ms, UTC
	LastUpdated int64        `json:"lastUpdated"` // epoch-ms, UTC
	Archived    bool         `json:"archived"`
	ArchivedAt  int64        `json:"archivedAt,omitempty"` // epoch-ms, UTC
}

type Topic struct {
	ID       string  `json:"id"`
	CourseID string  `json:"courseId"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Mastery  Mastery `json:"mastery"`
	Details  string  `json:"details,omitempty"`
}

type Assignment struct {
	ID             string           `json:"id"`
	CourseID       string           `json:"courseId"`
	Name           string           `json:"name"`
	DueDate        string           `json:"dueDate"`
	Status         AssignmentStatus `json:"status"`
	SubmissionLink string           `json:"submissionLink,omitempty"`
}

type Exam struct {
	ID         string     `json:"id"`
	CourseID   string     `json:"courseId"`
	Name       string     `json:"name"`
	Date       string     `json:"date"`
	Syllabus   string     `json:"syllabus,omitempty"`
	PrepStatus PrepStatus `json:"prepStatus"`
}

// Review is an auxiliary child record; rarely populated, reserved for future use.
type Review struct {
	ID           string `json:"id"`
	CourseID     string `json:"courseId"`
	TopicName    string `json:"topicName"`
	LastReviewed string `json:"lastReviewed"`
	ReviewNotes  string `json:"reviewNotes,omitempty"`
}

type Analytics struct {
	ID             string  `json:"id"`
	CourseID       string  `json:"courseId"`
	Subject        string  `json:"subject"`
	TopicsMastered int     `json:"topicsMastered"`
	TotalTopics    int     `json:"totalTopics"`
	Score          float64 `json:"score,omitempty"`
}

type CourseEvent struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string       `json:"name" validate:"required"`
	Subtext     string       `json:"subtext"`
	Icon        string       `json:"icon"`
	CardBgColor string       `json:"cardBgColor"`
	Professor   string       `json:"professor"`
	Email       string       `json:"email" validate:"omitempty,email"`
	Website     string       `json:"website" validate:"omitempty,url"`
	CourseCode  string       `json:"courseCode"`
	Status      CourseStatus `json:"status" validate:"omitempty,coursestatus"`
}

func (nc *NewCourse) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email, true /* lower */)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckNameUniqueness(nc.Name)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. Nil fields are preserved unchanged (shallow merge).
type UpdateCourse struct {
	Name        *string       `json:"name"`
	Subtext     *string       `json:"subtext"`
	Icon        *string       `json:"icon"`
	CardBgColor *string       `json:"cardBgColor"`
	Professor   *string       `json:"professor"`
	Email       *string       `json:"email" validate:"omitempty,email"`
	Website     *string       `json:"website" validate:"omitempty,url"`
	CourseCode  *string       `json:"courseCode"`
	Status      *CourseStatus `json:"status" validate:"omitempty,coursestatus"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate, origCourse Course, svc ServiceInterface) error {
	if uc.Name != nil {
		name := core.CleanString(*uc.Name)
		uc.Name = &name
	}
	if uc.Email != nil {
		email := core.CleanString(*uc.Email, true /* lower */)
		uc.Email = &email
	}

	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.Name != nil && *uc.Name != "" {
		return svc.CheckNameUniqueness(*uc.Name, origCourse)
	}
	return nil
}

type NewTopic struct {
	Name    string  `json:"name" validate:"required"`
	Date    string  `json:"date"`
	Mastery Mastery `json:"mastery" validate:"omitempty,mastery"`
	Details string  `json:"details"`
}

func (nt *NewTopic) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	return validate.Struct(nt)
}

type UpdateTopic struct {
	Name    *string  `json:"name"`
	Date    *string  `json:"date"`
	Mastery *Mastery `json:"mastery" validate:"omitempty,mastery"`
	Details *string  `json:"details"`
}

func (up *UpdateTopic) Validate(validate *validator.Validate) error { return validate.Struct(up) }

type NewAssignment struct {
	Name           string           `json:"name" validate:"required"`
	DueDate        string           `json:"dueDate"`
	Status         AssignmentStatus `json:"status" validate:"omitempty,assignmentstatus"`
	SubmissionLink string           `json:"submissionLink" validate:"omitempty,url"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	return validate.Struct(na)
}

type UpdateAssignment struct {
	Name           *string           `json:"name"`
	DueDate        *string           `json:"dueDate"`
	Status         *AssignmentStatus `json:"status" validate:"omitempty,assignmentstatus"`
	SubmissionLink *string           `json:"submissionLink" validate:"omitempty,url"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	return validate.Struct(ua)
}

type NewExam struct {
	Name       string     `json:"name" validate:"required"`
	Date       string     `json:"date"`
	Syllabus   string     `json:"syllabus"`
	PrepStatus PrepStatus `json:"prepStatus" validate:"omitempty,prepstatus"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	return validate.Struct(ne)
}

type UpdateExam struct {
	Name       *string     `json:"name"`
	Date       *string     `json:"date"`
	Syllabus   *string     `json:"syllabus"`
	PrepStatus *PrepStatus `json:"prepStatus" validate:"omitempty,prepstatus"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error { return validate.Struct(ue) }

type NewReview struct {
	TopicName    string `json:"topicName" validate:"required"`
	LastReviewed string `json:"lastReviewed"`
	ReviewNotes  string `json:"reviewNotes"`
}

func (nr *NewReview) Validate(validate *validator.Validate) error {
	nr.TopicName = core.CleanString(nr.TopicName)
	return validate.Struct(nr)
}

type NewAnalytics struct {
	Subject        string  `json:"subject" validate:"required"`
	TopicsMastered int     `json:"topicsMastered" validate:"min=0"`
	TotalTopics    int     `json:"totalTopics" validate:"min=0"`
	Score          float64 `json:"score" validate:"min=0,max=100"`
}

func (na *NewAnalytics) Validate(validate *validator.Validate) error {
	na.Subject = core.CleanString(na.Subject)
	return validate.Struct(na)
}

type NewCourseEvent struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date"`
	Type        string `json:"type" validate:"omitempty,oneof=lecture assignment exam review"`
	Description string `json:"description"`
}

func (ne *NewCourseEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	return validate.Struct(ne)
}

type UpdateReview struct {
	TopicName    *string `json:"topicName"`
	LastReviewed *string `json:"lastReviewed"`
	ReviewNotes  *string `json:"reviewNotes"`
}

func (ur *UpdateReview) Validate(validate *validator.Validate) error { return validate.Struct(ur) }

type UpdateAnalytics struct {
	Subject        *string  `json:"subject"`
	TopicsMastered *int     `json:"topicsMastered" validate:"omitempty,min=0"`
	TotalTopics    *int     `json:"totalTopics" validate:"omitempty,min=0"`
	Score          *float64 `json:"score" validate:"omitempty,min=0,max=100"`
}

func (ua *UpdateAnalytics) Validate(validate *validator.Validate) error {
	return validate.Struct(ua)
}

type UpdateCourseEvent struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Type        *string `json:"type" validate:"omitempty,oneof=lecture assignment exam review"`
	Description *string `json:"description"`
}

func (ue *UpdateCourseEvent) Validate(validate *validator.Validate) error {
	return validate.Struct(ue)
}

// QueryFilter narrows course listings.
type QueryFilter struct {
	Search   string        `query:"search"`
	Status   *CourseStatus `query:"status"`
	Archived *bool         `query:"archived"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == nil && qf.Archived == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// custom validation tags & texts
var (
	courseStatusTag      = "coursestatus"
	masteryTag           = "mastery"
	assignmentStatusTag  = "assignmentstatus"
	prepStatusTag        = "prepstatus"
	closedEnumText       = "invalid value for this field"
	courseStatusValues   = []CourseStatus{CourseNotStarted, CourseInProgress, CourseCompleted}
	masteryValues        = []Mastery{MasteryNotStarted, MasteryLearning, MasteryMastered}
	assignmentStatValues = []AssignmentStatus{AssignmentPending, AssignmentCompleted, AssignmentOverdue}
	prepStatusValues     = []PrepStatus{PrepNotStarted, PrepStudying, PrepReady}
)

// InitValidators registers the study-specific validators.
// The status enumerations are closed; no other string values are valid.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(courseStatusTag, func(fl validator.FieldLevel) bool {
		return ValidCourseStatus(CourseStatus(fl.Field().String()))
	})
	_ = validate.RegisterValidation(masteryTag, func(fl validator.FieldLevel) bool {
		return ValidMastery(Mastery(fl.Field().String()))
	})
	_ = validate.RegisterValidation(assignmentStatusTag, func(fl validator.FieldLevel) bool {
		return ValidAssignmentStatus(AssignmentStatus(fl.Field().String()))
	})
	_ = validate.RegisterValidation(prepStatusTag, func(fl validator.FieldLevel) bool {
		return ValidPrepStatus(PrepStatus(fl.Field().String()))
	})
	for _, tag := range []string{courseStatusTag, masteryTag, assignmentStatusTag, prepStatusTag} {
		core.RegisterCustomTranslation(validate, translator, tag, closedEnumText)
	}
}

func ValidCourseStatus(s CourseStatus) bool {
	for _, v := range courseStatusValues {
		if s == v {
			return true
		}
	}
	return false
}

func ValidMastery(m Mastery) bool {
	for _, v := range masteryValues {
		if m == v {
			return true
		}
	}
	return false
}

func ValidAssignmentStatus(s AssignmentStatus) bool {
	for _, v := range assignmentStatValues {
		if s == v {
			return true
		}
	}
	return false
}

func ValidPrepStatus(s PrepStatus) bool {
	for _, v := range prepStatusValues {
		if s == v {
			return true
		}
	}
	return false
}
