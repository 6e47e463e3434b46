package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mustyhq/musty/core/study"
)

type studyApi struct {
	deps ServerDeps
}

func registerStudyAPI(g *echo.Group, deps ServerDeps) {
	api := studyApi{deps: deps}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/archive", api.archive)
	dg.POST("/unarchive", api.unarchive)

	dg.GET("/topics", api.queryTopics)
	dg.POST("/topics", api.createTopic)
	dg.GET("/assignments", api.queryAssignments)
	dg.POST("/assignments", api.createAssignment)
	dg.GET("/exams", api.queryExams)
	dg.POST("/exams", api.createExam)
	dg.GET("/reviews", api.queryReviews)
	dg.POST("/reviews", api.createReview)
	dg.GET("/analytics", api.queryAnalytics)
	dg.POST("/analytics", api.createAnalytics)
	dg.GET("/events", api.queryEvents)
	dg.POST("/events", api.createEvent)

	g.PUT("/topics/:id", api.updateTopic)
	g.DELETE("/topics/:id", api.destroyTopic)
	g.PUT("/assignments/:id", api.updateAssignment)
	g.DELETE("/assignments/:id", api.destroyAssignment)
	g.PUT("/exams/:id", api.updateExam)
	g.DELETE("/exams/:id", api.destroyExam)
	g.PUT("/reviews/:id", api.updateReview)
	g.PUT("/analytics/:id", api.updateAnalytics)
	g.PUT("/events/:id", api.updateEvent)
}

// Course handlers

func (api *studyApi) query(ctx echo.Context) error {
	var filter study.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	courses, err := api.deps.StudySvc.FilterCourses(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []study.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *studyApi) create(ctx echo.Context) error {
	var data study.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.deps.Validate, api.deps.StudySvc); err != nil {
		return err
	}

	course, err := api.deps.StudySvc.CreateCourse(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *studyApi) retrieve(ctx echo.Context) error {
	course, err := api.deps.StudySvc.GetCourseByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *studyApi) update(ctx echo.Context) error {
	course, err := api.deps.StudySvc.GetCourseByID(ctx.Param("id"))
	if err != nil {
		return err
	}

	var data study.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.deps.Validate, course, api.deps.StudySvc); err != nil {
		return err
	}

	course, err = api.deps.StudySvc.UpdateCourse(course.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *studyApi) destroy(ctx echo.Context) error {
	if err := api.deps.StudySvc.DeleteCourse(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studyApi) archive(ctx echo.Context) error {
	course, err := api.deps.StudySvc.ArchiveCourse(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *studyApi) unarchive(ctx echo.Context) error {
	course, err := api.deps.StudySvc.UnarchiveCourse(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, course)
}

// Topic handlers

func (api *studyApi) queryTopics(ctx echo.Context) error {
	topics, err := api.deps.StudySvc.TopicsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying topics")
	}
	if topics == nil {
		topics = []study.Topic{}
	}
	return ctx.JSON(http.StatusOK, topics)
}

func (api *studyApi) createTopic(ctx echo.Context) error {
	var data study.NewTopic
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTopic")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	topic, err := api.deps.StudySvc.CreateTopic(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, topic)
}

func (api *studyApi) updateTopic(ctx echo.Context) error {
	var data study.UpdateTopic
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTopic")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	topic, err := api.deps.StudySvc.UpdateTopic(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, topic)
}

func (api *studyApi) destroyTopic(ctx echo.Context) error {
	if err := api.deps.StudySvc.DeleteTopic(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Assignment handlers

func (api *studyApi) queryAssignments(ctx echo.Context) error {
	assignments, err := api.deps.StudySvc.AssignmentsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []study.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

func (api *studyApi) createAssignment(ctx echo.Context) error {
	var data study.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	a, err := api.deps.StudySvc.CreateAssignment(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *studyApi) updateAssignment(ctx echo.Context) error {
	var data study.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	a, err := api.deps.StudySvc.UpdateAssignment(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *studyApi) destroyAssignment(ctx echo.Context) error {
	if err := api.deps.StudySvc.DeleteAssignment(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Exam handlers

func (api *studyApi) queryExams(ctx echo.Context) error {
	exams, err := api.deps.StudySvc.ExamsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []study.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *studyApi) createExam(ctx echo.Context) error {
	var data study.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	exam, err := api.deps.StudySvc.CreateExam(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, exam)
}

func (api *studyApi) updateExam(ctx echo.Context) error {
	var data study.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	exam, err := api.deps.StudySvc.UpdateExam(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exam)
}

func (api *studyApi) destroyExam(ctx echo.Context) error {
	if err := api.deps.StudySvc.DeleteExam(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Auxiliary child queries

func (api *studyApi) queryReviews(ctx echo.Context) error {
	reviews, err := api.deps.StudySvc.ReviewsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying reviews")
	}
	if reviews == nil {
		reviews = []study.Review{}
	}
	return ctx.JSON(http.StatusOK, reviews)
}

func (api *studyApi) createReview(ctx echo.Context) error {
	var data study.NewReview
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReview")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	review, err := api.deps.StudySvc.CreateReview(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, review)
}

func (api *studyApi) updateReview(ctx echo.Context) error {
	var data study.UpdateReview
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateReview")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	review, err := api.deps.StudySvc.UpdateReview(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, review)
}

func (api *studyApi) queryAnalytics(ctx echo.Context) error {
	analytics, err := api.deps.StudySvc.AnalyticsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying analytics")
	}
	if analytics == nil {
		analytics = []study.Analytics{}
	}
	return ctx.JSON(http.StatusOK, analytics)
}

func (api *studyApi) createAnalytics(ctx echo.Context) error {
	var data study.NewAnalytics
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnalytics")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	analytics, err := api.deps.StudySvc.CreateAnalytics(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, analytics)
}

func (api *studyApi) updateAnalytics(ctx echo.Context) error {
	var data study.UpdateAnalytics
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAnalytics")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	analytics, err := api.deps.StudySvc.UpdateAnalytics(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, analytics)
}

func (api *studyApi) queryEvents(ctx echo.Context) error {
	events, err := api.deps.StudySvc.EventsByCourseID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []study.CourseEvent{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *studyApi) createEvent(ctx echo.Context) error {
	var data study.NewCourseEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourseEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	event, err := api.deps.StudySvc.CreateEvent(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, event)
}

func (api *studyApi) updateEvent(ctx echo.Context) error {
	var data study.UpdateCourseEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourseEvent")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	event, err := api.deps.StudySvc.UpdateEvent(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, event)
}
