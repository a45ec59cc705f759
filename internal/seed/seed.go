package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/uniadmin/internal/app/models"
	appRepos "github.com/yigit/uniadmin/internal/app/repositories"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateDefaultData fills an empty store with the sample university.
// It does nothing when students already exist. Failures are collected and
// returned together; callers log them and keep starting.
func CreateDefaultData(ctx context.Context, store appRepos.Store, lgr zerolog.Logger) error {
	count, err := store.Students().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("students", count).Msg("Store already seeded, skipping default data")
		return nil
	}

	lgr.Info().Msg("Creating default data...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Students --- //
	students := []*appModels.Student{
		{FirstMidName: "Carson", LastName: "Alexander", EnrollmentDate: date(2010, time.September, 1)},
		{FirstMidName: "Meredith", LastName: "Alonso", EnrollmentDate: date(2012, time.September, 1)},
		{FirstMidName: "Arturo", LastName: "Anand", EnrollmentDate: date(2013, time.September, 1)},
		{FirstMidName: "Gytis", LastName: "Barzdukas", EnrollmentDate: date(2012, time.September, 1)},
		{FirstMidName: "Yan", LastName: "Li", EnrollmentDate: date(2012, time.September, 1)},
		{FirstMidName: "Peggy", LastName: "Justice", EnrollmentDate: date(2011, time.September, 1)},
		{FirstMidName: "Laura", LastName: "Norman", EnrollmentDate: date(2013, time.September, 1)},
		{FirstMidName: "Nino", LastName: "Olivetto", EnrollmentDate: date(2005, time.September, 1)},
	}
	studentIDs := make(map[string]int64, len(students))
	for _, s := range students {
		if err := store.Students().Create(ctx, s); err != nil {
			lgr.Error().Err(err).Str("lastName", s.LastName).Msg("Error creating student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		studentIDs[s.LastName] = s.ID
	}

	// --- Instructors and offices --- //
	instructors := []*appModels.Instructor{
		{FirstMidName: "Kim", LastName: "Abercrombie", HireDate: date(1995, time.March, 11)},
		{FirstMidName: "Fadi", LastName: "Fakhouri", HireDate: date(2002, time.July, 6)},
		{FirstMidName: "Roger", LastName: "Harui", HireDate: date(1998, time.July, 1)},
		{FirstMidName: "Candace", LastName: "Kapoor", HireDate: date(2001, time.January, 15)},
		{FirstMidName: "Roger", LastName: "Zheng", HireDate: date(2004, time.February, 12)},
	}
	instructorIDs := make(map[string]int64, len(instructors))
	for _, inst := range instructors {
		if err := store.Instructors().Create(ctx, inst); err != nil {
			lgr.Error().Err(err).Str("lastName", inst.LastName).Msg("Error creating instructor")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		instructorIDs[inst.LastName] = inst.ID
	}

	offices := map[string]string{
		"Fakhouri": "Smith 17",
		"Harui":    "Gowan 27",
		"Kapoor":   "Thompson 304",
	}
	for lastName, location := range offices {
		id, ok := instructorIDs[lastName]
		if !ok {
			continue
		}
		if err := store.OfficeAssignments().Upsert(ctx, appModels.OfficeAssignment{InstructorID: id, Location: location}); err != nil {
			lgr.Error().Err(err).Str("location", location).Msg("Error creating office assignment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Departments --- //
	departments := []struct {
		model *appModels.Department
		admin string
	}{
		{&appModels.Department{Name: "English", Budget: appModels.NewAmount(350000), StartDate: date(2007, time.September, 1)}, "Abercrombie"},
		{&appModels.Department{Name: "Mathematics", Budget: appModels.NewAmount(100000), StartDate: date(2007, time.September, 1)}, "Fakhouri"},
		{&appModels.Department{Name: "Engineering", Budget: appModels.NewAmount(350000), StartDate: date(2007, time.September, 1)}, "Harui"},
		{&appModels.Department{Name: "Economics", Budget: appModels.NewAmount(100000), StartDate: date(2007, time.September, 1)}, "Kapoor"},
	}
	departmentIDs := make(map[string]int64, len(departments))
	for _, d := range departments {
		if id, ok := instructorIDs[d.admin]; ok {
			d.model.InstructorID = &id
		}
		if err := store.Departments().Create(ctx, d.model); err != nil {
			lgr.Error().Err(err).Str("name", d.model.Name).Msg("Error creating department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		departmentIDs[d.model.Name] = d.model.DepartmentID
	}

	// --- Courses --- //
	courses := []struct {
		model      appModels.Course
		department string
	}{
		{appModels.Course{CourseID: 1050, Title: "Chemistry", Credits: 3}, "Engineering"},
		{appModels.Course{CourseID: 4022, Title: "Microeconomics", Credits: 3}, "Economics"},
		{appModels.Course{CourseID: 4041, Title: "Macroeconomics", Credits: 3}, "Economics"},
		{appModels.Course{CourseID: 1045, Title: "Calculus", Credits: 4}, "Mathematics"},
		{appModels.Course{CourseID: 3141, Title: "Trigonometry", Credits: 4}, "Mathematics"},
		{appModels.Course{CourseID: 2021, Title: "Composition", Credits: 3}, "English"},
		{appModels.Course{CourseID: 2042, Title: "Literature", Credits: 4}, "English"},
	}
	created := make(map[int64]bool, len(courses))
	for _, c := range courses {
		departmentID, ok := departmentIDs[c.department]
		if !ok {
			continue
		}
		course := c.model
		course.DepartmentID = departmentID
		if err := store.Courses().Create(ctx, &course); err != nil {
			lgr.Error().Err(err).Int64("courseID", course.CourseID).Msg("Error creating course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created[course.CourseID] = true
	}

	// --- Course assignments --- //
	assignments := []struct {
		courseID   int64
		instructor string
	}{
		{1050, "Kapoor"},
		{1050, "Harui"},
		{4022, "Zheng"},
		{4041, "Zheng"},
		{1045, "Fakhouri"},
		{3141, "Harui"},
		{2021, "Abercrombie"},
		{2042, "Abercrombie"},
	}
	for _, a := range assignments {
		instructorID, ok := instructorIDs[a.instructor]
		if !ok || !created[a.courseID] {
			continue
		}
		if err := store.CourseAssignments().Add(ctx, a.courseID, instructorID); err != nil {
			lgr.Error().Err(err).Int64("courseID", a.courseID).Msg("Error creating course assignment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Enrollments --- //
	enrollments := []struct {
		student  string
		courseID int64
		grade    string
	}{
		{"Alexander", 1050, "A"},
		{"Alexander", 4022, "C"},
		{"Alexander", 4041, "B"},
		{"Alonso", 1045, "B"},
		{"Alonso", 3141, "F"},
		{"Alonso", 2021, "F"},
		{"Anand", 1050, ""},
		{"Anand", 4022, "B"},
		{"Barzdukas", 1050, "B"},
		{"Li", 2021, "B"},
		{"Justice", 2042, "B"},
	}
	for _, e := range enrollments {
		studentID, ok := studentIDs[e.student]
		if !ok || !created[e.courseID] {
			continue
		}
		enrollment := &appModels.Enrollment{StudentID: studentID, CourseID: e.courseID, Grade: appModels.GradePtr(e.grade)}
		if err := store.Enrollments().Create(ctx, enrollment); err != nil {
			lgr.Error().Err(err).Str("student", e.student).Int64("courseID", e.courseID).Msg("Error creating enrollment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().
		Int("students", len(studentIDs)).
		Int("instructors", len(instructorIDs)).
		Int("departments", len(departmentIDs)).
		Int("courses", len(created)).
		Msg("Default data creation finished.")
	return finalErr // Return collected errors, if any
}
