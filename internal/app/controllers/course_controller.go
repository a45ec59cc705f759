package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
)

const coursesPath = "/Courses"

// CourseController handles course pages
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new course controller
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// Index handles GET /Courses
func (cc *CourseController) Index(c *gin.Context) {
	courses, err := cc.courseService.List(c.Request.Context())
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "courses/index", courses)
}

// Details handles GET /Courses/Details/:id
func (cc *CourseController) Details(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	course, err := cc.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "courses/details", dto.DetailsPage{Item: course})
}

// CreateForm handles GET /Courses/Create
func (cc *CourseController) CreateForm(c *gin.Context) {
	page, err := cc.formPage(c, "Create", coursesPath+"/Create", dto.CourseCreateForm{}, "")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "courses/form", page)
}

// Create handles POST /Courses/Create
func (cc *CourseController) Create(c *gin.Context) {
	var form dto.CourseCreateForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	course, err := cc.courseService.Create(c.Request.Context(), form)
	if err != nil {
		page, optErr := cc.formPage(c, "Create", coursesPath+"/Create", form, form.DepartmentID)
		if optErr != nil {
			middleware.HandlePageError(c, optErr)
			return
		}
		fail(c, "courses/form", page, err)
		return
	}
	redirect(c, coursesPath, "Course "+course.Title+" was created.")
}

// EditForm handles GET /Courses/Edit/:id
func (cc *CourseController) EditForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	course, err := cc.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	form := dto.NewCourseForm(*course)
	page, err := cc.formPage(c, "Edit", editPath(coursesPath, id), form, form.DepartmentID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "courses/form", page)
}

// Edit handles POST /Courses/Edit/:id. The course number is not editable.
func (cc *CourseController) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	var form dto.CourseForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := cc.courseService.Update(c.Request.Context(), id, form); err != nil {
		page, optErr := cc.formPage(c, "Edit", editPath(coursesPath, id), form, form.DepartmentID)
		if optErr != nil {
			middleware.HandlePageError(c, optErr)
			return
		}
		fail(c, "courses/form", page, err)
		return
	}
	redirect(c, coursesPath, "Changes saved.")
}

// DeleteForm handles GET /Courses/Delete/:id
func (cc *CourseController) DeleteForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	course, err := cc.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "courses/details", deletePage(c, course, coursesPath, id))
}

// Delete handles POST /Courses/Delete/:id
func (cc *CourseController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if err := cc.courseService.Delete(c.Request.Context(), id); err != nil {
		handleDeleteError(c, coursesPath, id, err)
		return
	}
	redirect(c, coursesPath, "Course deleted.")
}

// formPage builds the course form with its department dropdown. The number
// field is only rendered when form is a CourseCreateForm.
func (cc *CourseController) formPage(c *gin.Context, title, action string, form any, departmentID string) (dto.FormPage, error) {
	departments, err := cc.courseService.DepartmentOptions(c.Request.Context(), departmentID)
	if err != nil {
		return dto.FormPage{}, err
	}
	return dto.FormPage{
		Title:   title,
		Action:  action,
		Form:    form,
		Options: map[string][]dto.SelectOption{"DepartmentID": departments},
	}, nil
}
