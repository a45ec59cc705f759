package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
)

const instructorsPath = "/Instructors"

// InstructorController handles instructor pages
type InstructorController struct {
	instructorService services.InstructorService
}

// NewInstructorController creates a new instructor controller
func NewInstructorController(instructorService services.InstructorService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
	}
}

// Index handles GET /Instructors and GET /Instructors/Index/:id?courseID=
// An unknown instructor or course renders the 404 page.
func (ic *InstructorController) Index(c *gin.Context) {
	var id *int64
	if c.Param("id") != "" {
		parsed, err := parseID(c, "id")
		if err != nil {
			middleware.HandlePageError(c, err)
			return
		}
		id = &parsed
	}
	courseID, err := parseOptionalQueryID(c, "courseID")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	data, err := ic.instructorService.Index(c.Request.Context(), id, courseID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "instructors/index", data)
}

// Details handles GET /Instructors/Details/:id
func (ic *InstructorController) Details(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	instructor, err := ic.instructorService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "instructors/details", dto.DetailsPage{Item: instructor})
}

// CreateForm handles GET /Instructors/Create with every course unassigned
func (ic *InstructorController) CreateForm(c *gin.Context) {
	page, err := ic.formPage(c, "Create", instructorsPath+"/Create", dto.InstructorForm{})
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "instructors/form", page)
}

// Create handles POST /Instructors/Create
func (ic *InstructorController) Create(c *gin.Context) {
	var form dto.InstructorForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	instructor, err := ic.instructorService.Create(c.Request.Context(), form)
	if err != nil {
		ic.fail(c, "Create", instructorsPath+"/Create", form, err)
		return
	}
	redirect(c, instructorsPath, "Instructor "+instructor.FullName()+" was created.")
}

// EditForm handles GET /Instructors/Edit/:id
func (ic *InstructorController) EditForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	instructor, err := ic.instructorService.GetWithAssignments(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	page, err := ic.formPage(c, "Edit", editPath(instructorsPath, id), dto.NewInstructorForm(*instructor))
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "instructors/form", page)
}

// Edit handles POST /Instructors/Edit/:id. Only the form's fields are
// applied; course assignments are reconciled against selectedCourses.
func (ic *InstructorController) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	var form dto.InstructorForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := ic.instructorService.Update(c.Request.Context(), id, form); err != nil {
		ic.fail(c, "Edit", editPath(instructorsPath, id), form, err)
		return
	}
	redirect(c, instructorsPath, "Changes saved.")
}

// DeleteForm handles GET /Instructors/Delete/:id
func (ic *InstructorController) DeleteForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	instructor, err := ic.instructorService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "instructors/details", deletePage(c, instructor, instructorsPath, id))
}

// Delete handles POST /Instructors/Delete/:id
func (ic *InstructorController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if err := ic.instructorService.Delete(c.Request.Context(), id); err != nil {
		handleDeleteError(c, instructorsPath, id, err)
		return
	}
	redirect(c, instructorsPath, "Instructor deleted.")
}

// formPage builds the instructor form with the course checklist marking the form's selection
func (ic *InstructorController) formPage(c *gin.Context, title, action string, form dto.InstructorForm) (dto.FormPage, error) {
	checklist, err := ic.instructorService.CourseChecklist(c.Request.Context(), form.SelectedCourses)
	if err != nil {
		return dto.FormPage{}, err
	}
	return dto.FormPage{Title: title, Action: action, Form: form, Courses: checklist}, nil
}

func (ic *InstructorController) fail(c *gin.Context, title, action string, form dto.InstructorForm, err error) {
	page, listErr := ic.formPage(c, title, action, form)
	if listErr != nil {
		middleware.HandlePageError(c, listErr)
		return
	}
	fail(c, "instructors/form", page, err)
}
