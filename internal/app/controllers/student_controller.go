package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

const (
	studentsPath     = "/Students"
	deleteFailedText = "Delete failed. Try again, and if the problem persists, see your system administrator."
)

// StudentController handles student pages
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new student controller
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// Index handles GET /Students with search, sorting and paging
func (sc *StudentController) Index(c *gin.Context) {
	var q dto.StudentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.HandlePageError(c, apperrors.NewBadRequestError("invalid student list query"))
		return
	}

	data, err := sc.studentService.List(c.Request.Context(), q)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "students/index", data)
}

// Details handles GET /Students/Details/:id
func (sc *StudentController) Details(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	student, err := sc.studentService.GetWithEnrollments(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "students/details", dto.DetailsPage{Item: student})
}

// CreateForm handles GET /Students/Create
func (sc *StudentController) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "students/form", sc.formPage("Create", studentsPath+"/Create", dto.StudentForm{}))
}

// Create handles POST /Students/Create
func (sc *StudentController) Create(c *gin.Context) {
	var form dto.StudentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	student, err := sc.studentService.Create(c.Request.Context(), form)
	if err != nil {
		fail(c, "students/form", sc.formPage("Create", studentsPath+"/Create", form), err)
		return
	}
	redirect(c, studentsPath, "Student "+student.FullName()+" was created.")
}

// EditForm handles GET /Students/Edit/:id
func (sc *StudentController) EditForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	student, err := sc.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "students/form", sc.formPage("Edit", editPath(studentsPath, id), dto.NewStudentForm(*student)))
}

// Edit handles POST /Students/Edit/:id
func (sc *StudentController) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	var form dto.StudentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := sc.studentService.Update(c.Request.Context(), id, form); err != nil {
		fail(c, "students/form", sc.formPage("Edit", editPath(studentsPath, id), form), err)
		return
	}
	redirect(c, studentsPath, "Changes saved.")
}

// DeleteForm handles GET /Students/Delete/:id
func (sc *StudentController) DeleteForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	student, err := sc.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "students/details", deletePage(c, student, studentsPath, id))
}

// Delete handles POST /Students/Delete/:id
func (sc *StudentController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if err := sc.studentService.Delete(c.Request.Context(), id); err != nil {
		handleDeleteError(c, studentsPath, id, err)
		return
	}
	redirect(c, studentsPath, "Student deleted.")
}

func (sc *StudentController) formPage(title, action string, form dto.StudentForm) dto.FormPage {
	return dto.FormPage{Title: title, Action: action, Form: form}
}

func editPath(base string, id int64) string {
	return base + "/Edit/" + strconv.FormatInt(id, 10)
}

func deletePath(base string, id int64) string {
	return base + "/Delete/" + strconv.FormatInt(id, 10)
}

// deletePage builds the delete confirmation. A previous failed attempt is
// reported through the saveChangesError query flag.
func deletePage(c *gin.Context, item any, base string, id int64) dto.DetailsPage {
	page := dto.DetailsPage{Item: item, Confirm: true, Action: deletePath(base, id)}
	if c.Query("saveChangesError") == "true" {
		page.Error = deleteFailedText
	}
	return page
}

// handleDeleteError sends a rejected delete back to the confirmation page;
// anything else gets the problem page.
func handleDeleteError(c *gin.Context, base string, id int64, err error) {
	if errors.Is(err, apperrors.ErrStorageConflict) && !errors.Is(err, apperrors.ErrStorageUnavailable) {
		middleware.Logger(c).Error().Err(err).Int64("id", id).Str("path", c.Request.URL.Path).Msg("Delete failed")
		c.Redirect(http.StatusFound, deletePath(base, id)+"?saveChangesError=true")
		return
	}
	middleware.HandlePageError(c, err)
}
