package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
)

const enrollmentsPath = "/Enrollments"

// EnrollmentController handles enrollment pages
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new enrollment controller
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Index handles GET /Enrollments
func (ec *EnrollmentController) Index(c *gin.Context) {
	enrollments, err := ec.enrollmentService.List(c.Request.Context())
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "enrollments/index", enrollments)
}

// Details handles GET /Enrollments/Details/:id
func (ec *EnrollmentController) Details(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "enrollments/details", dto.DetailsPage{Item: enrollment})
}

// CreateForm handles GET /Enrollments/Create
func (ec *EnrollmentController) CreateForm(c *gin.Context) {
	page, err := ec.formPage(c, "Create", enrollmentsPath+"/Create", dto.EnrollmentForm{})
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "enrollments/form", page)
}

// Create handles POST /Enrollments/Create
func (ec *EnrollmentController) Create(c *gin.Context) {
	var form dto.EnrollmentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := ec.enrollmentService.Create(c.Request.Context(), form); err != nil {
		ec.fail(c, "Create", enrollmentsPath+"/Create", form, err)
		return
	}
	redirect(c, enrollmentsPath, "Enrollment created.")
}

// EditForm handles GET /Enrollments/Edit/:id
func (ec *EnrollmentController) EditForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	page, err := ec.formPage(c, "Edit", editPath(enrollmentsPath, id), dto.NewEnrollmentForm(*enrollment))
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "enrollments/form", page)
}

// Edit handles POST /Enrollments/Edit/:id
func (ec *EnrollmentController) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	var form dto.EnrollmentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := ec.enrollmentService.Update(c.Request.Context(), id, form); err != nil {
		ec.fail(c, "Edit", editPath(enrollmentsPath, id), form, err)
		return
	}
	redirect(c, enrollmentsPath, "Changes saved.")
}

// DeleteForm handles GET /Enrollments/Delete/:id
func (ec *EnrollmentController) DeleteForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "enrollments/details", deletePage(c, enrollment, enrollmentsPath, id))
}

// Delete handles POST /Enrollments/Delete/:id
func (ec *EnrollmentController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if err := ec.enrollmentService.Delete(c.Request.Context(), id); err != nil {
		handleDeleteError(c, enrollmentsPath, id, err)
		return
	}
	redirect(c, enrollmentsPath, "Enrollment deleted.")
}

func (ec *EnrollmentController) formPage(c *gin.Context, title, action string, form dto.EnrollmentForm) (dto.FormPage, error) {
	options, err := ec.enrollmentService.FormOptions(c.Request.Context(), form)
	if err != nil {
		return dto.FormPage{}, err
	}
	return dto.FormPage{Title: title, Action: action, Form: form, Options: options}, nil
}

func (ec *EnrollmentController) fail(c *gin.Context, title, action string, form dto.EnrollmentForm, err error) {
	page, optErr := ec.formPage(c, title, action, form)
	if optErr != nil {
		middleware.HandlePageError(c, optErr)
		return
	}
	fail(c, "enrollments/form", page, err)
}
