package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
)

const departmentsPath = "/Departments"

// DepartmentController handles department pages
type DepartmentController struct {
	departmentService services.DepartmentService
}

// NewDepartmentController creates a new department controller
func NewDepartmentController(departmentService services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// Index handles GET /Departments
func (dc *DepartmentController) Index(c *gin.Context) {
	departments, err := dc.departmentService.List(c.Request.Context())
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "departments/index", departments)
}

// Details handles GET /Departments/Details/:id
func (dc *DepartmentController) Details(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	department, err := dc.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "departments/details", dto.DetailsPage{Item: department})
}

// CreateForm handles GET /Departments/Create
func (dc *DepartmentController) CreateForm(c *gin.Context) {
	page, err := dc.formPage(c, "Create", departmentsPath+"/Create", dto.DepartmentForm{})
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "departments/form", page)
}

// Create handles POST /Departments/Create
func (dc *DepartmentController) Create(c *gin.Context) {
	var form dto.DepartmentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	department, err := dc.departmentService.Create(c.Request.Context(), form)
	if err != nil {
		dc.fail(c, "Create", departmentsPath+"/Create", form, err)
		return
	}
	redirect(c, departmentsPath, "Department "+department.Name+" was created.")
}

// EditForm handles GET /Departments/Edit/:id
func (dc *DepartmentController) EditForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	department, err := dc.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	page, err := dc.formPage(c, "Edit", editPath(departmentsPath, id), dto.NewDepartmentForm(*department))
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "departments/form", page)
}

// Edit handles POST /Departments/Edit/:id
func (dc *DepartmentController) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	var form dto.DepartmentForm
	if err := bindForm(c, &form); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if _, err := dc.departmentService.Update(c.Request.Context(), id, form); err != nil {
		dc.fail(c, "Edit", editPath(departmentsPath, id), form, err)
		return
	}
	redirect(c, departmentsPath, "Changes saved.")
}

// DeleteForm handles GET /Departments/Delete/:id
func (dc *DepartmentController) DeleteForm(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	department, err := dc.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "departments/details", deletePage(c, department, departmentsPath, id))
}

// Delete handles POST /Departments/Delete/:id. The department's courses go with it.
func (dc *DepartmentController) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	if err := dc.departmentService.Delete(c.Request.Context(), id); err != nil {
		handleDeleteError(c, departmentsPath, id, err)
		return
	}
	redirect(c, departmentsPath, "Department deleted.")
}

func (dc *DepartmentController) formPage(c *gin.Context, title, action string, form dto.DepartmentForm) (dto.FormPage, error) {
	instructors, err := dc.departmentService.InstructorOptions(c.Request.Context(), form.InstructorID)
	if err != nil {
		return dto.FormPage{}, err
	}
	return dto.FormPage{
		Title:   title,
		Action:  action,
		Form:    form,
		Options: map[string][]dto.SelectOption{"InstructorID": instructors},
	}, nil
}

func (dc *DepartmentController) fail(c *gin.Context, title, action string, form dto.DepartmentForm, err error) {
	page, optErr := dc.formPage(c, title, action, form)
	if optErr != nil {
		middleware.HandlePageError(c, optErr)
		return
	}
	fail(c, "departments/form", page, err)
}
