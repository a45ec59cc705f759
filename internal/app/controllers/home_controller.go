package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/services"
	"github.com/yigit/uniadmin/internal/middleware"
)

// HomeController serves the landing and About pages
type HomeController struct {
	studentService services.StudentService
}

// NewHomeController creates a new home controller
func NewHomeController(studentService services.StudentService) *HomeController {
	return &HomeController{studentService: studentService}
}

// Index handles GET /
func (hc *HomeController) Index(c *gin.Context) {
	render(c, http.StatusOK, "home/index", nil)
}

// About handles GET /Home/About with students grouped by enrollment date
func (hc *HomeController) About(c *gin.Context) {
	data, err := hc.studentService.EnrollmentStatistics(c.Request.Context())
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}
	render(c, http.StatusOK, "home/about", data)
}
