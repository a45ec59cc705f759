package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/controllers"
	"github.com/yigit/uniadmin/internal/middleware"
)

// Controllers bundles every page controller the router dispatches to
type Controllers struct {
	Home        *controllers.HomeController
	Students    *controllers.StudentController
	Courses     *controllers.CourseController
	Departments *controllers.DepartmentController
	Enrollments *controllers.EnrollmentController
	Instructors *controllers.InstructorController
	Health      *controllers.HealthController
}

// crudController is the action set shared by every entity controller
type crudController interface {
	Index(c *gin.Context)
	Details(c *gin.Context)
	CreateForm(c *gin.Context)
	Create(c *gin.Context)
	EditForm(c *gin.Context)
	Edit(c *gin.Context)
	DeleteForm(c *gin.Context)
	Delete(c *gin.Context)
}

// SetupRouter configures all application routes following /{Entity}/{Action}/{id}
func SetupRouter(router *gin.Engine, ctrl Controllers) {
	// Home
	router.GET("/", ctrl.Home.Index)
	router.GET("/Home", ctrl.Home.Index)
	router.GET("/Home/Index", ctrl.Home.Index)
	router.GET("/Home/About", ctrl.Home.About)

	registerEntity(router.Group("/Students"), ctrl.Students)
	registerEntity(router.Group("/Courses"), ctrl.Courses)
	registerEntity(router.Group("/Departments"), ctrl.Departments)
	registerEntity(router.Group("/Enrollments"), ctrl.Enrollments)

	instructors := router.Group("/Instructors")
	registerEntity(instructors, ctrl.Instructors)
	// Selected instructor, optionally narrowed to one of its courses with ?courseID=
	instructors.GET("/Index/:id", ctrl.Instructors.Index)

	// Health check endpoint (public)
	router.GET("/health", ctrl.Health.Check)

	router.NoRoute(middleware.NotFound())
}

func registerEntity(group *gin.RouterGroup, ctrl crudController) {
	group.GET("", ctrl.Index)
	group.GET("/Index", ctrl.Index)
	group.GET("/Details/:id", ctrl.Details)
	group.GET("/Create", ctrl.CreateForm)
	group.POST("/Create", ctrl.Create)
	group.GET("/Edit/:id", ctrl.EditForm)
	group.POST("/Edit/:id", ctrl.Edit)
	group.GET("/Delete/:id", ctrl.DeleteForm)
	group.POST("/Delete/:id", ctrl.Delete)
}
