// Package api wires the HTTP routes.
package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/api/handlers"
	"github.com/roksva123/go-taskboard-backend/internal/api/middleware"
	"github.com/roksva123/go-taskboard-backend/internal/metrics"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

type Deps struct {
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Store   handlers.DirectoryStore
	DB      handlers.Pinger

	Auth     *service.AuthService
	Access   *service.AccessService
	Tasks    *service.TaskService
	Projects *service.ProjectService
	Leaders  *service.LeaderService
	Users    *service.UserService

	CORSOrigins        []string
	LoginRatePerMinute int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(d.Log), middleware.Metrics(d.Metrics))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(d.CORSOrigins) == 0 || (len(d.CORSOrigins) == 1 && d.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = d.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	health := handlers.NewHealthHandler(d.DB)
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))

	authH := handlers.NewAuthHandler(d.Auth, d.Access)
	dir := handlers.NewDirectoryHandler(d.Store, d.Users)
	projects := handlers.NewProjectHandler(d.Projects, d.Access)
	tasks := handlers.NewTaskHandler(d.Tasks, d.Access)
	leaders := handlers.NewLeaderHandler(d.Leaders)
	users := handlers.NewUserHandler(d.Users)

	auth := middleware.Auth(d.Auth.Tokens())
	admin := middleware.RequireAdmin()

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", middleware.NewRateLimiter(d.LoginRatePerMinute).Middleware(), authH.Login)
		v1.GET("/me", auth, authH.Me)

		v1.GET("/departments", dir.ListDepartments)
		v1.GET("/departments/:dnumber", dir.GetDepartment)
		v1.POST("/departments", auth, admin, dir.CreateDepartment)
		v1.PUT("/departments/:dnumber", auth, admin, dir.UpdateDepartment)
		v1.DELETE("/departments/:dnumber", auth, admin, dir.DeleteDepartment)

		v1.GET("/employees", dir.ListEmployees)
		v1.GET("/employees/:ssn", dir.GetEmployee)
		v1.POST("/employees", auth, admin, dir.CreateEmployee)
		v1.PUT("/employees/:ssn", auth, admin, dir.UpdateEmployee)
		v1.DELETE("/employees/:ssn", auth, admin, dir.DeleteEmployee)

		v1.GET("/works-on", dir.ListWorksOn)
		v1.GET("/works-on/:ssn/:pnumber", dir.GetWorksOn)
		v1.POST("/works-on", auth, admin, dir.CreateWorksOn)
		v1.DELETE("/works-on/:ssn/:pnumber", auth, admin, dir.DeleteWorksOn)

		v1.GET("/completion-logs", dir.ListCompletionLogs)
		v1.GET("/completion-logs/:id", dir.GetCompletionLog)
		v1.POST("/completion-logs", auth, admin, dir.CreateCompletionLog)
		v1.DELETE("/completion-logs/:id", auth, admin, dir.DeleteCompletionLog)

		v1.GET("/assignment-logs", dir.ListAssignmentLogs)
		v1.GET("/assignment-logs/:id", dir.GetAssignmentLog)
		v1.POST("/assignment-logs", auth, admin, dir.CreateAssignmentLog)
		v1.DELETE("/assignment-logs/:id", auth, admin, dir.DeleteAssignmentLog)

		v1.GET("/projects", projects.List)
		v1.GET("/projects/:pnumber", projects.Get)
		v1.POST("/projects", auth, admin, projects.Create)
		v1.PUT("/projects/:pnumber", auth, projects.Update)
		v1.DELETE("/projects/:pnumber", auth, admin, projects.Delete)

		v1.GET("/tasks", tasks.List)
		v1.GET("/tasks/:id", tasks.Get)
		v1.POST("/tasks", auth, tasks.Create)
		v1.PUT("/tasks/:id", auth, tasks.Update)
		v1.DELETE("/tasks/:id", auth, tasks.Delete)

		v1.GET("/assignments", tasks.ListAssignments)
		v1.GET("/assignments/:ssn/:task_id", tasks.GetAssignment)
		v1.POST("/assignments", auth, tasks.CreateAssignment)
		v1.PUT("/assignments/:ssn/:task_id", auth, tasks.UpdateAssignment)
		v1.DELETE("/assignments/:ssn/:task_id/:todo_index", auth, tasks.DeleteAssignment)

		v1.GET("/leaders", leaders.List)
		v1.GET("/leaders/:id", leaders.Get)
		v1.GET("/leaders/project/:pnumber", leaders.Current)
		v1.POST("/leaders/project/:pnumber/assign", auth, admin, leaders.Assign)
		v1.PUT("/leaders/:id", auth, admin, leaders.Update)
		v1.DELETE("/leaders/:id", auth, admin, leaders.Delete)

		v1.GET("/users", auth, admin, users.List)
	}

	return r
}
