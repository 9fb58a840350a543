package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"santahub/cmd/middleware"
	"santahub/internal/service"
)

type Routers struct {
	Service service.Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.POST("/users", r.Service.CreateUser)
	apiGroup.GET("/users/:id", r.Service.GetUser)
	apiGroup.GET("/users/:id/assignments", r.Service.GetUserAssignments)

	apiGroup.POST("/events", r.Service.CreateEvent)
	apiGroup.PUT("/events/:id", r.Service.UpdateEvent)
	apiGroup.DELETE("/events/:id", r.Service.DeleteEvent)
	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.GET("/events/:id", r.Service.GetInfo)
	apiGroup.GET("/events/:id/phase", r.Service.GetPhase)

	apiGroup.POST("/events/:id/register", r.Service.Register)
	apiGroup.POST("/events/:id/confirm", r.Service.Confirm)

	apiGroup.POST("/events/:id/assignments/generate", r.Service.GenerateAssignments)
	apiGroup.GET("/events/:id/assignments", r.Service.ListAssignments)
	apiGroup.POST("/events/:id/assignments/approve-all", r.Service.ApproveAllAssignments)
	apiGroup.POST("/assignments/:id/approve", r.Service.ApproveAssignment)
	apiGroup.PUT("/assignments/:id", r.Service.EditAssignment)
	apiGroup.DELETE("/assignments/:id", r.Service.DeleteAssignment)

	return app
}
