package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aokisa/guild-reminder/internal/api/handlers/event"
	"github.com/aokisa/guild-reminder/internal/middlewares"
)

func New(handler *event.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/guilds/:guild_id")
	{
		api.POST("/events", handler.Create)
		api.GET("/events", handler.List)
		api.DELETE("/events/:ordinal", handler.Delete)
	}

	return e
}
