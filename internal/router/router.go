package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	CreateEvent(c *ginext.Context)
	GetEvent(c *ginext.Context)
	ListEvents(c *ginext.Context)
	Register(c *ginext.Context)
	RegisterWalkIn(c *ginext.Context)
	GetRoster(c *ginext.Context)
	StreamRoster(c *ginext.Context)
	Scan(c *ginext.Context)
	SetRegistrationStatus(c *ginext.Context)
	DeleteRegistration(c *ginext.Context)
	SubmitPin(c *ginext.Context)
	EndShift(c *ginext.Context)
	CreateProfile(c *ginext.Context)
	GetProfile(c *ginext.Context)
}

// InitRouter wires the route table. identity authenticates the caller's
// profile; volunteer additionally requires an active VolunteerGrant and gates
// everything a scanning device touches.
func InitRouter(mode string, h Handler, identity, volunteer ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Profiles (identity provider surrogate)
		api.POST("/profiles", h.CreateProfile)
		api.GET("/profiles/:id", h.GetProfile)

		// Access gate
		gate := api.Group("/gate", identity)
		{
			gate.POST("/pin", h.SubmitPin)
			gate.POST("/end-shift", h.EndShift)
		}

		// Events
		api.POST("/events", h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)

		// Self-service RSVP
		api.POST("/events/:id/registrations", h.Register)

		// Check-in tooling, volunteers only
		tooling := api.Group("/events/:id", identity, volunteer)
		{
			tooling.GET("/registrations", h.GetRoster)
			tooling.GET("/registrations/stream", h.StreamRoster)
			tooling.POST("/walk-ins", h.RegisterWalkIn)
			tooling.POST("/scan", h.Scan)
			tooling.PATCH("/registrations/:rid/status", h.SetRegistrationStatus)
			tooling.DELETE("/registrations/:rid", h.DeleteRegistration)
		}
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
