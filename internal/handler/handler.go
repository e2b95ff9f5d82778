package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/handler/dto"
	"github.com/Gifford23/youth-xtreme-checkin/internal/middleware"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

type EventSvc interface {
	CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error)
	GetDetails(ctx context.Context, id string) (*domain.EventDetails, error)
	List(ctx context.Context) ([]*domain.Event, error)
}

type CheckinSvc interface {
	Register(ctx context.Context, eventID string, input domain.RegisterInput) (*domain.Registration, error)
	RegisterWalkIn(ctx context.Context, eventID string, input domain.WalkInInput) (*domain.Registration, error)
	SetStatus(ctx context.Context, eventID, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error)
	Delete(ctx context.Context, eventID, registrationID string) error
	Roster(ctx context.Context, eventID string) ([]*domain.Registration, error)
}

type ScanSvc interface {
	Scan(ctx context.Context, eventID, deviceID, raw string) (*domain.ScanResult, error)
}

type GateSvc interface {
	SubmitPin(ctx context.Context, profileID, candidate string) (bool, error)
	EndShift(ctx context.Context, profileID string) error
}

type ProfileSvc interface {
	Create(ctx context.Context, input domain.CreateProfileInput) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

// RosterSub is one live roster stream as the SSE handler consumes it.
type RosterSub interface {
	Updates() <-chan []*domain.Registration
	Close()
}

type RosterStream interface {
	Subscribe(ctx context.Context, eventID string) (RosterSub, error)
}

type Handler struct {
	eventService   EventSvc
	checkinService CheckinSvc
	scanService    ScanSvc
	gateService    GateSvc
	profileService ProfileSvc
	rosterStream   RosterStream
}

func NewHandler(
	eventService EventSvc,
	checkinService CheckinSvc,
	scanService ScanSvc,
	gateService GateSvc,
	profileService ProfileSvc,
	rosterStream RosterStream,
) *Handler {
	return &Handler{
		eventService:   eventService,
		checkinService: checkinService,
		scanService:    scanService,
		gateService:    gateService,
		profileService: profileService,
		rosterStream:   rosterStream,
	}
}

// Events

func (h *Handler) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid starts_at format, expected RFC3339",
		})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), domain.CreateEventInput{
		Title:    req.Title,
		Location: req.Location,
		StartsAt: startsAt,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *Handler) GetEvent(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	details, err := h.eventService.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDetailsResponse(details))
}

func (h *Handler) ListEvents(c *ginext.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

// Registrations

func (h *Handler) Register(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.checkinService.Register(c.Request.Context(), eventID, domain.RegisterInput{
		Identity:     req.Identity,
		DisplayName:  req.DisplayName,
		ContactPhone: req.ContactPhone,
		PartySize:    req.PartySize,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *Handler) RegisterWalkIn(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	var req dto.WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.checkinService.RegisterWalkIn(c.Request.Context(), eventID, domain.WalkInInput{
		DisplayName:  req.DisplayName,
		Identity:     req.Identity,
		ContactPhone: req.ContactPhone,
		PartySize:    req.PartySize,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *Handler) GetRoster(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	roster, err := h.checkinService.Roster(c.Request.Context(), eventID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.RegistrationResponse, 0, len(roster))
	for _, r := range roster {
		resp = append(resp, dto.ToRegistrationResponse(r))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetRegistrationStatus(c *ginext.Context) {
	eventID := c.Param("id")
	regID := c.Param("rid")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}
	if _, err := uuid.Parse(regID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid registration id"})
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := h.checkinService.SetStatus(
		c.Request.Context(), eventID, regID,
		domain.RegistrationStatus(req.Status),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

func (h *Handler) DeleteRegistration(c *ginext.Context) {
	eventID := c.Param("id")
	regID := c.Param("rid")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}
	if _, err := uuid.Parse(regID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid registration id"})
		return
	}

	if err := h.checkinService.Delete(c.Request.Context(), eventID, regID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "deleted"})
}

// Scanning

func (h *Handler) Scan(c *ginext.Context) {
	eventID := c.Param("id")
	if _, err := uuid.Parse(eventID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid event id"})
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		deviceID = c.ClientIP()
	}

	result, err := h.scanService.Scan(c.Request.Context(), eventID, deviceID, req.Payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScanResponse(result))
}

// Gate

func (h *Handler) SubmitPin(c *ginext.Context) {
	var req dto.PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	granted, err := h.gateService.SubmitPin(
		c.Request.Context(), c.GetString(middleware.ProfileIDKey), req.Pin,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if !granted {
		c.JSON(http.StatusUnauthorized, dto.GateResponse{
			Granted: false,
			Message: "Access Denied",
		})
		return
	}

	c.JSON(http.StatusOK, dto.GateResponse{
		Granted: true,
		Message: "Volunteer access granted",
	})
}

func (h *Handler) EndShift(c *ginext.Context) {
	if err := h.gateService.EndShift(c.Request.Context(), c.GetString(middleware.ProfileIDKey)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ginext.H{"status": "shift ended"})
}

// Profiles

func (h *Handler) CreateProfile(c *ginext.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), domain.CreateProfileInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

func (h *Handler) GetProfile(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid profile id"})
		return
	}

	profile, err := h.profileService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrNotVolunteer):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
