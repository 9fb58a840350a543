package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"santahub/internal/assign"
	"santahub/internal/clock"
	"santahub/internal/dto"
	"santahub/internal/model"
	"santahub/internal/phase"
	"santahub/internal/repo"
	"santahub/pkg/validator"
)

type Service interface {
	CreateUser(ctx *ginext.Context)
	GetUser(ctx *ginext.Context)
	GetUserAssignments(ctx *ginext.Context)

	CreateEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)
	GetAllEvents(ctx *ginext.Context)
	GetInfo(ctx *ginext.Context)
	GetPhase(ctx *ginext.Context)

	Register(ctx *ginext.Context)
	Confirm(ctx *ginext.Context)

	GenerateAssignments(ctx *ginext.Context)
	ListAssignments(ctx *ginext.Context)
	ApproveAssignment(ctx *ginext.Context)
	ApproveAllAssignments(ctx *ginext.Context)
	EditAssignment(ctx *ginext.Context)
	DeleteAssignment(ctx *ginext.Context)
}

// Publisher is the slice of the rabbit client the service needs; tests swap
// in a recording fake.
type Publisher interface {
	Publish(message []byte, delaySeconds int) error
}

type service struct {
	repo  repo.Repository
	log   *zerolog.Logger
	rbt   Publisher
	clock clock.Clock
}

func NewService(repository repo.Repository, logger *zerolog.Logger, rbt Publisher, clk clock.Clock) Service {
	return &service{
		repo:  repository,
		log:   logger,
		rbt:   rbt,
		clock: clk,
	}
}

func (s *service) publish(msg dto.NotificationMessage, delaySeconds int) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Str("type", msg.Type).Msg("failed to marshal notification")
		return
	}
	if err := s.rbt.Publish(payload, delaySeconds); err != nil {
		s.log.Error().Err(err).Str("type", msg.Type).Msg("failed to publish notification")
	}
}

func parseIDParam(ctx *ginext.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid ID")
		return 0, false
	}
	return id, true
}

func (s *service) CreateUser(ctx *ginext.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Wishlist: req.Wishlist,
	}
	if _, err := s.repo.CreateUser(ctx.Request.Context(), user); err != nil {
		s.log.Error().Err(err).Msg("failed to create user")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user created")
	dto.SuccessCreatedResponse(ctx, user)
}

func (s *service) GetUser(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	user, err := s.repo.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		dto.UserNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, user)
}

// GetUserAssignments shows a participant their approved draw: who they give
// to (with address), and anonymously whether someone drew them.
func (s *service) GetUserAssignments(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	rc := ctx.Request.Context()

	if _, err := s.repo.GetUserByID(rc, id); err != nil {
		dto.UserNotFoundError(ctx)
		return
	}

	giving, err := s.repo.GetApprovedAssignmentsByGiver(rc, id)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("failed to list giver assignments")
		dto.InternalServerError(ctx)
		return
	}
	receiving, err := s.repo.GetApprovedAssignmentsByReceiver(rc, id)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("failed to list receiver assignments")
		dto.InternalServerError(ctx)
		return
	}

	entries := make([]dto.UserAssignmentEntry, 0, len(giving)+len(receiving))
	for _, a := range giving {
		entry := dto.UserAssignmentEntry{
			EventID:    a.EventID,
			Role:       dto.AssignmentRoleGiver,
			ReceiverID: a.ReceiverID,
		}
		if event, err := s.repo.GetEventByID(rc, a.EventID); err == nil {
			entry.EventName = event.Name
		}
		if receiver, err := s.repo.GetUserByID(rc, a.ReceiverID); err == nil {
			entry.ReceiverName = receiver.Name
		}
		if reg, err := s.repo.GetRegistration(rc, a.EventID, a.ReceiverID); err == nil {
			entry.ReceiverAddress = reg.ConfirmedAddress
		}
		entries = append(entries, entry)
	}
	for _, a := range receiving {
		entry := dto.UserAssignmentEntry{
			EventID: a.EventID,
			Role:    dto.AssignmentRoleReceiver,
		}
		if event, err := s.repo.GetEventByID(rc, a.EventID); err == nil {
			entry.EventName = event.Name
		}
		entries = append(entries, entry)
	}

	dto.SuccessResponse(ctx, entries)
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if err := phase.ValidateBoundaries(req.PreregistrationStart, req.RegistrationStart, req.RegistrationEnd); err != nil {
		dto.InvalidBoundariesError(ctx)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	event := &model.Event{
		Name:                 req.Name,
		Description:          req.Description,
		PreregistrationStart: req.PreregistrationStart,
		RegistrationStart:    req.RegistrationStart,
		RegistrationEnd:      req.RegistrationEnd,
		EventStart:           req.EventStart,
		IsActive:             isActive,
	}

	if _, err := s.repo.CreateEvent(ctx.Request.Context(), event); err != nil {
		s.log.Error().Err(err).Msg("failed to create event in DB")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", event.ID).Msg("event created")

	// Schedule the delayed window-closed notification for registration_end.
	now := s.clock.Now()
	if delay := int(event.RegistrationEnd.Sub(now).Seconds()); delay > 0 {
		s.publish(dto.NotificationMessage{
			Type:    dto.MessageRegistrationClosed,
			EventID: event.ID,
		}, delay)
	}

	dto.SuccessCreatedResponse(ctx, s.eventResponse(ctx, event, false))
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if err := phase.ValidateBoundaries(req.PreregistrationStart, req.RegistrationStart, req.RegistrationEnd); err != nil {
		dto.InvalidBoundariesError(ctx)
		return
	}

	existing, err := s.repo.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	isActive := existing.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	event := &model.Event{
		ID:                   id,
		Name:                 req.Name,
		Description:          req.Description,
		PreregistrationStart: req.PreregistrationStart,
		RegistrationStart:    req.RegistrationStart,
		RegistrationEnd:      req.RegistrationEnd,
		EventStart:           req.EventStart,
		IsActive:             isActive,
		CreatedAt:            existing.CreatedAt,
	}
	if err := s.repo.UpdateEvent(ctx.Request.Context(), event); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("event_id", id).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event updated")
	dto.SuccessResponse(ctx, s.eventResponse(ctx, event, false))
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := s.repo.DeleteEvent(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("event_id", id).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}
	s.log.Info().Int64("event_id", id).Msg("event deleted with registrations and assignments")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) GetAllEvents(ctx *ginext.Context) {
	isAdmin := ctx.Query("admin") == "true"

	events, err := s.repo.GetAllEvents(ctx.Request.Context())
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, s.eventResponse(ctx, &events[i], isAdmin))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) GetInfo(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	isAdmin := ctx.Query("admin") == "true"

	event, err := s.repo.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, s.eventResponse(ctx, event, isAdmin))
}

// GetPhase serves the live countdown; an optional ?now=RFC3339 override
// exists for the presentation layer and for poking at boundaries.
func (s *service) GetPhase(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	event, err := s.repo.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	now := s.clock.Now()
	if raw := ctx.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			dto.BadResponseError(ctx, dto.FieldIncorrect, "Field 'now' must be RFC3339")
			return
		}
		now = parsed.UTC()
	}

	info := phase.Compute(event, now)
	resp := dto.PhaseResponse{
		EventID:        event.ID,
		State:          info.State.String(),
		TargetBoundary: info.Target,
	}
	if info.Target != nil {
		resp.Remaining = phase.Until(*info.Target, now)
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) Register(ctx *ginext.Context) {
	eventID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	rc := ctx.Request.Context()

	event, err := s.repo.GetEventByID(rc, eventID)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}
	if _, err := s.repo.GetUserByID(rc, req.UserID); err != nil {
		dto.UserNotFoundError(ctx)
		return
	}

	// The phase decides the registration type; a main-window signup needs
	// no separate confirmation step.
	now := s.clock.Now()
	registration := &model.Registration{
		EventID: eventID,
		UserID:  req.UserID,
	}
	switch phase.Compute(event, now).State {
	case phase.StatePreregistration:
		registration.RegistrationType = model.RegistrationTypePre
		registration.IsConfirmed = false
	case phase.StateRegistration:
		registration.RegistrationType = model.RegistrationTypeMain
		registration.IsConfirmed = true
	default:
		dto.IneligiblePhaseError(ctx, "Registration is not open for this event")
		return
	}

	if _, err := s.repo.RegisterTx(rc, registration); err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrDuplicateRegistration):
			dto.RegistrationDuplicateError(ctx)
		default:
			s.log.Error().Err(err).Msg("failed to register participant")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("registration_id", registration.ID).
		Int64("event_id", eventID).
		Int64("user_id", req.UserID).
		Str("type", registration.RegistrationType).
		Msg("participant registered")

	dto.SuccessCreatedResponse(ctx, registrationResponse(registration))
}

func (s *service) Confirm(ctx *ginext.Context) {
	eventID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	rc := ctx.Request.Context()

	event, err := s.repo.GetEventByID(rc, eventID)
	if err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	if !phase.CanConfirm(event, s.clock.Now()) {
		dto.IneligiblePhaseError(ctx, "Confirmation is only possible during the registration window")
		return
	}

	registration, err := s.repo.ConfirmTx(rc, eventID, req.UserID, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrRegistrationNotFound):
			dto.RegistrationNotFoundError(ctx)
		case errors.Is(err, repo.ErrAlreadyConfirmed):
			dto.AlreadyConfirmedError(ctx)
		default:
			s.log.Error().Err(err).Msg("failed to confirm registration")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("registration_id", registration.ID).
		Int64("event_id", eventID).
		Int64("user_id", req.UserID).
		Msg("registration confirmed")

	s.publish(dto.NotificationMessage{
		Type:    dto.MessageRegistrationConfirmed,
		EventID: eventID,
		UserID:  req.UserID,
	}, 0)

	dto.SuccessResponse(ctx, registrationResponse(registration))
}

func (s *service) GenerateAssignments(ctx *ginext.Context) {
	eventID, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	rc := ctx.Request.Context()

	rng := rand.New(rand.NewSource(s.clock.Now().UnixNano()))
	assignments, err := s.repo.GenerateAssignmentsTx(rc, eventID, func(participants []int64) ([]assign.Pair, error) {
		return assign.Derange(participants, rng)
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrAssignmentsExist):
			dto.AlreadyGeneratedError(ctx)
		case errors.Is(err, assign.ErrInsufficientParticipants):
			dto.InsufficientParticipantsError(ctx)
		case errors.Is(err, assign.ErrGenerationFailed):
			s.log.Error().Int64("event_id", eventID).Msg("derangement retry cap exceeded")
			dto.GenerationFailedError(ctx)
		default:
			s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to generate assignments")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("event_id", eventID).
		Int("count", len(assignments)).
		Msg("gift assignments generated")

	dto.SuccessCreatedResponse(ctx, s.assignmentResponses(ctx, assignments))
}

func (s *service) ListAssignments(ctx *ginext.Context) {
	eventID, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	rc := ctx.Request.Context()

	if _, err := s.repo.GetEventByID(rc, eventID); err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	assignments, err := s.repo.GetAssignmentsByEventID(rc, eventID)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to list assignments")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, s.assignmentResponses(ctx, assignments))
}

func (s *service) ApproveAssignment(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	a, err := s.repo.ApproveAssignment(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrAssignmentNotFound) {
			dto.AssignmentNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("assignment_id", id).Msg("failed to approve assignment")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("assignment_id", a.ID).Int64("event_id", a.EventID).Msg("assignment approved")
	s.publish(dto.NotificationMessage{
		Type:         dto.MessageAssignmentApproved,
		EventID:      a.EventID,
		AssignmentID: a.ID,
	}, 0)

	dto.SuccessResponse(ctx, s.assignmentResponses(ctx, []model.GiftAssignment{*a})[0])
}

// ApproveAllAssignments approves draft rows one by one and reports counts;
// a failed row never rolls back the ones already approved.
func (s *service) ApproveAllAssignments(ctx *ginext.Context) {
	eventID, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	rc := ctx.Request.Context()

	if _, err := s.repo.GetEventByID(rc, eventID); err != nil {
		dto.EventNotFoundError(ctx)
		return
	}

	ids, err := s.repo.ListDraftAssignmentIDs(rc, eventID)
	if err != nil {
		s.log.Error().Err(err).Int64("event_id", eventID).Msg("failed to list draft assignments")
		dto.InternalServerError(ctx)
		return
	}

	resp := dto.ApproveAllResponse{}
	for _, id := range ids {
		a, err := s.repo.ApproveAssignment(rc, id)
		if err != nil {
			s.log.Error().Err(err).Int64("assignment_id", id).Msg("failed to approve assignment in bulk")
			resp.FailedCount++
			continue
		}
		resp.ApprovedCount++
		s.publish(dto.NotificationMessage{
			Type:         dto.MessageAssignmentApproved,
			EventID:      a.EventID,
			AssignmentID: a.ID,
		}, 0)
	}

	s.log.Info().
		Int64("event_id", eventID).
		Int("approved", resp.ApprovedCount).
		Int("failed", resp.FailedCount).
		Msg("bulk approval finished")

	dto.SuccessResponse(ctx, resp)
}

func (s *service) EditAssignment(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.EditAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if req.GiverID == req.ReceiverID {
		dto.SelfAssignmentError(ctx)
		return
	}

	a, err := s.repo.UpdateAssignmentTx(ctx.Request.Context(), id, req.GiverID, req.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrAssignmentNotFound):
			dto.AssignmentNotFoundError(ctx)
		case errors.Is(err, repo.ErrNotParticipant):
			dto.NotFoundError(ctx, dto.UserNotFound, "Giver and receiver must be confirmed participants of the event")
		default:
			s.log.Error().Err(err).Int64("assignment_id", id).Msg("failed to edit assignment")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("assignment_id", a.ID).
		Int64("giver_id", a.GiverID).
		Int64("receiver_id", a.ReceiverID).
		Msg("assignment edited")

	dto.SuccessResponse(ctx, s.assignmentResponses(ctx, []model.GiftAssignment{*a})[0])
}

func (s *service) DeleteAssignment(ctx *ginext.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := s.repo.DeleteAssignment(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrAssignmentNotFound) {
			dto.AssignmentNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Int64("assignment_id", id).Msg("failed to delete assignment")
		dto.InternalServerError(ctx)
		return
	}
	s.log.Info().Int64("assignment_id", id).Msg("assignment deleted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) eventResponse(ctx *ginext.Context, event *model.Event, withRegistrations bool) dto.EventResponse {
	rc := ctx.Request.Context()
	now := s.clock.Now()
	info := phase.Compute(event, now)

	resp := dto.EventResponse{
		ID:                   event.ID,
		Name:                 event.Name,
		Description:          event.Description,
		PreregistrationStart: event.PreregistrationStart,
		RegistrationStart:    event.RegistrationStart,
		RegistrationEnd:      event.RegistrationEnd,
		EventStart:           event.EventStart,
		IsActive:             event.IsActive,
		Phase:                info.State.String(),
		TargetBoundary:       info.Target,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
	if info.Target != nil {
		resp.Remaining = phase.Until(*info.Target, now)
	}

	if confirmed, err := s.repo.ListConfirmedParticipants(rc, event.ID); err == nil {
		resp.ConfirmedCount = len(confirmed)
	} else {
		s.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to count confirmed participants")
	}

	if withRegistrations {
		registrations, err := s.repo.GetRegistrationsByEventID(rc, event.ID)
		if err != nil {
			s.log.Error().Err(err).Int64("event_id", event.ID).Msg("failed to get registrations for admin view")
		}
		for i := range registrations {
			resp.Registrations = append(resp.Registrations, registrationResponse(&registrations[i]))
		}
	}
	return resp
}

func registrationResponse(reg *model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:               reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		RegistrationType: reg.RegistrationType,
		IsConfirmed:      reg.IsConfirmed,
		ConfirmedAddress: reg.ConfirmedAddress,
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
	}
}

func (s *service) assignmentResponses(ctx *ginext.Context, assignments []model.GiftAssignment) []dto.AssignmentResponse {
	ids := make([]int64, 0, len(assignments)*2)
	for _, a := range assignments {
		ids = append(ids, a.GiverID, a.ReceiverID)
	}
	users, err := s.repo.GetUsersByIDs(ctx.Request.Context(), ids)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to resolve participant names")
		users = map[int64]*model.User{}
	}

	resp := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		item := dto.AssignmentResponse{
			ID:         a.ID,
			EventID:    a.EventID,
			GiverID:    a.GiverID,
			ReceiverID: a.ReceiverID,
			IsApproved: a.IsApproved,
			CreatedAt:  a.CreatedAt,
		}
		if u, ok := users[a.GiverID]; ok {
			item.GiverName = u.Name
		}
		if u, ok := users[a.ReceiverID]; ok {
			item.ReceiverName = u.Name
		}
		resp = append(resp, item)
	}
	return resp
}
