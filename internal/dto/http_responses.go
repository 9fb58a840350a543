package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"santahub/internal/phase"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound            = "EVENT_NOT_FOUND"
	UserNotFound             = "USER_NOT_FOUND"
	RegistrationNotFound     = "REGISTRATION_NOT_FOUND"
	AssignmentNotFound       = "ASSIGNMENT_NOT_FOUND"
	RegistrationDuplicate    = "REGISTRATION_DUPLICATE"
	IneligiblePhase          = "INELIGIBLE_PHASE"
	AlreadyConfirmed         = "ALREADY_CONFIRMED"
	InsufficientParticipants = "INSUFFICIENT_PARTICIPANTS"
	AlreadyGenerated         = "ALREADY_GENERATED"
	GenerationFailed         = "GENERATION_FAILED"
	SelfAssignment           = "SELF_ASSIGNMENT"
	InvalidBoundaries        = "INVALID_BOUNDARIES"
)

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Wishlist string `json:"wishlist" validate:"max=2000"`
}

type CreateEventRequest struct {
	Name                 string     `json:"name" validate:"required,max=255"`
	Description          string     `json:"description"`
	PreregistrationStart time.Time  `json:"preregistration_start" validate:"required"`
	RegistrationStart    time.Time  `json:"registration_start" validate:"required"`
	RegistrationEnd      time.Time  `json:"registration_end" validate:"required"`
	EventStart           *time.Time `json:"event_start,omitempty"`
	IsActive             *bool      `json:"is_active,omitempty"`
}

type RegisterRequest struct {
	UserID int64 `json:"user_id" validate:"required,positive"`
}

type ConfirmRequest struct {
	UserID  int64  `json:"user_id" validate:"required,positive"`
	Address string `json:"address" validate:"required,min=1,max=1000"`
}

type EditAssignmentRequest struct {
	GiverID    int64 `json:"giver_id" validate:"required,positive"`
	ReceiverID int64 `json:"receiver_id" validate:"required,positive"`
}

type PhaseResponse struct {
	EventID        int64           `json:"event_id"`
	State          string          `json:"state"`
	TargetBoundary *time.Time      `json:"target_boundary,omitempty"`
	Remaining      phase.Remaining `json:"remaining"`
}

type RegistrationResponse struct {
	ID               int64     `json:"id"`
	EventID          int64     `json:"event_id"`
	UserID           int64     `json:"user_id"`
	RegistrationType string    `json:"registration_type"`
	IsConfirmed      bool      `json:"is_confirmed"`
	ConfirmedAddress string    `json:"confirmed_address,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type EventResponse struct {
	ID                   int64                  `json:"id"`
	Name                 string                 `json:"name"`
	Description          string                 `json:"description"`
	PreregistrationStart time.Time              `json:"preregistration_start"`
	RegistrationStart    time.Time              `json:"registration_start"`
	RegistrationEnd      time.Time              `json:"registration_end"`
	EventStart           *time.Time             `json:"event_start,omitempty"`
	IsActive             bool                   `json:"is_active"`
	Phase                string                 `json:"phase"`
	TargetBoundary       *time.Time             `json:"target_boundary,omitempty"`
	Remaining            phase.Remaining        `json:"remaining"`
	ConfirmedCount       int                    `json:"confirmed_count"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Registrations        []RegistrationResponse `json:"registrations,omitempty"`
}

type AssignmentResponse struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	GiverID      int64     `json:"giver_id"`
	GiverName    string    `json:"giver_name,omitempty"`
	ReceiverID   int64     `json:"receiver_id"`
	ReceiverName string    `json:"receiver_name,omitempty"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type ApproveAllResponse struct {
	ApprovedCount int `json:"approved_count"`
	FailedCount   int `json:"failed_count"`
}

// UserAssignmentEntry is what a participant may see: who they give to
// (with the delivery address) and, anonymously, that a giver exists for
// them. The giver's identity is never exposed.
type UserAssignmentEntry struct {
	EventID         int64  `json:"event_id"`
	EventName       string `json:"event_name"`
	Role            string `json:"role"`
	ReceiverID      int64  `json:"receiver_id,omitempty"`
	ReceiverName    string `json:"receiver_name,omitempty"`
	ReceiverAddress string `json:"receiver_address,omitempty"`
}

const (
	AssignmentRoleGiver    = "giver"
	AssignmentRoleReceiver = "receiver"
)

const (
	MessageRegistrationClosed    = "registration_closed"
	MessageRegistrationConfirmed = "registration_confirmed"
	MessageAssignmentApproved    = "assignment_approved"
)

// NotificationMessage is the payload published to the notification queue
// and consumed by the worker.
type NotificationMessage struct {
	Type         string `json:"type"`
	EventID      int64  `json:"event_id"`
	UserID       int64  `json:"user_id,omitempty"`
	AssignmentID int64  `json:"assignment_id,omitempty"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func NotFoundError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func ConflictError(c *ginext.Context, code, desc string) {
	c.JSON(409, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func EventNotFoundError(c *ginext.Context) {
	NotFoundError(c, EventNotFound, "Event not found")
}

func UserNotFoundError(c *ginext.Context) {
	NotFoundError(c, UserNotFound, "User not found")
}

func RegistrationNotFoundError(c *ginext.Context) {
	NotFoundError(c, RegistrationNotFound, "Registration not found")
}

func AssignmentNotFoundError(c *ginext.Context) {
	NotFoundError(c, AssignmentNotFound, "Gift assignment not found")
}

func RegistrationDuplicateError(c *ginext.Context) {
	ConflictError(c, RegistrationDuplicate, "You have already registered for this event")
}

func IneligiblePhaseError(c *ginext.Context, desc string) {
	ConflictError(c, IneligiblePhase, desc)
}

func AlreadyConfirmedError(c *ginext.Context) {
	ConflictError(c, AlreadyConfirmed, "Registration is already confirmed")
}

func InsufficientParticipantsError(c *ginext.Context) {
	BadResponseError(c, InsufficientParticipants, "At least two confirmed participants are required")
}

func AlreadyGeneratedError(c *ginext.Context) {
	ConflictError(c, AlreadyGenerated, "Assignments already exist for this event; delete them to regenerate")
}

func GenerationFailedError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: GenerationFailed,
			Desc: "Could not generate assignments, please retry",
		},
	})
}

func SelfAssignmentError(c *ginext.Context) {
	BadResponseError(c, SelfAssignment, "Giver and receiver must be different participants")
}

func InvalidBoundariesError(c *ginext.Context) {
	BadResponseError(c, InvalidBoundaries, "Event boundaries must satisfy preregistration_start < registration_start < registration_end")
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
