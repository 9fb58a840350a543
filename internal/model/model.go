package model

import "time"

const (
	RegistrationTypePre  = "preregistration"
	RegistrationTypeMain = "registration"
)

type Event struct {
	ID                   int64      `db:"id" json:"id"`
	Name                 string     `db:"name" json:"name"`
	Description          string     `db:"description,omitempty" json:"description,omitempty"`
	PreregistrationStart time.Time  `db:"preregistration_start" json:"preregistration_start"`
	RegistrationStart    time.Time  `db:"registration_start" json:"registration_start"`
	RegistrationEnd      time.Time  `db:"registration_end" json:"registration_end"`
	EventStart           *time.Time `db:"event_start,omitempty" json:"event_start,omitempty"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Wishlist  string    `db:"wishlist,omitempty" json:"wishlist,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Registration struct {
	ID               int64     `db:"id" json:"id"`
	EventID          int64     `db:"event_id" json:"event_id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	RegistrationType string    `db:"registration_type" json:"registration_type"`
	IsConfirmed      bool      `db:"is_confirmed" json:"is_confirmed"`
	ConfirmedAddress string    `db:"confirmed_address,omitempty" json:"confirmed_address,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type GiftAssignment struct {
	ID         int64     `db:"id" json:"id"`
	EventID    int64     `db:"event_id" json:"event_id"`
	GiverID    int64     `db:"giver_id" json:"giver_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
