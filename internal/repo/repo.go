package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"santahub/internal/assign"
	"santahub/internal/model"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrAlreadyConfirmed      = errors.New("registration already confirmed")
	ErrAssignmentNotFound    = errors.New("gift assignment not found")
	ErrAssignmentsExist      = errors.New("assignments already exist for event")
	ErrNotParticipant        = errors.New("user is not a confirmed participant of the event")
)

type Repository interface {
	CreateUser(ctx context.Context, u *model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error)

	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	GetAllEvents(ctx context.Context) ([]model.Event, error)

	RegisterTx(ctx context.Context, reg *model.Registration) (int64, error)
	ConfirmTx(ctx context.Context, eventID, userID int64, address string) (*model.Registration, error)
	GetRegistration(ctx context.Context, eventID, userID int64) (*model.Registration, error)
	GetRegistrationsByEventID(ctx context.Context, eventID int64) ([]model.Registration, error)
	ListConfirmedParticipants(ctx context.Context, eventID int64) ([]int64, error)

	GenerateAssignmentsTx(ctx context.Context, eventID int64, build func(participants []int64) ([]assign.Pair, error)) ([]model.GiftAssignment, error)
	GetAssignmentByID(ctx context.Context, id int64) (*model.GiftAssignment, error)
	GetAssignmentsByEventID(ctx context.Context, eventID int64) ([]model.GiftAssignment, error)
	ListDraftAssignmentIDs(ctx context.Context, eventID int64) ([]int64, error)
	ApproveAssignment(ctx context.Context, id int64) (*model.GiftAssignment, error)
	UpdateAssignmentTx(ctx context.Context, id, giverID, receiverID int64) (*model.GiftAssignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
	GetApprovedAssignmentsByGiver(ctx context.Context, userID int64) ([]model.GiftAssignment, error)
	GetApprovedAssignmentsByReceiver(ctx context.Context, userID int64) ([]model.GiftAssignment, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.up.sql")
}

func (r *repository) MigrateDown(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.down.sql")
}

func (r *repository) applyMigrations(migrationsDir, pattern string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations %s applied from %s", pattern, migrationsDir)
	return nil
}

func (r *repository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, wishlist)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Wishlist).
		Scan(&u.ID, &u.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return u.ID, nil
}

func (r *repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, email, wishlist, created_at
		FROM users WHERE id = $1
	`
	var u model.User
	if err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Wishlist, &u.CreatedAt); err != nil {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *repository) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	users := make(map[int64]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `
		SELECT id, name, email, wishlist, created_at
		FROM users WHERE id = ANY($1)
	`
	rows, err := r.db.QueryContext(ctx, query, int64Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Wishlist, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[u.ID] = &u
	}
	return users, rows.Err()
}

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (name, description, preregistration_start, registration_start,
		                    registration_end, event_start, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.PreregistrationStart, e.RegistrationStart,
		e.RegistrationEnd, e.EventStart, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return e.ID, nil
}

func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, preregistration_start = $3,
		    registration_start = $4, registration_end = $5, event_start = $6,
		    is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	if err := r.db.QueryRowContext(ctx, query,
		e.Name, e.Description, e.PreregistrationStart, e.RegistrationStart,
		e.RegistrationEnd, e.EventStart, e.IsActive, e.ID,
	).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event; registrations and assignments go with it
// through the ON DELETE CASCADE foreign keys.
func (r *repository) DeleteEvent(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.QueryRowContext(ctx,
		`DELETE FROM events WHERE id = $1 RETURNING id`, id,
	).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT id, name, description, preregistration_start, registration_start,
		       registration_end, event_start, is_active, created_at, updated_at
		FROM events WHERE id = $1
	`
	var e model.Event
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.PreregistrationStart, &e.RegistrationStart,
		&e.RegistrationEnd, &e.EventStart, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, ErrEventNotFound
	}
	return &e, nil
}

func (r *repository) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	query := `
		SELECT id, name, description, preregistration_start, registration_start,
		       registration_end, event_start, is_active, created_at, updated_at
		FROM events
		ORDER BY registration_start DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.PreregistrationStart, &e.RegistrationStart,
			&e.RegistrationEnd, &e.EventStart, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// RegisterTx inserts a registration while holding the event row lock so the
// duplicate check is atomic with the insert. The unique (event_id, user_id)
// constraint backs this up at the schema level.
func (r *repository) RegisterTx(ctx context.Context, reg *model.Registration) (int64, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var eventID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, reg.EventID,
	).Scan(&eventID); err != nil {
		_ = tx.Rollback()
		return 0, ErrEventNotFound
	}

	var existing int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`, reg.EventID, reg.UserID).Scan(&existing); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to check duplicate registration: %w", err)
	}
	if existing > 0 {
		_ = tx.Rollback()
		return 0, ErrDuplicateRegistration
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO registrations (event_id, user_id, registration_type, is_confirmed, confirmed_address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, reg.EventID, reg.UserID, reg.RegistrationType, reg.IsConfirmed, reg.ConfirmedAddress,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return reg.ID, nil
}

// ConfirmTx flips is_confirmed exactly once for a preregistration record.
// The event row lock serializes confirmation against assignment generation.
func (r *repository) ConfirmTx(ctx context.Context, eventID, userID int64, address string) (*model.Registration, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var lockedID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&lockedID); err != nil {
		_ = tx.Rollback()
		return nil, ErrEventNotFound
	}

	var reg model.Registration
	err = tx.QueryRowContext(ctx, `
		SELECT id, event_id, user_id, registration_type, is_confirmed, confirmed_address, created_at, updated_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
		FOR UPDATE
	`, eventID, userID).Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.RegistrationType,
		&reg.IsConfirmed, &reg.ConfirmedAddress, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return nil, ErrRegistrationNotFound
	}

	if reg.IsConfirmed {
		_ = tx.Rollback()
		return nil, ErrAlreadyConfirmed
	}

	if err := tx.QueryRowContext(ctx, `
		UPDATE registrations
		SET is_confirmed = TRUE, confirmed_address = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`, address, reg.ID).Scan(&reg.UpdatedAt); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to confirm registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	reg.IsConfirmed = true
	reg.ConfirmedAddress = address
	return &reg, nil
}

func (r *repository) GetRegistration(ctx context.Context, eventID, userID int64) (*model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, registration_type, is_confirmed, confirmed_address, created_at, updated_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`
	var reg model.Registration
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.RegistrationType,
		&reg.IsConfirmed, &reg.ConfirmedAddress, &reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return nil, ErrRegistrationNotFound
	}
	return &reg, nil
}

func (r *repository) GetRegistrationsByEventID(ctx context.Context, eventID int64) ([]model.Registration, error) {
	query := `
		SELECT id, event_id, user_id, registration_type, is_confirmed, confirmed_address, created_at, updated_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.RegistrationType,
			&reg.IsConfirmed, &reg.ConfirmedAddress, &reg.CreatedAt, &reg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// ListConfirmedParticipants covers confirmed preregistration rows and all
// main-window rows, which are confirmed at creation time.
func (r *repository) ListConfirmedParticipants(ctx context.Context, eventID int64) ([]int64, error) {
	query := `
		SELECT user_id FROM registrations
		WHERE event_id = $1 AND is_confirmed = TRUE
		ORDER BY user_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed participants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GenerateAssignmentsTx produces the full assignment set atomically: the
// event row lock keeps a second generate call (and concurrent confirms) out,
// the guard read refuses regeneration, and the confirmed set is read inside
// the same transaction that inserts the rows.
func (r *repository) GenerateAssignmentsTx(ctx context.Context, eventID int64, build func(participants []int64) ([]assign.Pair, error)) ([]model.GiftAssignment, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var lockedID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&lockedID); err != nil {
		_ = tx.Rollback()
		return nil, ErrEventNotFound
	}

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gift_assignments WHERE event_id = $1`, eventID,
	).Scan(&existing); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to check existing assignments: %w", err)
	}
	if existing > 0 {
		_ = tx.Rollback()
		return nil, ErrAssignmentsExist
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT user_id FROM registrations
		WHERE event_id = $1 AND is_confirmed = TRUE
		ORDER BY user_id ASC
	`, eventID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to read confirmed participants: %w", err)
	}

	var participants []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to read confirmed participants: %w", err)
	}
	rows.Close()

	pairs, err := build(participants)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	assignments := make([]model.GiftAssignment, 0, len(pairs))
	for _, p := range pairs {
		a := model.GiftAssignment{
			EventID:    eventID,
			GiverID:    p.Giver,
			ReceiverID: p.Receiver,
		}
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO gift_assignments (event_id, giver_id, receiver_id, is_approved)
			VALUES ($1, $2, $3, FALSE)
			RETURNING id, created_at
		`, eventID, p.Giver, p.Receiver).Scan(&a.ID, &a.CreatedAt); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to insert assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return assignments, nil
}

func (r *repository) GetAssignmentByID(ctx context.Context, id int64) (*model.GiftAssignment, error) {
	query := `
		SELECT id, event_id, giver_id, receiver_id, is_approved, created_at
		FROM gift_assignments WHERE id = $1
	`
	var a model.GiftAssignment
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.EventID, &a.GiverID, &a.ReceiverID, &a.IsApproved, &a.CreatedAt,
	); err != nil {
		return nil, ErrAssignmentNotFound
	}
	return &a, nil
}

func (r *repository) GetAssignmentsByEventID(ctx context.Context, eventID int64) ([]model.GiftAssignment, error) {
	query := `
		SELECT id, event_id, giver_id, receiver_id, is_approved, created_at
		FROM gift_assignments
		WHERE event_id = $1
		ORDER BY id ASC
	`
	return r.queryAssignments(ctx, query, eventID)
}

func (r *repository) ListDraftAssignmentIDs(ctx context.Context, eventID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM gift_assignments
		WHERE event_id = $1 AND is_approved = FALSE
		ORDER BY id ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft assignments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan assignment id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ApproveAssignment is idempotent: approving an approved row is a no-op.
func (r *repository) ApproveAssignment(ctx context.Context, id int64) (*model.GiftAssignment, error) {
	query := `
		UPDATE gift_assignments
		SET is_approved = TRUE
		WHERE id = $1
		RETURNING id, event_id, giver_id, receiver_id, is_approved, created_at
	`
	var a model.GiftAssignment
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.EventID, &a.GiverID, &a.ReceiverID, &a.IsApproved, &a.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to approve assignment: %w", err)
	}
	return &a, nil
}

// UpdateAssignmentTx rewrites a single giver→receiver edge. Both sides must
// be confirmed participants of the assignment's event; the set-level
// derangement invariant is intentionally not re-checked (admin override).
func (r *repository) UpdateAssignmentTx(ctx context.Context, id, giverID, receiverID int64) (*model.GiftAssignment, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var eventID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT event_id FROM gift_assignments WHERE id = $1 FOR UPDATE`, id,
	).Scan(&eventID); err != nil {
		_ = tx.Rollback()
		return nil, ErrAssignmentNotFound
	}

	var confirmed int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM registrations
		WHERE event_id = $1 AND user_id IN ($2, $3) AND is_confirmed = TRUE
	`, eventID, giverID, receiverID).Scan(&confirmed); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to check participants: %w", err)
	}
	if confirmed != 2 {
		_ = tx.Rollback()
		return nil, ErrNotParticipant
	}

	var a model.GiftAssignment
	if err := tx.QueryRowContext(ctx, `
		UPDATE gift_assignments
		SET giver_id = $1, receiver_id = $2
		WHERE id = $3
		RETURNING id, event_id, giver_id, receiver_id, is_approved, created_at
	`, giverID, receiverID, id).Scan(
		&a.ID, &a.EventID, &a.GiverID, &a.ReceiverID, &a.IsApproved, &a.CreatedAt,
	); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &a, nil
}

func (r *repository) DeleteAssignment(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.QueryRowContext(ctx,
		`DELETE FROM gift_assignments WHERE id = $1 RETURNING id`, id,
	).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (r *repository) GetApprovedAssignmentsByGiver(ctx context.Context, userID int64) ([]model.GiftAssignment, error) {
	query := `
		SELECT id, event_id, giver_id, receiver_id, is_approved, created_at
		FROM gift_assignments
		WHERE giver_id = $1 AND is_approved = TRUE
		ORDER BY created_at DESC
	`
	return r.queryAssignments(ctx, query, userID)
}

func (r *repository) GetApprovedAssignmentsByReceiver(ctx context.Context, userID int64) ([]model.GiftAssignment, error) {
	query := `
		SELECT id, event_id, giver_id, receiver_id, is_approved, created_at
		FROM gift_assignments
		WHERE receiver_id = $1 AND is_approved = TRUE
		ORDER BY created_at DESC
	`
	return r.queryAssignments(ctx, query, userID)
}

func (r *repository) queryAssignments(ctx context.Context, query string, arg any) ([]model.GiftAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.GiftAssignment
	for rows.Next() {
		var a model.GiftAssignment
		if err := rows.Scan(
			&a.ID, &a.EventID, &a.GiverID, &a.ReceiverID, &a.IsApproved, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// int64Array renders ids as a postgres array literal for ANY($1).
func int64Array(ids []int64) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", id)
	}
	return out + "}"
}
