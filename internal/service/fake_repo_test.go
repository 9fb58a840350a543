package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"santahub/internal/assign"
	"santahub/internal/model"
	"santahub/internal/repo"
)

// fakeRepo is an in-memory stand-in for the postgres repository. Every
// method takes the single mutex, so the transactional methods are atomic
// the same way their SQL counterparts are under the event row lock.
type fakeRepo struct {
	mu            sync.Mutex
	users         map[int64]*model.User
	events        map[int64]*model.Event
	registrations map[int64]*model.Registration
	assignments   map[int64]*model.GiftAssignment
	nextID        int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:         make(map[int64]*model.User),
		events:        make(map[int64]*model.Event),
		registrations: make(map[int64]*model.Registration),
		assignments:   make(map[int64]*model.GiftAssignment),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) seedUser(name, email string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.users[id] = &model.User{ID: id, Name: name, Email: email, CreatedAt: time.Now()}
	return id
}

func (f *fakeRepo) seedEvent(name string, preregStart, regStart, regEnd time.Time) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.events[id] = &model.Event{
		ID:                   id,
		Name:                 name,
		PreregistrationStart: preregStart,
		RegistrationStart:    regStart,
		RegistrationEnd:      regEnd,
		IsActive:             true,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	return id
}

func (f *fakeRepo) seedRegistration(eventID, userID int64, regType string, confirmed bool, address string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.registrations[id] = &model.Registration{
		ID:               id,
		EventID:          eventID,
		UserID:           userID,
		RegistrationType: regType,
		IsConfirmed:      confirmed,
		ConfirmedAddress: address,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	return id
}

func (f *fakeRepo) findRegistration(eventID, userID int64) *model.Registration {
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID {
			return r
		}
	}
	return nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u *model.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.id()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return u.ID, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetUsersByIDs(_ context.Context, ids []int64) (map[int64]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int64]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateEvent(_ context.Context, e *model.Event) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.id()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.events[e.ID] = &cp
	return e.ID, nil
}

func (f *fakeRepo) UpdateEvent(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return repo.ErrEventNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return repo.ErrEventNotFound
	}
	delete(f.events, id)
	for rid, r := range f.registrations {
		if r.EventID == id {
			delete(f.registrations, rid)
		}
	}
	for aid, a := range f.assignments {
		if a.EventID == id {
			delete(f.assignments, aid)
		}
	}
	return nil
}

func (f *fakeRepo) GetEventByID(_ context.Context, id int64) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) GetAllEvents(_ context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []model.Event
	for _, e := range f.events {
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (f *fakeRepo) RegisterTx(_ context.Context, reg *model.Registration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[reg.EventID]; !ok {
		return 0, repo.ErrEventNotFound
	}
	if f.findRegistration(reg.EventID, reg.UserID) != nil {
		return 0, repo.ErrDuplicateRegistration
	}
	reg.ID = f.id()
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = reg.CreatedAt
	cp := *reg
	f.registrations[reg.ID] = &cp
	return reg.ID, nil
}

func (f *fakeRepo) ConfirmTx(_ context.Context, eventID, userID int64, address string) (*model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[eventID]; !ok {
		return nil, repo.ErrEventNotFound
	}
	r := f.findRegistration(eventID, userID)
	if r == nil {
		return nil, repo.ErrRegistrationNotFound
	}
	if r.IsConfirmed {
		return nil, repo.ErrAlreadyConfirmed
	}
	r.IsConfirmed = true
	r.ConfirmedAddress = address
	r.UpdatedAt = time.Now()
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetRegistration(_ context.Context, eventID, userID int64) (*model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.findRegistration(eventID, userID)
	if r == nil {
		return nil, repo.ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetRegistrationsByEventID(_ context.Context, eventID int64) ([]model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var regs []model.Registration
	for _, r := range f.registrations {
		if r.EventID == eventID {
			regs = append(regs, *r)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (f *fakeRepo) ListConfirmedParticipants(_ context.Context, eventID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmedLocked(eventID), nil
}

func (f *fakeRepo) confirmedLocked(eventID int64) []int64 {
	var ids []int64
	for _, r := range f.registrations {
		if r.EventID == eventID && r.IsConfirmed {
			ids = append(ids, r.UserID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeRepo) GenerateAssignmentsTx(_ context.Context, eventID int64, build func([]int64) ([]assign.Pair, error)) ([]model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[eventID]; !ok {
		return nil, repo.ErrEventNotFound
	}
	for _, a := range f.assignments {
		if a.EventID == eventID {
			return nil, repo.ErrAssignmentsExist
		}
	}

	pairs, err := build(f.confirmedLocked(eventID))
	if err != nil {
		return nil, err
	}

	out := make([]model.GiftAssignment, 0, len(pairs))
	for _, p := range pairs {
		a := model.GiftAssignment{
			ID:         f.id(),
			EventID:    eventID,
			GiverID:    p.Giver,
			ReceiverID: p.Receiver,
			CreatedAt:  time.Now(),
		}
		cp := a
		f.assignments[a.ID] = &cp
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) GetAssignmentByID(_ context.Context, id int64) (*model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok {
		return nil, repo.ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetAssignmentsByEventID(_ context.Context, eventID int64) ([]model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GiftAssignment
	for _, a := range f.assignments {
		if a.EventID == eventID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) ListDraftAssignmentIDs(_ context.Context, eventID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for _, a := range f.assignments {
		if a.EventID == eventID && !a.IsApproved {
			ids = append(ids, a.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeRepo) ApproveAssignment(_ context.Context, id int64) (*model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok {
		return nil, repo.ErrAssignmentNotFound
	}
	a.IsApproved = true
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdateAssignmentTx(_ context.Context, id, giverID, receiverID int64) (*model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	if !ok {
		return nil, repo.ErrAssignmentNotFound
	}
	for _, uid := range []int64{giverID, receiverID} {
		r := f.findRegistration(a.EventID, uid)
		if r == nil || !r.IsConfirmed {
			return nil, repo.ErrNotParticipant
		}
	}
	a.GiverID = giverID
	a.ReceiverID = receiverID
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) DeleteAssignment(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.assignments[id]; !ok {
		return repo.ErrAssignmentNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeRepo) GetApprovedAssignmentsByGiver(_ context.Context, userID int64) ([]model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GiftAssignment
	for _, a := range f.assignments {
		if a.GiverID == userID && a.IsApproved {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetApprovedAssignmentsByReceiver(_ context.Context, userID int64) ([]model.GiftAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.GiftAssignment
	for _, a := range f.assignments {
		if a.ReceiverID == userID && a.IsApproved {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) MigrateUp(string) error   { return nil }
func (f *fakeRepo) MigrateDown(string) error { return nil }
