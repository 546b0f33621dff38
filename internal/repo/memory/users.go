package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

type Users struct {
	mu   sync.RWMutex
	rows map[string]domain.User
}

func NewUsers() *Users { return &Users{rows: map[string]domain.User{}} }

var _ domain.UserRepository = (*Users)(nil)

func (r *Users) List(_ context.Context) ([]domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.UserSummary, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, domain.UserSummary{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *Users) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.rows[u.Username]; dup {
		return nil, errs.AlreadyExists(fmt.Sprintf("The username '%s' already exists", u.Username))
	}
	row := *u
	r.rows[u.Username] = row
	return &row, nil
}

func (r *Users) Get(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.rows[username]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	return &u, nil
}

func (r *Users) Update(_ context.Context, username string, fields []sqlbuild.Field, allowed ...string) (*domain.User, error) {
	if len(allowed) == 0 {
		allowed = domain.UserUpdatable
	}
	if err := allowedSet(fields, allowed); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[username]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	for _, f := range fields {
		switch f.Column {
		case "password":
			u.Password = asString(f.Value)
		case "first_name":
			u.FirstName = asString(f.Value)
		case "last_name":
			u.LastName = asString(f.Value)
		case "email":
			u.Email = asString(f.Value)
		case "photo_url":
			u.PhotoURL = asStringPtr(f.Value)
		case "is_admin":
			b, _ := f.Value.(bool)
			u.IsAdmin = b
		}
	}
	r.rows[username] = u
	return &u, nil
}

func (r *Users) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[username]; !ok {
		return errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	delete(r.rows, username)
	return nil
}
