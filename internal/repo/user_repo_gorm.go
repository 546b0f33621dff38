package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

const userColumns = "username, password, first_name, last_name, email, photo_url, is_admin"

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) List(ctx context.Context) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
	err := r.db.WithContext(ctx).
		Raw(`SELECT username, first_name, last_name, email FROM users ORDER BY username`).
		Scan(&out).Error
	if err != nil {
		return nil, storeErr("user list", err)
	}
	return out, nil
}

// Create 先查重再插入，同一事务内完成
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	var out domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup string
		res := tx.Raw(`SELECT username FROM users WHERE username = $1`, u.Username).Scan(&dup)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return errs.AlreadyExists(fmt.Sprintf("The username '%s' already exists", u.Username))
		}
		return tx.Raw(`INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+userColumns,
			u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.PhotoURL, u.IsAdmin,
		).Scan(&out).Error
	})
	if err != nil {
		return nil, storeErr("user create", err)
	}
	return &out, nil
}

func (r *UserRepo) Get(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	res := r.db.WithContext(ctx).
		Raw(`SELECT `+userColumns+` FROM users WHERE username = $1`, username).
		Scan(&u)
	if res.Error != nil {
		return nil, storeErr("user get", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	return &u, nil
}

// Update applies fields through the partial update compiler. allowed
// defaults to domain.UserUpdatable.
func (r *UserRepo) Update(ctx context.Context, username string, fields []sqlbuild.Field, allowed ...string) (*domain.User, error) {
	if len(allowed) == 0 {
		allowed = domain.UserUpdatable
	}
	st, err := sqlbuild.PartialUpdate("users", fields, "username", username, allowed...)
	if err != nil {
		return nil, err
	}
	var u domain.User
	res := r.db.WithContext(ctx).Raw(st.SQL, st.Args...).Scan(&u)
	if res.Error != nil {
		return nil, storeErr("user update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE username = $1`, username)
	if res.Error != nil {
		return storeErr("user delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(fmt.Sprintf("No user found with username '%s'", username))
	}
	return nil
}
