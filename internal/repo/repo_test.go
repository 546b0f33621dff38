package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobly/internal/core/database"
	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := database.FromSQL(sqlDB)
	require.NoError(t, err)
	return gdb, mock
}

var userCols = []string{"username", "password", "first_name", "last_name", "email", "photo_url", "is_admin"}

func TestUserRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT username FROM users WHERE username = \$1$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username"}))
	mock.ExpectQuery(`(?s)^INSERT INTO users \(username, password, first_name, last_name, email, photo_url, is_admin\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)\s+RETURNING username, .*is_admin$`).
		WithArgs("alice", "hash", "Alice", "A", "alice@example.com", nil, false).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("alice", "hash", "Alice", "A", "alice@example.com", nil, false))
	mock.ExpectCommit()

	u, err := r.Create(context.Background(), &domain.User{
		Username: "alice", Password: "hash", FirstName: "Alice", LastName: "A", Email: "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.Password)
	assert.Nil(t, u.PhotoURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT username FROM users WHERE username = \$1$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))
	mock.ExpectRollback()

	_, err := r.Create(context.Background(), &domain.User{Username: "alice"})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindAlreadyExists))
	assert.Equal(t, "The username 'alice' already exists", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_UniqueViolationBackstop(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT username FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"username"}))
	mock.ExpectQuery(`^INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := r.Create(context.Background(), &domain.User{Username: "alice"})
	assert.True(t, errs.Is(err, errs.KindAlreadyExists))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`^SELECT username, first_name, last_name, email FROM users ORDER BY username$`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "first_name", "last_name", "email"}).
			AddRow("alice", "Alice", "A", "a@x.io").
			AddRow("bob", "Bob", "B", "b@x.io"))

	out, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "bob", out[1].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`^SELECT username, password, .* FROM users WHERE username = \$1$`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := r.Get(context.Background(), "ghost")
	assert.True(t, errs.Is(err, errs.KindNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Get_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`^SELECT .* FROM users WHERE username = \$1$`).
		WillReturnError(errors.New("db down"))

	_, err := r.Get(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindInternal))
	assert.Contains(t, err.Error(), "user get: db down")
}

func TestUserRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`^UPDATE users SET first_name=\$1, email=\$2 WHERE username=\$3 RETURNING \*$`).
		WithArgs("Al", "al@x.io", "alice").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("alice", "hash", "Al", "A", "al@x.io", nil, true))

	u, err := r.Update(context.Background(), "alice", []sqlbuild.Field{
		{Column: "first_name", Value: "Al"},
		{Column: "email", Value: "al@x.io"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Al", u.FirstName)
	assert.True(t, u.IsAdmin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Update_NotFoundAndDisallowed(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery(`^UPDATE users SET last_name=\$1 WHERE username=\$2 RETURNING \*$`).
		WithArgs("Z", "ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := r.Update(context.Background(), "ghost", []sqlbuild.Field{{Column: "last_name", Value: "Z"}})
	assert.True(t, errs.Is(err, errs.KindNotFound))

	// is_admin needs an explicit allow-list
	_, err = r.Update(context.Background(), "alice", []sqlbuild.Field{{Column: "is_admin", Value: true}})
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectExec(`^DELETE FROM users WHERE username = \$1$`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE FROM users WHERE username = \$1$`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.Delete(context.Background(), "alice"))
	assert.True(t, errs.Is(r.Delete(context.Background(), "alice"), errs.KindNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_List_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	search, lo, hi := "tes", 10, 500
	mock.ExpectQuery(`^SELECT handle, name FROM companies WHERE name ILIKE \$1 AND num_employees >= \$2 AND num_employees <= \$3 ORDER BY name$`).
		WithArgs("%tes%", 10, 500).
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name"}).AddRow("tesla", "Tesla"))

	out, err := r.List(context.Background(), domain.CompanyFilter{Search: &search, MinEmployees: &lo, MaxEmployees: &hi})
	require.NoError(t, err)
	assert.Equal(t, []domain.CompanySummary{{Handle: "tesla", Name: "Tesla"}}, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_List_NoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	mock.ExpectQuery(`^SELECT handle, name FROM companies ORDER BY name$`).
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name"}))

	out, err := r.List(context.Background(), domain.CompanyFilter{})
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Create_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT handle FROM companies WHERE handle = \$1$`).
		WithArgs("tesla").
		WillReturnRows(sqlmock.NewRows([]string{"handle"}).AddRow("tesla"))
	mock.ExpectRollback()

	_, err := r.Create(context.Background(), &domain.Company{Handle: "tesla", Name: "Tesla"})
	assert.True(t, errs.Is(err, errs.KindAlreadyExists))
	assert.Equal(t, "There's already a company with the handle 'tesla'", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Get_WithJobs(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)
	posted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT handle, name, num_employees, description, logo_url FROM companies WHERE handle = \$1$`).
		WithArgs("tesla").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "num_employees", "description", "logo_url"}).
			AddRow("tesla", "Tesla", 1000, "cars", nil))
	mock.ExpectQuery(`(?s)^SELECT id, title, salary, equity, date_posted FROM jobs\s+WHERE company_handle = \$1 ORDER BY id$`).
		WithArgs("tesla").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "salary", "equity", "date_posted"}).
			AddRow(1, "Engineer", 120000, 0.01, posted))
	mock.ExpectCommit()

	c, err := r.Get(context.Background(), "tesla")
	require.NoError(t, err)
	assert.Equal(t, "Tesla", c.Name)
	require.NotNil(t, c.NumEmployees)
	assert.Equal(t, 1000, *c.NumEmployees)
	require.Len(t, c.Jobs, 1)
	assert.Equal(t, "Engineer", c.Jobs[0].Title)
	assert.True(t, posted.Equal(c.Jobs[0].DatePosted))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT .* FROM companies WHERE handle = \$1$`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "num_employees", "description", "logo_url"}))
	mock.ExpectRollback()

	_, err := r.Get(context.Background(), "nope")
	assert.True(t, errs.Is(err, errs.KindNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Delete_StillReferenced(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	mock.ExpectExec(`^DELETE FROM companies WHERE handle = \$1$`).
		WithArgs("tesla").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := r.Delete(context.Background(), "tesla")
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))
	assert.Equal(t, "company still has jobs", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewCompanyRepo(db)

	mock.ExpectQuery(`^UPDATE companies SET name=\$1 WHERE handle=\$2 RETURNING \*$`).
		WithArgs("Tesla Inc", "tesla").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "num_employees", "description", "logo_url"}).
			AddRow("tesla", "Tesla Inc", nil, nil, nil))

	c, err := r.Update(context.Background(), "tesla", []sqlbuild.Field{{Column: "name", Value: "Tesla Inc"}})
	require.NoError(t, err)
	assert.Equal(t, "Tesla Inc", c.Name)

	_, err = r.Update(context.Background(), "tesla", []sqlbuild.Field{{Column: "handle", Value: "x"}})
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))
	require.NoError(t, mock.ExpectationsWereMet())
}

var jobCols = []string{"id", "title", "salary", "equity", "company_handle", "date_posted"}

func TestJobRepo_List_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)

	minSalary, minEquity := 50000, 0.1
	mock.ExpectQuery(`^SELECT id, title, company_handle FROM jobs WHERE salary >= \$1 AND equity >= \$2 ORDER BY title$`).
		WithArgs(50000, 0.1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "company_handle"}).AddRow(3, "Dev", "tesla"))

	out, err := r.List(context.Background(), domain.JobFilter{MinSalary: &minSalary, MinEquity: &minEquity})
	require.NoError(t, err)
	assert.Equal(t, []domain.JobSummary{{ID: 3, Title: "Dev", CompanyHandle: "tesla"}}, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT INTO jobs \(title, salary, equity, company_handle\)\s+VALUES \(\$1, \$2, \$3, \$4\)\s+RETURNING id, title, salary, equity, company_handle, date_posted$`).
		WithArgs("Dev", 90000, 0.2, "tesla").
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(7, "Dev", 90000, 0.2, "tesla", now))

	j, err := r.Create(context.Background(), domain.NewJob{Title: "Dev", Salary: 90000, Equity: 0.2, CompanyHandle: "tesla"})
	require.NoError(t, err)
	assert.Equal(t, 7, j.ID)
	assert.Equal(t, "tesla", j.CompanyHandle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Create_UnknownCompany(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)

	mock.ExpectQuery(`^INSERT INTO jobs`).WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := r.Create(context.Background(), domain.NewJob{Title: "Dev", CompanyHandle: "ghost"})
	assert.True(t, errs.Is(err, errs.KindInvalidArgument))
	assert.Equal(t, msgNoCompany, err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Get_WithCompany(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`^SELECT id, title, salary, equity, company_handle, date_posted FROM jobs WHERE id = \$1$`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(7, "Dev", 90000, 0.2, "tesla", now))
	mock.ExpectQuery(`^SELECT handle, name, num_employees, description, logo_url FROM companies WHERE handle = \$1$`).
		WithArgs("tesla").
		WillReturnRows(sqlmock.NewRows([]string{"handle", "name", "num_employees", "description", "logo_url"}).
			AddRow("tesla", "Tesla", 1000, nil, nil))
	mock.ExpectCommit()

	j, err := r.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Dev", j.Title)
	require.NotNil(t, j.Company)
	assert.Equal(t, "Tesla", j.Company.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_UpdateAndDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewJobRepo(db)

	mock.ExpectQuery(`^UPDATE jobs SET title=\$1, salary=\$2 WHERE id=\$3 RETURNING \*$`).
		WithArgs("Lead", 1, 99).
		WillReturnRows(sqlmock.NewRows(jobCols))
	mock.ExpectExec(`^DELETE FROM jobs WHERE id = \$1$`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := r.Update(context.Background(), 99, []sqlbuild.Field{{Column: "title", Value: "Lead"}, {Column: "salary", Value: 1}})
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.True(t, errs.Is(r.Delete(context.Background(), 99), errs.KindNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
