package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

const (
	jobColumns   = "id, title, salary, equity, company_handle, date_posted"
	msgNoCompany = "company_handle does not reference an existing company"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

var _ domain.JobRepository = (*JobRepo)(nil)

func (r *JobRepo) List(ctx context.Context, f domain.JobFilter) ([]domain.JobSummary, error) {
	var c sqlbuild.Conditions
	if f.Search != nil {
		c.Add("title ILIKE %s", "%"+*f.Search+"%")
	}
	if f.MinSalary != nil {
		c.Add("salary >= %s", *f.MinSalary)
	}
	if f.MinEquity != nil {
		c.Add("equity >= %s", *f.MinEquity)
	}

	var out []domain.JobSummary
	q := `SELECT id, title, company_handle FROM jobs` + c.Where() + ` ORDER BY title`
	if err := r.db.WithContext(ctx).Raw(q, c.Args()...).Scan(&out).Error; err != nil {
		return nil, storeErr("job list", err)
	}
	return out, nil
}

func (r *JobRepo) Create(ctx context.Context, in domain.NewJob) (*domain.Job, error) {
	var out domain.Job
	err := r.db.WithContext(ctx).Raw(`INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		in.Title, in.Salary, in.Equity, in.CompanyHandle,
	).Scan(&out).Error
	if err != nil {
		return nil, storeErr("job create", err, msgNoCompany)
	}
	return &out, nil
}

func (r *JobRepo) Get(ctx context.Context, id int) (*domain.JobDetail, error) {
	var out domain.JobDetail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Raw(`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).Scan(&out.Job)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound(fmt.Sprintf("No job found with id %d", id))
		}
		var c domain.Company
		res = tx.Raw(`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, out.CompanyHandle).Scan(&c)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			out.Company = &c
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("job get", err)
	}
	return &out, nil
}

func (r *JobRepo) Update(ctx context.Context, id int, fields []sqlbuild.Field) (*domain.Job, error) {
	st, err := sqlbuild.PartialUpdate("jobs", fields, "id", id, domain.JobUpdatable...)
	if err != nil {
		return nil, err
	}
	var out domain.Job
	res := r.db.WithContext(ctx).Raw(st.SQL, st.Args...).Scan(&out)
	if res.Error != nil {
		return nil, storeErr("job update", res.Error, msgNoCompany)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound(fmt.Sprintf("No job found with id %d", id))
	}
	return &out, nil
}

func (r *JobRepo) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM jobs WHERE id = $1`, id)
	if res.Error != nil {
		return storeErr("job delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(fmt.Sprintf("No job found with id %d", id))
	}
	return nil
}
