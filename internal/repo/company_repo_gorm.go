package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

const companyColumns = "handle, name, num_employees, description, logo_url"

type CompanyRepo struct{ db *gorm.DB }

func NewCompanyRepo(db *gorm.DB) *CompanyRepo { return &CompanyRepo{db: db} }

var _ domain.CompanyRepository = (*CompanyRepo)(nil)

func (r *CompanyRepo) List(ctx context.Context, f domain.CompanyFilter) ([]domain.CompanySummary, error) {
	var c sqlbuild.Conditions
	if f.Search != nil {
		c.Add("name ILIKE %s", "%"+*f.Search+"%")
	}
	if f.MinEmployees != nil {
		c.Add("num_employees >= %s", *f.MinEmployees)
	}
	if f.MaxEmployees != nil {
		c.Add("num_employees <= %s", *f.MaxEmployees)
	}

	var out []domain.CompanySummary
	q := `SELECT handle, name FROM companies` + c.Where() + ` ORDER BY name`
	if err := r.db.WithContext(ctx).Raw(q, c.Args()...).Scan(&out).Error; err != nil {
		return nil, storeErr("company list", err)
	}
	return out, nil
}

func (r *CompanyRepo) Create(ctx context.Context, in *domain.Company) (*domain.Company, error) {
	var out domain.Company
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dup string
		res := tx.Raw(`SELECT handle FROM companies WHERE handle = $1`, in.Handle).Scan(&dup)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return errs.AlreadyExists(fmt.Sprintf("There's already a company with the handle '%s'", in.Handle))
		}
		return tx.Raw(`INSERT INTO companies (`+companyColumns+`)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+companyColumns,
			in.Handle, in.Name, in.NumEmployees, in.Description, in.LogoURL,
		).Scan(&out).Error
	})
	if err != nil {
		return nil, storeErr("company create", err)
	}
	return &out, nil
}

// Get 公司 + 旗下职位，两次读取放在同一事务里
func (r *CompanyRepo) Get(ctx context.Context, handle string) (*domain.CompanyDetail, error) {
	var out domain.CompanyDetail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Raw(`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle).Scan(&out.Company)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
		}
		return tx.Raw(`SELECT id, title, salary, equity, date_posted FROM jobs
			WHERE company_handle = $1 ORDER BY id`, handle).Scan(&out.Jobs).Error
	})
	if err != nil {
		return nil, storeErr("company get", err)
	}
	if out.Jobs == nil {
		out.Jobs = []domain.CompanyJob{}
	}
	return &out, nil
}

func (r *CompanyRepo) Update(ctx context.Context, handle string, fields []sqlbuild.Field) (*domain.Company, error) {
	st, err := sqlbuild.PartialUpdate("companies", fields, "handle", handle, domain.CompanyUpdatable...)
	if err != nil {
		return nil, err
	}
	var out domain.Company
	res := r.db.WithContext(ctx).Raw(st.SQL, st.Args...).Scan(&out)
	if res.Error != nil {
		return nil, storeErr("company update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
	}
	return &out, nil
}

func (r *CompanyRepo) Delete(ctx context.Context, handle string) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM companies WHERE handle = $1`, handle)
	if res.Error != nil {
		return storeErr("company delete", res.Error, "company still has jobs")
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
	}
	return nil
}
