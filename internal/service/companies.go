package service

import (
	"context"

	"jobly/internal/core/errs"
	"jobly/internal/domain"
)

type Companies struct {
	repo domain.CompanyRepository
}

func NewCompanies(repo domain.CompanyRepository) *Companies { return &Companies{repo: repo} }

var companyCoerce = map[string]coerce{
	"name":          toString,
	"num_employees": toInt,
	"description":   toString,
	"logo_url":      toString,
}

// List rejects min >= max before touching the store. An empty result is
// reported as NotFound.
func (s *Companies) List(ctx context.Context, f domain.CompanyFilter) ([]domain.CompanySummary, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees >= *f.MaxEmployees {
		return nil, errs.InvalidArgument("Min employees must be less than max employees")
	}
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errs.NotFound("No companies found")
	}
	return out, nil
}

func (s *Companies) Create(ctx context.Context, in domain.Company) (*domain.Company, error) {
	return s.repo.Create(ctx, &in)
}

func (s *Companies) Get(ctx context.Context, handle string) (*domain.CompanyDetail, error) {
	return s.repo.Get(ctx, handle)
}

func (s *Companies) Update(ctx context.Context, handle string, p domain.Patch) (*domain.Company, error) {
	fields, err := p.Fields(domain.CompanyUpdatable)
	if err != nil {
		return nil, err
	}
	if fields, err = normalize(fields, companyCoerce); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, handle, fields)
}

func (s *Companies) Remove(ctx context.Context, handle string) error {
	return s.repo.Delete(ctx, handle)
}
