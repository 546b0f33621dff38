package service

import (
	"context"

	"jobly/internal/core/errs"
	"jobly/internal/domain"
)

type Jobs struct {
	repo domain.JobRepository
}

func NewJobs(repo domain.JobRepository) *Jobs { return &Jobs{repo: repo} }

var jobCoerce = map[string]coerce{
	"title":          toString,
	"salary":         toInt,
	"equity":         toFloat,
	"company_handle": toString,
}

func (s *Jobs) List(ctx context.Context, f domain.JobFilter) ([]domain.JobSummary, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errs.NotFound("No jobs found")
	}
	return out, nil
}

func (s *Jobs) Create(ctx context.Context, in domain.NewJob) (*domain.Job, error) {
	return s.repo.Create(ctx, in)
}

func (s *Jobs) Get(ctx context.Context, id int) (*domain.JobDetail, error) {
	return s.repo.Get(ctx, id)
}

func (s *Jobs) Update(ctx context.Context, id int, p domain.Patch) (*domain.Job, error) {
	fields, err := p.Fields(domain.JobUpdatable)
	if err != nil {
		return nil, err
	}
	if fields, err = normalize(fields, jobCoerce); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *Jobs) Remove(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
