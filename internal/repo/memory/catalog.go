package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"jobly/internal/core/errs"
	"jobly/internal/core/sqlbuild"
	"jobly/internal/domain"
)

const msgNoCompany = "company_handle does not reference an existing company"

// Catalog stores companies and jobs together so the foreign key between
// them can be enforced.
type Catalog struct {
	mu        sync.RWMutex
	companies map[string]domain.Company
	jobs      map[int]domain.Job
	nextID    int
	now       func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{
		companies: map[string]domain.Company{},
		jobs:      map[int]domain.Job{},
		nextID:    1,
		now:       time.Now,
	}
}

// Companies and Jobs expose the two repository views of the catalog.
func (c *Catalog) Companies() *Companies { return &Companies{c: c} }
func (c *Catalog) Jobs() *Jobs           { return &Jobs{c: c} }

type Companies struct{ c *Catalog }

var _ domain.CompanyRepository = (*Companies)(nil)

func (r *Companies) List(_ context.Context, f domain.CompanyFilter) ([]domain.CompanySummary, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := []domain.CompanySummary{}
	for _, co := range r.c.companies {
		if f.Search != nil && !ilike(co.Name, *f.Search) {
			continue
		}
		// NULL 不满足任何比较条件
		if f.MinEmployees != nil && (co.NumEmployees == nil || *co.NumEmployees < *f.MinEmployees) {
			continue
		}
		if f.MaxEmployees != nil && (co.NumEmployees == nil || *co.NumEmployees > *f.MaxEmployees) {
			continue
		}
		out = append(out, domain.CompanySummary{Handle: co.Handle, Name: co.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Companies) Create(_ context.Context, in *domain.Company) (*domain.Company, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, dup := r.c.companies[in.Handle]; dup {
		return nil, errs.AlreadyExists(fmt.Sprintf("There's already a company with the handle '%s'", in.Handle))
	}
	row := *in
	r.c.companies[in.Handle] = row
	return &row, nil
}

func (r *Companies) Get(_ context.Context, handle string) (*domain.CompanyDetail, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	co, ok := r.c.companies[handle]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
	}
	out := &domain.CompanyDetail{Company: co, Jobs: []domain.CompanyJob{}}
	for _, j := range r.c.sortedJobs() {
		if j.CompanyHandle == handle {
			out.Jobs = append(out.Jobs, domain.CompanyJob{ID: j.ID, Title: j.Title, Salary: j.Salary, Equity: j.Equity, DatePosted: j.DatePosted})
		}
	}
	return out, nil
}

func (r *Companies) Update(_ context.Context, handle string, fields []sqlbuild.Field) (*domain.Company, error) {
	if err := allowedSet(fields, domain.CompanyUpdatable); err != nil {
		return nil, err
	}
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	co, ok := r.c.companies[handle]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
	}
	for _, f := range fields {
		switch f.Column {
		case "name":
			co.Name = asString(f.Value)
		case "num_employees":
			co.NumEmployees = asIntPtr(f.Value)
		case "description":
			co.Description = asStringPtr(f.Value)
		case "logo_url":
			co.LogoURL = asStringPtr(f.Value)
		}
	}
	r.c.companies[handle] = co
	return &co, nil
}

func (r *Companies) Delete(_ context.Context, handle string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.companies[handle]; !ok {
		return errs.NotFound(fmt.Sprintf("No company found with handle '%s'", handle))
	}
	for _, j := range r.c.jobs {
		if j.CompanyHandle == handle {
			return errs.InvalidArgument("company still has jobs")
		}
	}
	delete(r.c.companies, handle)
	return nil
}

type Jobs struct{ c *Catalog }

var _ domain.JobRepository = (*Jobs)(nil)

func (c *Catalog) sortedJobs() []domain.Job {
	out := make([]domain.Job, 0, len(c.jobs))
	for _, j := range c.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Jobs) List(_ context.Context, f domain.JobFilter) ([]domain.JobSummary, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	out := []domain.JobSummary{}
	for _, j := range r.c.sortedJobs() {
		if f.Search != nil && !ilike(j.Title, *f.Search) {
			continue
		}
		if f.MinSalary != nil && j.Salary < *f.MinSalary {
			continue
		}
		if f.MinEquity != nil && j.Equity < *f.MinEquity {
			continue
		}
		out = append(out, domain.JobSummary{ID: j.ID, Title: j.Title, CompanyHandle: j.CompanyHandle})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *Jobs) Create(_ context.Context, in domain.NewJob) (*domain.Job, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.companies[in.CompanyHandle]; !ok {
		return nil, errs.InvalidArgument(msgNoCompany)
	}
	j := domain.Job{
		ID:            r.c.nextID,
		Title:         in.Title,
		Salary:        in.Salary,
		Equity:        in.Equity,
		CompanyHandle: in.CompanyHandle,
		DatePosted:    r.c.now().UTC(),
	}
	r.c.nextID++
	r.c.jobs[j.ID] = j
	return &j, nil
}

func (r *Jobs) Get(_ context.Context, id int) (*domain.JobDetail, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	j, ok := r.c.jobs[id]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No job found with id %d", id))
	}
	out := &domain.JobDetail{Job: j}
	if co, ok := r.c.companies[j.CompanyHandle]; ok {
		out.Company = &co
	}
	return out, nil
}

func (r *Jobs) Update(_ context.Context, id int, fields []sqlbuild.Field) (*domain.Job, error) {
	if err := allowedSet(fields, domain.JobUpdatable); err != nil {
		return nil, err
	}
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	j, ok := r.c.jobs[id]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("No job found with id %d", id))
	}
	for _, f := range fields {
		switch f.Column {
		case "title":
			j.Title = asString(f.Value)
		case "salary":
			j.Salary = asInt(f.Value)
		case "equity":
			j.Equity = asFloat(f.Value)
		case "company_handle":
			h := asString(f.Value)
			if _, ok := r.c.companies[h]; !ok {
				return nil, errs.InvalidArgument(msgNoCompany)
			}
			j.CompanyHandle = h
		}
	}
	r.c.jobs[id] = j
	return &j, nil
}

func (r *Jobs) Delete(_ context.Context, id int) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	if _, ok := r.c.jobs[id]; !ok {
		return errs.NotFound(fmt.Sprintf("No job found with id %d", id))
	}
	delete(r.c.jobs, id)
	return nil
}
