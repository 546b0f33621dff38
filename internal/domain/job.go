package domain

import (
	"context"
	"time"

	"jobly/internal/core/sqlbuild"
)

type Job struct {
	ID            int       `gorm:"column:id;primaryKey" json:"id"`
	Title         string    `gorm:"column:title" json:"title"`
	Salary        int       `gorm:"column:salary" json:"salary"`
	Equity        float64   `gorm:"column:equity" json:"equity"`
	CompanyHandle string    `gorm:"column:company_handle" json:"company_handle"`
	DatePosted    time.Time `gorm:"column:date_posted" json:"date_posted"`
}

type JobSummary struct {
	ID            int    `gorm:"column:id" json:"id"`
	Title         string `gorm:"column:title" json:"title"`
	CompanyHandle string `gorm:"column:company_handle" json:"company_handle"`
}

// CompanyJob 公司详情中嵌套的职位
type CompanyJob struct {
	ID         int       `gorm:"column:id" json:"id"`
	Title      string    `gorm:"column:title" json:"title"`
	Salary     int       `gorm:"column:salary" json:"salary"`
	Equity     float64   `gorm:"column:equity" json:"equity"`
	DatePosted time.Time `gorm:"column:date_posted" json:"date_posted"`
}

// JobDetail is a job with its company attached.
type JobDetail struct {
	Job
	Company *Company `json:"company"`
}

type NewJob struct {
	Title         string  `json:"title"`
	Salary        int     `json:"salary"`
	Equity        float64 `json:"equity"`
	CompanyHandle string  `json:"company_handle"`
}

type JobFilter struct {
	Search    *string
	MinSalary *int
	MinEquity *float64
}

var JobUpdatable = []string{"title", "salary", "equity", "company_handle"}

type JobRepository interface {
	List(ctx context.Context, f JobFilter) ([]JobSummary, error)
	Create(ctx context.Context, j NewJob) (*Job, error)
	Get(ctx context.Context, id int) (*JobDetail, error)
	Update(ctx context.Context, id int, fields []sqlbuild.Field) (*Job, error)
	Delete(ctx context.Context, id int) error
}
