package domain

import (
	"context"

	"jobly/internal/core/sqlbuild"
)

type Company struct {
	Handle       string  `gorm:"column:handle;primaryKey" json:"handle"`
	Name         string  `gorm:"column:name" json:"name"`
	NumEmployees *int    `gorm:"column:num_employees" json:"num_employees"`
	Description  *string `gorm:"column:description" json:"description"`
	LogoURL      *string `gorm:"column:logo_url" json:"logo_url"`
}

type CompanySummary struct {
	Handle string `gorm:"column:handle" json:"handle"`
	Name   string `gorm:"column:name" json:"name"`
}

// CompanyDetail is a company with its jobs attached.
type CompanyDetail struct {
	Company
	Jobs []CompanyJob `json:"jobs"`
}

type CompanyFilter struct {
	Search       *string
	MinEmployees *int
	MaxEmployees *int
}

var CompanyUpdatable = []string{"name", "num_employees", "description", "logo_url"}

type CompanyRepository interface {
	List(ctx context.Context, f CompanyFilter) ([]CompanySummary, error)
	Create(ctx context.Context, c *Company) (*Company, error)
	Get(ctx context.Context, handle string) (*CompanyDetail, error)
	Update(ctx context.Context, handle string, fields []sqlbuild.Field) (*Company, error)
	Delete(ctx context.Context, handle string) error
}
