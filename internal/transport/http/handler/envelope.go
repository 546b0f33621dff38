package handler

import "jobly/internal/domain"

// 响应信封：与资源同名的顶层 key
type (
	usersOut struct {
		Users []domain.UserSummary `json:"users"`
	}
	userOut struct {
		User *domain.PublicUser `json:"user"`
	}
	companiesOut struct {
		Companies []domain.CompanySummary `json:"companies"`
	}
	companyOut struct {
		Company *domain.Company `json:"company"`
	}
	companyDetailOut struct {
		Company *domain.CompanyDetail `json:"company"`
	}
	jobsOut struct {
		Jobs []domain.JobSummary `json:"jobs"`
	}
	jobOut struct {
		Job *domain.Job `json:"job"`
	}
	jobDetailOut struct {
		Job *domain.JobDetail `json:"job"`
	}
)
