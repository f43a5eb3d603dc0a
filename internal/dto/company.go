package dto

import (
	"time"

	"github.com/NichtEuler/arbeitszeitapp/internal/core/domain"
)

// RegisterCompanyRequest defines the data needed to register a company.
type RegisterCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID            string `json:"companyID"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	MeansAccountID       string `json:"meansAccountID"`
	RawMaterialAccountID string `json:"rawMaterialAccountID"`
	WorkAccountID        string `json:"workAccountID"`
	ProductAccountID     string `json:"productAccountID"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:            c.CompanyID,
		Name:                 c.Name,
		Email:                c.Email,
		MeansAccountID:       c.MeansAccountID,
		RawMaterialAccountID: c.RawMaterialAccountID,
		WorkAccountID:        c.WorkAccountID,
		ProductAccountID:     c.ProductAccountID,
	}
}

// AddWorkerRequest defines the data needed to employ a member at a company.
type AddWorkerRequest struct {
	MemberID string `json:"memberID" binding:"required"`
}

// DashboardPlan is one of the latest activated plans shown on the dashboard.
type DashboardPlan struct {
	PlanID         string    `json:"planID"`
	ProductName    string    `json:"productName"`
	ActivationDate time.Time `json:"activationDate"`
}

// CompanyDashboardResponse is the company landing page summary.
type CompanyDashboardResponse struct {
	Company          CompanyResponse `json:"company"`
	HasWorkers       bool            `json:"hasWorkers"`
	ThreeLatestPlans []DashboardPlan `json:"threeLatestPlans"`
}
