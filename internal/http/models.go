package http

import (
	"time"

	"github.com/mfreund/ipam-console/internal/domain"
)

// SubnetResponse is the view of a subnet returned to clients and used
// in Swagger.
type SubnetResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Prod"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/16"`
	Description string    `json:"description" example:"Production networks"`
	ParentID    *int64    `json:"parent_id,omitempty" example:"0"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreateSubnetRequest is the payload accepted when creating a subnet.
type CreateSubnetRequest struct {
	Name        string `json:"name" example:"Prod" validate:"required"`
	CIDR        string `json:"cidr" example:"10.0.0.0/16" validate:"required"`
	Description string `json:"description" example:"Production networks"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

// UpdateSubnetRequest carries a partial subnet update. The CIDR cannot
// be changed after creation and is therefore not part of the payload.
type UpdateSubnetRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IPResponse is the view of an IP record returned to clients.
type IPResponse struct {
	ID           string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	IPAddress    string    `json:"ip_address" example:"10.0.0.5"`
	DNSName      string    `json:"dns_name" example:"web-1.example.net"`
	Architecture string    `json:"architecture" example:"VM"`
	Function     string    `json:"function" example:"webserver"`
	SubnetID     int64     `json:"subnet_id" example:"4"`
	SubnetName   string    `json:"subnet_name" example:"Prod"`
	SubnetCIDR   string    `json:"subnet_cidr" example:"10.0.0.0/16"`
	CreatedAt    time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt    time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreateIPRequest is the payload accepted when creating an IP record.
type CreateIPRequest struct {
	IPAddress    string `json:"ip_address" example:"10.0.0.5" validate:"required"`
	DNSName      string `json:"dns_name" example:"web-1.example.net"`
	Architecture string `json:"architecture" example:"VM"`
	Function     string `json:"function" example:"webserver"`
	SubnetID     int64  `json:"subnet_id" example:"4" validate:"required"`
}

// UpdateIPRequest carries a partial IP update. The address itself is
// immutable.
type UpdateIPRequest struct {
	DNSName      *string `json:"dns_name,omitempty"`
	Architecture *string `json:"architecture,omitempty"`
	Function     *string `json:"function,omitempty"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"subnet not found"`
}

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MeResponse struct {
	Username string `json:"username" example:"admin"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ImportErrorResponse struct {
	Row     int    `json:"row" example:"7"`
	Message string `json:"message" example:"invalid ip: 10.0.0"`
}

// ImportResponse reports a bulk import outcome. A response with row
// errors is still a 200: partial success is the expected shape of an
// import, not a failure.
type ImportResponse struct {
	SuccessCount int                   `json:"success_count" example:"3"`
	Errors       []ImportErrorResponse `json:"errors"`
}

func subnetToResponse(s domain.Subnet) SubnetResponse {
	return SubnetResponse{
		ID:          s.ID,
		Name:        s.Name,
		CIDR:        s.CIDR,
		Description: s.Description,
		ParentID:    s.ParentID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func subnetsToResponse(subnets []domain.Subnet) []SubnetResponse {
	out := make([]SubnetResponse, 0, len(subnets))
	for _, s := range subnets {
		out = append(out, subnetToResponse(s))
	}
	return out
}

func ipToResponse(rec domain.IPRecord) IPResponse {
	return IPResponse{
		ID:           string(rec.ID),
		IPAddress:    rec.IPAddress,
		DNSName:      rec.DNSName,
		Architecture: rec.Architecture,
		Function:     rec.Function,
		SubnetID:     rec.SubnetID,
		SubnetName:   rec.SubnetName,
		SubnetCIDR:   rec.SubnetCIDR,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func ipsToResponse(records []domain.IPRecord) []IPResponse {
	out := make([]IPResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, ipToResponse(rec))
	}
	return out
}

func importToResponse(report domain.ImportReport) ImportResponse {
	out := ImportResponse{
		SuccessCount: report.SuccessCount,
		Errors:       make([]ImportErrorResponse, 0, len(report.Errors)),
	}
	for _, e := range report.Errors {
		out.Errors = append(out.Errors, ImportErrorResponse{Row: e.Row, Message: e.Message})
	}
	return out
}

func (r CreateSubnetRequest) toInput() domain.CreateSubnetInput {
	return domain.CreateSubnetInput{
		Name:        r.Name,
		CIDR:        r.CIDR,
		Description: r.Description,
		ParentID:    r.ParentID,
	}
}

func (r UpdateSubnetRequest) toInput() domain.UpdateSubnetInput {
	return domain.UpdateSubnetInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

func (r CreateIPRequest) toInput() domain.CreateIPInput {
	return domain.CreateIPInput{
		IPAddress:    r.IPAddress,
		DNSName:      r.DNSName,
		Architecture: r.Architecture,
		Function:     r.Function,
	}
}

func (r UpdateIPRequest) toInput() domain.UpdateIPInput {
	return domain.UpdateIPInput{
		DNSName:      r.DNSName,
		Architecture: r.Architecture,
		Function:     r.Function,
	}
}
