package client

import (
	"time"

	"github.com/mfreund/ipam-console/internal/domain"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
}

type mePayload struct {
	Username string `json:"username"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type subnetPayload struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CIDR        string    `json:"cidr"`
	Description string    `json:"description"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type createSubnetPayload struct {
	Name        string `json:"name"`
	CIDR        string `json:"cidr"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id,omitempty"`
}

type updateSubnetPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ipPayload struct {
	ID           string    `json:"id"`
	IPAddress    string    `json:"ip_address"`
	DNSName      string    `json:"dns_name"`
	Architecture string    `json:"architecture"`
	Function     string    `json:"function"`
	SubnetID     int64     `json:"subnet_id"`
	SubnetName   string    `json:"subnet_name"`
	SubnetCIDR   string    `json:"subnet_cidr"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type createIPPayload struct {
	IPAddress    string `json:"ip_address"`
	DNSName      string `json:"dns_name"`
	Architecture string `json:"architecture"`
	Function     string `json:"function"`
	SubnetID     int64  `json:"subnet_id"`
}

type updateIPPayload struct {
	DNSName      *string `json:"dns_name,omitempty"`
	Architecture *string `json:"architecture,omitempty"`
	Function     *string `json:"function,omitempty"`
}

type importErrorPayload struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importPayload struct {
	SuccessCount int                  `json:"success_count"`
	Errors       []importErrorPayload `json:"errors"`
}

func (p subnetPayload) toDomain() domain.Subnet {
	return domain.Subnet{
		ID:          p.ID,
		Name:        p.Name,
		CIDR:        p.CIDR,
		Description: p.Description,
		ParentID:    p.ParentID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func subnetsToDomain(payloads []subnetPayload) []domain.Subnet {
	out := make([]domain.Subnet, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toDomain())
	}
	return out
}

func (p ipPayload) toDomain() domain.IPRecord {
	return domain.IPRecord{
		ID:           domain.IPRecordID(p.ID),
		IPAddress:    p.IPAddress,
		DNSName:      p.DNSName,
		Architecture: p.Architecture,
		Function:     p.Function,
		SubnetID:     p.SubnetID,
		SubnetName:   p.SubnetName,
		SubnetCIDR:   p.SubnetCIDR,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ipsToDomain(payloads []ipPayload) []domain.IPRecord {
	out := make([]domain.IPRecord, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.toDomain())
	}
	return out
}

func (p importPayload) toDomain() domain.ImportReport {
	out := domain.ImportReport{SuccessCount: p.SuccessCount}
	for _, e := range p.Errors {
		out.Errors = append(out.Errors, domain.ImportError{Row: e.Row, Message: e.Message})
	}
	return out
}
