// Package console holds the operator-facing inventory state: the
// canonical subnet and IP lists fetched from the server, the derived
// forest and filtered views, and the coordinators that write through
// the server. Local state is never the authority; every mutation is
// confirmed by a refetch before it becomes visible.
package console

import (
	"context"
	"io"

	"github.com/mfreund/ipam-console/internal/domain"
)

// Server is the remote collaborator the console synchronizes against.
// It is satisfied by the API client.
type Server interface {
	ListSubnets(ctx context.Context) ([]domain.Subnet, error)
	ListIPs(ctx context.Context, subnetID int64) ([]domain.IPRecord, error)
	CreateSubnet(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error)
	UpdateSubnet(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error)
	DeleteSubnet(ctx context.Context, id int64) error
	CreateIP(ctx context.Context, subnetID int64, input domain.CreateIPInput) (domain.IPRecord, error)
	UpdateIP(ctx context.Context, id domain.IPRecordID, input domain.UpdateIPInput) (domain.IPRecord, error)
	DeleteIP(ctx context.Context, id domain.IPRecordID) error
	ExportIPs(ctx context.Context) ([]byte, error)
	ImportIPs(ctx context.Context, filename string, file io.Reader) (domain.ImportReport, error)
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notice is a user-facing message. Every failure crossing the console
// boundary becomes one; nothing reaches the presentation layer as a
// raw error.
type Notice struct {
	Severity Severity
	Message  string
}

type Notifier interface {
	Notify(notice Notice)
}

type NotifierFunc func(notice Notice)

func (f NotifierFunc) Notify(notice Notice) {
	f(notice)
}
