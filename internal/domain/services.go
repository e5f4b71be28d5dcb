package domain

import "context"

type NetworkService interface {
	ListSubnets(ctx context.Context) ([]Subnet, error)
	CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error)
	GetSubnet(ctx context.Context, id int64) (Subnet, error)
	UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error)
	DeleteSubnet(ctx context.Context, id int64) error
	ListIPs(ctx context.Context, subnetID int64) ([]IPRecord, error)
	CreateIP(ctx context.Context, subnetID int64, input CreateIPInput) (IPRecord, error)
	UpdateIP(ctx context.Context, id IPRecordID, input UpdateIPInput) (IPRecord, error)
	DeleteIP(ctx context.Context, id IPRecordID) error
	ExportIPs(ctx context.Context) ([]IPRecord, error)
	ImportIPs(ctx context.Context, rows []ImportRow) (ImportReport, error)
}
