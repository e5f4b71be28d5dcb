package domain

import "context"

type SubnetRepository interface {
	List(ctx context.Context) ([]Subnet, error)
	FindByID(ctx context.Context, id int64) (Subnet, error)
	Create(ctx context.Context, input CreateSubnetInput) (Subnet, error)
	Update(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type IPRepository interface {
	// ListBySubnetIDs returns the records of every listed subnet with
	// the denormalized subnet fields filled, ordered by address.
	ListBySubnetIDs(ctx context.Context, subnetIDs []int64) ([]IPRecord, error)
	ListAll(ctx context.Context) ([]IPRecord, error)
	FindBySubnetAndAddress(ctx context.Context, subnetID int64, ip string) (IPRecord, error)
	Create(ctx context.Context, input CreateIPInput, subnetID int64) (IPRecord, error)
	Update(ctx context.Context, id IPRecordID, input UpdateIPInput) (IPRecord, error)
	Reassign(ctx context.Context, id IPRecordID, subnetID int64) error
	Delete(ctx context.Context, id IPRecordID) (bool, error)
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, username, passwordHash string) (User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
