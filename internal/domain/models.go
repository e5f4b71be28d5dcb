package domain

import "time"

type IPRecordID string

// Subnet is a named network block, optionally nested under a parent
// subnet. The CIDR is immutable after creation.
type Subnet struct {
	ID          int64
	Name        string
	CIDR        string
	Description string
	ParentID    *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IPRecord is a single address entry owned by exactly one subnet.
// SubnetName and SubnetCIDR are denormalized from the owning subnet for
// display and are never written back.
type IPRecord struct {
	ID           IPRecordID
	IPAddress    string
	DNSName      string
	Architecture string
	Function     string
	SubnetID     int64
	SubnetName   string
	SubnetCIDR   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubnetTreeNode is a derived view of a Subnet plus its children. Built
// fresh from the flat list on every read, never mutated in place.
type SubnetTreeNode struct {
	Subnet
	Children []*SubnetTreeNode
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
