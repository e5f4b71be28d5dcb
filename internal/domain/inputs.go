package domain

type CreateSubnetInput struct {
	Name        string
	CIDR        string
	Description string
	ParentID    *int64
}

// UpdateSubnetInput deliberately has no CIDR field. The block is fixed
// at creation time.
type UpdateSubnetInput struct {
	Name        *string
	Description *string
}

type CreateIPInput struct {
	IPAddress    string
	DNSName      string
	Architecture string
	Function     string
}

// UpdateIPInput deliberately has no IPAddress field. The address is
// fixed at creation time.
type UpdateIPInput struct {
	DNSName      *string
	Architecture *string
	Function     *string
}

// ImportRow is one parsed line of a bulk import file.
type ImportRow struct {
	Line         int
	IPAddress    string
	DNSName      string
	Architecture string
	Function     string
}

type ImportError struct {
	Row     int
	Message string
}

// ImportReport is the outcome of a bulk import. Row failures are data,
// not an error: a partially successful import is a normal result.
type ImportReport struct {
	SuccessCount int
	Errors       []ImportError
}
