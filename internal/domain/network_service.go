package domain

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

type networkService struct {
	subnets SubnetRepository
	ips     IPRepository
}

func NewNetworkService(subnets SubnetRepository, ips IPRepository) NetworkService {
	return &networkService{
		subnets: subnets,
		ips:     ips,
	}
}

func (s *networkService) ListSubnets(ctx context.Context) ([]Subnet, error) {
	return s.subnets.List(ctx)
}

func (s *networkService) CreateSubnet(ctx context.Context, input CreateSubnetInput) (Subnet, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Subnet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	prefix, err := netip.ParsePrefix(input.CIDR)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w: invalid cidr", ErrInvalidInput)
	}
	if input.ParentID != nil {
		if _, err := s.subnets.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return Subnet{}, fmt.Errorf("%w: parent subnet does not exist", ErrInvalidInput)
			}
			return Subnet{}, err
		}
	}

	created, err := s.subnets.Create(ctx, input)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return Subnet{}, fmt.Errorf("%w: subnet with this cidr already exists", ErrConflict)
		}
		return Subnet{}, err
	}

	if created.ParentID != nil {
		if err := s.adoptAncestorIPs(ctx, created, prefix); err != nil {
			return Subnet{}, err
		}
	}

	return created, nil
}

// adoptAncestorIPs moves addresses owned by the new subnet's ancestors
// into the new subnet when it is the more specific block for them. This
// keeps every record attached to the narrowest block that contains it.
func (s *networkService) adoptAncestorIPs(ctx context.Context, created Subnet, prefix netip.Prefix) error {
	all, err := s.subnets.List(ctx)
	if err != nil {
		return err
	}

	byID := make(map[int64]Subnet, len(all))
	for _, sub := range all {
		byID[sub.ID] = sub
	}

	var chain []int64
	for id := created.ParentID; id != nil; {
		parent, ok := byID[*id]
		if !ok {
			break
		}
		chain = append(chain, parent.ID)
		id = parent.ParentID
	}
	if len(chain) == 0 {
		return nil
	}

	candidates, err := s.ips.ListBySubnetIDs(ctx, chain)
	if err != nil {
		return err
	}

	for _, rec := range candidates {
		addr, err := netip.ParseAddr(rec.IPAddress)
		if err != nil || !prefix.Contains(addr) {
			continue
		}
		owner, ok := byID[rec.SubnetID]
		if !ok {
			continue
		}
		ownerPrefix, err := netip.ParsePrefix(owner.CIDR)
		if err != nil || prefix.Bits() <= ownerPrefix.Bits() {
			continue
		}
		if err := s.ips.Reassign(ctx, rec.ID, created.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *networkService) GetSubnet(ctx context.Context, id int64) (Subnet, error) {
	return s.subnets.FindByID(ctx, id)
}

func (s *networkService) UpdateSubnet(ctx context.Context, id int64, input UpdateSubnetInput) (Subnet, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return Subnet{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	return s.subnets.Update(ctx, id, input)
}

func (s *networkService) DeleteSubnet(ctx context.Context, id int64) error {
	deleted, err := s.subnets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *networkService) ListIPs(ctx context.Context, subnetID int64) ([]IPRecord, error) {
	if _, err := s.subnets.FindByID(ctx, subnetID); err != nil {
		return nil, err
	}
	all, err := s.subnets.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.ips.ListBySubnetIDs(ctx, subtreeIDs(all, subnetID))
}

func (s *networkService) CreateIP(ctx context.Context, subnetID int64, input CreateIPInput) (IPRecord, error) {
	addr, err := netip.ParseAddr(input.IPAddress)
	if err != nil {
		return IPRecord{}, fmt.Errorf("%w: invalid ip address", ErrInvalidInput)
	}
	if !ValidArchitecture(input.Architecture) {
		return IPRecord{}, fmt.Errorf("%w: unknown architecture %q", ErrInvalidInput, input.Architecture)
	}
	if _, err := s.subnets.FindByID(ctx, subnetID); err != nil {
		return IPRecord{}, err
	}

	all, err := s.subnets.List(ctx)
	if err != nil {
		return IPRecord{}, err
	}

	candidates := filterByIDs(all, subtreeIDs(all, subnetID))
	best, ok := bestMatch(candidates, addr)
	if !ok {
		return IPRecord{}, fmt.Errorf("%w: ip %s does not fit any subnet in the hierarchy", ErrInvalidInput, input.IPAddress)
	}

	prefix, err := netip.ParsePrefix(best.CIDR)
	if err != nil {
		return IPRecord{}, err
	}
	if err := validateUsableAddress(prefix, addr); err != nil {
		return IPRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.ips.Create(ctx, input, best.ID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return IPRecord{}, fmt.Errorf("%w: ip already exists in subnet %s", ErrConflict, best.Name)
		}
		return IPRecord{}, err
	}
	return created, nil
}

func (s *networkService) UpdateIP(ctx context.Context, id IPRecordID, input UpdateIPInput) (IPRecord, error) {
	if input.Architecture != nil && !ValidArchitecture(*input.Architecture) {
		return IPRecord{}, fmt.Errorf("%w: unknown architecture %q", ErrInvalidInput, *input.Architecture)
	}
	return s.ips.Update(ctx, id, input)
}

func (s *networkService) DeleteIP(ctx context.Context, id IPRecordID) error {
	deleted, err := s.ips.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *networkService) ExportIPs(ctx context.Context) ([]IPRecord, error) {
	return s.ips.ListAll(ctx)
}

func (s *networkService) ImportIPs(ctx context.Context, rows []ImportRow) (ImportReport, error) {
	all, err := s.subnets.List(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Errors: []ImportError{}}
	for _, row := range rows {
		addr, err := netip.ParseAddr(row.IPAddress)
		if err != nil {
			report.Errors = append(report.Errors, ImportError{Row: row.Line, Message: fmt.Sprintf("invalid ip: %s", row.IPAddress)})
			continue
		}
		if !ValidArchitecture(row.Architecture) {
			report.Errors = append(report.Errors, ImportError{Row: row.Line, Message: fmt.Sprintf("unknown architecture: %s", row.Architecture)})
			continue
		}

		best, ok := bestMatch(all, addr)
		if !ok {
			report.Errors = append(report.Errors, ImportError{Row: row.Line, Message: fmt.Sprintf("no subnet found for ip: %s", row.IPAddress)})
			continue
		}

		existing, err := s.ips.FindBySubnetAndAddress(ctx, best.ID, row.IPAddress)
		switch {
		case err == nil:
			// Re-importing a known address refreshes its metadata.
			_, err = s.ips.Update(ctx, existing.ID, UpdateIPInput{
				DNSName:      &row.DNSName,
				Architecture: &row.Architecture,
				Function:     &row.Function,
			})
			if err != nil {
				return ImportReport{}, err
			}
		case errors.Is(err, ErrNotFound):
			_, err = s.ips.Create(ctx, CreateIPInput{
				IPAddress:    row.IPAddress,
				DNSName:      row.DNSName,
				Architecture: row.Architecture,
				Function:     row.Function,
			}, best.ID)
			if err != nil {
				return ImportReport{}, err
			}
			report.SuccessCount++
		default:
			return ImportReport{}, err
		}
	}

	return report, nil
}

// subtreeIDs returns rootID plus the ids of every descendant subnet in
// the snapshot.
func subtreeIDs(subnets []Subnet, rootID int64) []int64 {
	children := make(map[int64][]int64, len(subnets))
	for _, s := range subnets {
		if s.ParentID != nil {
			children[*s.ParentID] = append(children[*s.ParentID], s.ID)
		}
	}

	ids := []int64{rootID}
	seen := map[int64]struct{}{rootID: {}}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
		}
	}
	return ids
}

func filterByIDs(subnets []Subnet, ids []int64) []Subnet {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]Subnet, 0, len(ids))
	for _, s := range subnets {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// bestMatch picks the containing subnet with the longest prefix, so an
// address always lands in the narrowest block that covers it.
func bestMatch(subnets []Subnet, addr netip.Addr) (Subnet, bool) {
	var best Subnet
	bestBits := -1
	for _, s := range subnets {
		prefix, err := netip.ParsePrefix(s.CIDR)
		if err != nil || !prefix.Contains(addr) {
			continue
		}
		if prefix.Bits() > bestBits {
			bestBits = prefix.Bits()
			best = s
		}
	}
	return best, bestBits >= 0
}

func validateUsableAddress(prefix netip.Prefix, ip netip.Addr) error {
	// /31 IPv4 point-to-point links treat both addresses as usable.
	if ip.Is4() && prefix.Bits() != 31 && prefix.Bits() != 32 {
		r := netipx.RangeOfPrefix(prefix)
		if r.From() == ip || r.To() == ip {
			return fmt.Errorf("network or broadcast ip")
		}
	}
	return nil
}
