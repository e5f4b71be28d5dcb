package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mfreund/ipam-console/internal/domain"
)

// LoadingState reports which fetch scopes are in flight.
type LoadingState struct {
	Subnets bool
	IPs     bool
	Import  bool
}

// Console owns the record store and all state derived from it. The
// subnet and IP lists are only ever replaced wholesale from a
// successful fetch; a failed operation leaves them untouched. Fetches
// carry a per-scope generation number so a late response from an
// earlier request is discarded instead of overwriting newer data.
type Console struct {
	server Server
	logger *slog.Logger
	notify Notifier

	mu         sync.Mutex
	subnets    []domain.Subnet
	ips        []domain.IPRecord
	selected   *domain.Subnet
	searchTerm string
	collapsed  map[int64]struct{}
	pending    *PendingConfirmation
	loading    LoadingState

	subnetGen uint64
	ipGen     uint64
}

func New(server Server, logger *slog.Logger, notify Notifier) *Console {
	if notify == nil {
		notify = NotifierFunc(func(Notice) {})
	}
	return &Console{
		server:    server,
		logger:    logger,
		notify:    notify,
		collapsed: make(map[int64]struct{}),
	}
}

// RefreshSubnets replaces the subnet list from the server. On failure
// the current list stays as is.
func (c *Console) RefreshSubnets(ctx context.Context) error {
	c.mu.Lock()
	c.subnetGen++
	gen := c.subnetGen
	c.loading.Subnets = true
	c.mu.Unlock()

	subnets, err := c.server.ListSubnets(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.subnetGen {
		// superseded by a newer fetch
		return nil
	}
	c.loading.Subnets = false
	if err != nil {
		c.logger.DebugContext(ctx, "subnet fetch failed", "err", err.Error())
		c.notify.Notify(failureNotice("failed to load subnets", err))
		return err
	}
	c.subnets = subnets
	return nil
}

// SelectSubnet makes the given subnet the active one and loads its IP
// list, which covers the subnet itself and all of its descendants. The
// previous IP list is cleared immediately so stale rows are never
// displayed while the fetch is in flight.
func (c *Console) SelectSubnet(ctx context.Context, id int64) error {
	c.mu.Lock()
	subnet, ok := findSubnet(c.subnets, id)
	if !ok {
		c.mu.Unlock()
		err := fmt.Errorf("%w: subnet %d is not in the current listing", domain.ErrNotFound, id)
		c.notify.Notify(failureNotice("failed to select subnet", err))
		return err
	}
	c.selected = &subnet
	c.ips = nil
	c.ipGen++
	gen := c.ipGen
	c.loading.IPs = true
	c.mu.Unlock()

	records, err := c.server.ListIPs(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.ipGen {
		// a later selection or refresh owns the IP list now
		return nil
	}
	c.loading.IPs = false
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.clearSelectionLocked()
		}
		c.notify.Notify(failureNotice("failed to load ips", err))
		return err
	}
	c.ips = records
	return nil
}

// ClearSelection drops the active subnet and its IP list. An
// outstanding IP fetch is invalidated so its late result is discarded.
func (c *Console) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

func (c *Console) clearSelectionLocked() {
	c.selected = nil
	c.ips = nil
	c.ipGen++
	c.loading.IPs = false
}

// refreshIPs reloads the IP list for the currently selected subnet. A
// no-op without a selection.
func (c *Console) refreshIPs(ctx context.Context) {
	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return
	}
	id := c.selected.ID
	c.ipGen++
	gen := c.ipGen
	c.loading.IPs = true
	c.mu.Unlock()

	records, err := c.server.ListIPs(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.ipGen {
		return
	}
	c.loading.IPs = false
	if err != nil {
		c.notify.Notify(failureNotice("failed to load ips", err))
		return
	}
	c.ips = records
}

func (c *Console) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

func (c *Console) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

// VisibleIPs filters the loaded IP list with the current search term: a
// record is kept when the lowercased term is a substring of any of its
// address, DNS name, architecture, function, subnet name or subnet
// CIDR. An empty term keeps everything.
func (c *Console) VisibleIPs() []domain.IPRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.searchTerm == "" {
		return append([]domain.IPRecord(nil), c.ips...)
	}

	term := strings.ToLower(c.searchTerm)
	out := make([]domain.IPRecord, 0, len(c.ips))
	for _, rec := range c.ips {
		if matchesTerm(rec, term) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesTerm(rec domain.IPRecord, term string) bool {
	for _, field := range []string{rec.IPAddress, rec.DNSName, rec.Architecture, rec.Function, rec.SubnetName, rec.SubnetCIDR} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Forest rebuilds the subnet hierarchy from the flat list. Derived
// state, recomputed on every call.
func (c *Console) Forest() []*domain.SubnetTreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.BuildForest(c.subnets)
}

func (c *Console) Subnets() []domain.Subnet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Subnet(nil), c.subnets...)
}

// Selected returns a copy of the active subnet, or nil.
func (c *Console) Selected() *domain.Subnet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	subnet := *c.selected
	return &subnet
}

func (c *Console) Loading() LoadingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ToggleCollapse flips whether the subnet's children are hidden.
// Collapse state is UI-local, starts all-expanded and is independent of
// selection.
func (c *Console) ToggleCollapse(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.collapsed[id]; ok {
		delete(c.collapsed, id)
		return
	}
	c.collapsed[id] = struct{}{}
}

func (c *Console) IsCollapsed(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.collapsed[id]
	return ok
}

func findSubnet(subnets []domain.Subnet, id int64) (domain.Subnet, bool) {
	for _, s := range subnets {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Subnet{}, false
}

// failureNotice keeps the server's reason when the error carries one a
// user can act on, and falls back to the generic lead otherwise.
func failureNotice(fallback string, err error) Notice {
	message := fallback
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrUnauthorized) {
		message = err.Error()
	}
	return Notice{Severity: SeverityError, Message: message}
}
