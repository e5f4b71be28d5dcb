package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfreund/ipam-console/internal/domain"
)

// CreateSubnet sends a subnet draft to the server and, on success,
// refetches the subnet list. The new record is never spliced in
// locally; the listing the server returns is the only source of
// server-computed fields.
func (c *Console) CreateSubnet(ctx context.Context, input domain.CreateSubnetInput) error {
	if input.Name == "" {
		return c.reject("subnet name is required")
	}
	if input.CIDR == "" {
		return c.reject("subnet cidr is required")
	}

	if _, err := c.server.CreateSubnet(ctx, input); err != nil {
		c.notify.Notify(failureNotice("failed to create subnet", err))
		return err
	}

	c.notify.Notify(Notice{Severity: SeverityInfo, Message: fmt.Sprintf("subnet %s created", input.Name)})
	return c.RefreshSubnets(ctx)
}

// UpdateSubnet patches a subnet. On success the subnet list is
// refetched and, when the edited subnet is the selected one, the patch
// is merged into the selection reference so the detail view updates
// without a second round trip.
func (c *Console) UpdateSubnet(ctx context.Context, id int64, patch domain.UpdateSubnetInput) error {
	if patch.Name != nil && *patch.Name == "" {
		return c.reject("subnet name is required")
	}

	updated, err := c.server.UpdateSubnet(ctx, id, patch)
	if err != nil {
		c.notify.Notify(failureNotice("failed to update subnet", err))
		return err
	}

	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		c.selected = &updated
	}
	c.mu.Unlock()

	return c.RefreshSubnets(ctx)
}

// CreateIP registers an address under the given subnet. The server
// assigns it to the narrowest matching block in that subnet's tree, so
// the refreshed listing is the only truth about where it landed.
func (c *Console) CreateIP(ctx context.Context, subnetID int64, input domain.CreateIPInput) error {
	if input.IPAddress == "" {
		return c.reject("ip address is required")
	}

	if _, err := c.server.CreateIP(ctx, subnetID, input); err != nil {
		c.notify.Notify(failureNotice("failed to create ip", err))
		return err
	}

	c.notify.Notify(Notice{Severity: SeverityInfo, Message: fmt.Sprintf("ip %s created", input.IPAddress)})
	c.refreshIPs(ctx)
	return nil
}

func (c *Console) UpdateIP(ctx context.Context, id domain.IPRecordID, patch domain.UpdateIPInput) error {
	if _, err := c.server.UpdateIP(ctx, id, patch); err != nil {
		c.notify.Notify(failureNotice("failed to update ip", err))
		return err
	}

	c.refreshIPs(ctx)
	return nil
}

// deleteSubnet is reached only through the confirmation state machine.
func (c *Console) deleteSubnet(ctx context.Context, id int64) error {
	err := c.server.DeleteSubnet(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.notify.Notify(failureNotice("failed to delete subnet", err))
		return err
	}

	// A NotFound means the subnet is already gone on the server, from
	// a concurrent deletion. The stale local state is reconciled the
	// same way as a successful delete.
	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		c.clearSelectionLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.notify.Notify(failureNotice("failed to delete subnet", err))
	} else {
		c.notify.Notify(Notice{Severity: SeverityInfo, Message: "subnet deleted"})
	}
	return c.RefreshSubnets(ctx)
}

// deleteIP is reached only through the confirmation state machine.
func (c *Console) deleteIP(ctx context.Context, id domain.IPRecordID) error {
	if err := c.server.DeleteIP(ctx, id); err != nil {
		c.notify.Notify(failureNotice("failed to delete ip", err))
		return err
	}

	c.notify.Notify(Notice{Severity: SeverityInfo, Message: "ip deleted"})
	c.refreshIPs(ctx)
	return nil
}

func (c *Console) reject(message string) error {
	err := fmt.Errorf("%w: %s", domain.ErrInvalidInput, message)
	c.notify.Notify(Notice{Severity: SeverityError, Message: message})
	return err
}
