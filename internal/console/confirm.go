package console

import (
	"context"
	"errors"

	"github.com/mfreund/ipam-console/internal/domain"
)

var errNothingPending = errors.New("no delete pending confirmation")

type ConfirmKind int

const (
	ConfirmSubnet ConfirmKind = iota + 1
	ConfirmIP
)

// PendingConfirmation captures a delete waiting for the operator's
// decision. At most one exists at a time; a new delete intent replaces
// the previous target rather than queueing behind it.
type PendingConfirmation struct {
	Kind        ConfirmKind
	SubnetID    int64
	IPID        domain.IPRecordID
	DisplayName string
}

func (c *Console) RequestDeleteSubnet(id int64, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &PendingConfirmation{Kind: ConfirmSubnet, SubnetID: id, DisplayName: displayName}
}

func (c *Console) RequestDeleteIP(id domain.IPRecordID, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &PendingConfirmation{Kind: ConfirmIP, IPID: id, DisplayName: displayName}
}

// Pending returns a copy of the delete awaiting confirmation, or nil.
func (c *Console) Pending() *PendingConfirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	pending := *c.pending
	return &pending
}

// ConfirmDelete performs the pending delete exactly once and returns to
// idle whether or not the server call succeeded.
func (c *Console) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if pending == nil {
		return errNothingPending
	}

	switch pending.Kind {
	case ConfirmIP:
		return c.deleteIP(ctx, pending.IPID)
	default:
		return c.deleteSubnet(ctx, pending.SubnetID)
	}
}

// CancelDelete returns to idle without touching the server or the
// record store.
func (c *Console) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}
