package console

import (
	"bytes"
	"context"
	"fmt"
)

// ExportAll fetches the full IP inventory as CSV bytes. All or
// nothing; a failed export produces no file.
func (c *Console) ExportAll(ctx context.Context) ([]byte, error) {
	data, err := c.server.ExportIPs(ctx)
	if err != nil {
		c.notify.Notify(Notice{Severity: SeverityError, Message: "export failed"})
		return nil, err
	}
	return data, nil
}

// ImportFrom uploads a CSV file and reports the combined outcome in a
// single notice. Rows that fail are data, not an error: a partially
// successful import still counts as completed. The IP list is refreshed
// only when a subnet is selected; rows imported elsewhere surface when
// their subnet is next selected.
func (c *Console) ImportFrom(ctx context.Context, filename string, data []byte) error {
	c.mu.Lock()
	c.loading.Import = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading.Import = false
		c.mu.Unlock()
	}()

	report, err := c.server.ImportIPs(ctx, filename, bytes.NewReader(data))
	if err != nil {
		c.notify.Notify(Notice{Severity: SeverityError, Message: "import failed"})
		return err
	}

	severity := SeverityInfo
	if len(report.Errors) > 0 {
		severity = SeverityError
	}
	c.notify.Notify(Notice{
		Severity: severity,
		Message:  fmt.Sprintf("imported %d records, %d rows failed", report.SuccessCount, len(report.Errors)),
	})

	c.refreshIPs(ctx)
	return nil
}
