// Package transfer implements the CSV interchange format used for bulk
// import and export of IP records.
package transfer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mfreund/ipam-console/internal/domain"
)

// Header is the column order of an export file. Import accepts any
// column order and ignores columns it does not know.
var Header = []string{"ip_address", "dns_name", "architecture", "function", "subnet_cidr", "subnet_name"}

const Filename = "ipam_export.csv"

func Marshal(records []domain.IPRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.IPAddress, rec.DNSName, rec.Architecture, rec.Function, rec.SubnetCIDR, rec.SubnetName}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads an import file into rows. Malformed lines are reported
// per-row rather than failing the whole file; only an unreadable header
// is a hard error. Rows without an ip_address are skipped silently, the
// way a spreadsheet with trailing blank lines expects.
func Parse(r io.Reader) ([]domain.ImportRow, []domain.ImportError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["ip_address"]; !ok {
		return nil, nil, fmt.Errorf("missing ip_address column")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []domain.ImportRow
	var rowErrs []domain.ImportError
	line := 1
	for {
		record, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, domain.ImportError{Row: line, Message: err.Error()})
			continue
		}

		ip := field(record, "ip_address")
		if ip == "" {
			continue
		}
		rows = append(rows, domain.ImportRow{
			Line:         line,
			IPAddress:    ip,
			DNSName:      field(record, "dns_name"),
			Architecture: field(record, "architecture"),
			Function:     field(record, "function"),
		})
	}

	return rows, rowErrs, nil
}
