package transfer

import (
	"strings"
	"testing"

	"github.com/mfreund/ipam-console/internal/domain"
)

func TestMarshalWritesHeaderAndDisplayFields(t *testing.T) {
	data, err := Marshal([]domain.IPRecord{
		{IPAddress: "10.0.0.5", DNSName: "web-1", Architecture: "VM", Function: "webserver", SubnetCIDR: "10.0.0.0/24", SubnetName: "Prod"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "ip_address,dns_name,architecture,function,subnet_cidr,subnet_name" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "10.0.0.5,web-1,VM,webserver,10.0.0.0/24,Prod" {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestParseAcceptsReorderedColumnsAndSkipsBlankAddresses(t *testing.T) {
	in := "dns_name,ip_address,function\nweb-1,10.0.0.5,frontend\n,,\nprinter-9,10.0.0.9,\n"

	rows, rowErrs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].IPAddress != "10.0.0.5" || rows[0].DNSName != "web-1" || rows[0].Function != "frontend" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].Line != 2 || rows[1].Line != 4 {
		t.Fatalf("unexpected line numbers: %d, %d", rows[0].Line, rows[1].Line)
	}
}

func TestParseReportsMalformedLinesPerRow(t *testing.T) {
	in := "ip_address,dns_name\n10.0.0.5,ok\n\"broken,row\n10.0.0.7,also-ok\n"

	rows, rowErrs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("expected 1 row error, got %v", rowErrs)
	}
	if len(rows) != 1 || rows[0].IPAddress != "10.0.0.5" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParseRequiresAddressColumn(t *testing.T) {
	if _, _, err := Parse(strings.NewReader("dns_name,function\na,b\n")); err == nil {
		t.Fatal("expected error for missing ip_address column")
	}
}
