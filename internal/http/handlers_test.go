package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mfreund/ipam-console/internal/auth"
	"github.com/mfreund/ipam-console/internal/domain"
)

type stubNetworkService struct {
	listSubnetsFn  func(ctx context.Context) ([]domain.Subnet, error)
	createSubnetFn func(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error)
	getSubnetFn    func(ctx context.Context, id int64) (domain.Subnet, error)
	updateSubnetFn func(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error)
	deleteSubnetFn func(ctx context.Context, id int64) error
	listIPsFn      func(ctx context.Context, subnetID int64) ([]domain.IPRecord, error)
	createIPFn     func(ctx context.Context, subnetID int64, input domain.CreateIPInput) (domain.IPRecord, error)
	updateIPFn     func(ctx context.Context, id domain.IPRecordID, input domain.UpdateIPInput) (domain.IPRecord, error)
	deleteIPFn     func(ctx context.Context, id domain.IPRecordID) error
	exportIPsFn    func(ctx context.Context) ([]domain.IPRecord, error)
	importIPsFn    func(ctx context.Context, rows []domain.ImportRow) (domain.ImportReport, error)
}

func (s *stubNetworkService) ListSubnets(ctx context.Context) ([]domain.Subnet, error) {
	return s.listSubnetsFn(ctx)
}

func (s *stubNetworkService) CreateSubnet(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
	return s.createSubnetFn(ctx, input)
}

func (s *stubNetworkService) GetSubnet(ctx context.Context, id int64) (domain.Subnet, error) {
	return s.getSubnetFn(ctx, id)
}

func (s *stubNetworkService) UpdateSubnet(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
	return s.updateSubnetFn(ctx, id, input)
}

func (s *stubNetworkService) DeleteSubnet(ctx context.Context, id int64) error {
	return s.deleteSubnetFn(ctx, id)
}

func (s *stubNetworkService) ListIPs(ctx context.Context, subnetID int64) ([]domain.IPRecord, error) {
	return s.listIPsFn(ctx, subnetID)
}

func (s *stubNetworkService) CreateIP(ctx context.Context, subnetID int64, input domain.CreateIPInput) (domain.IPRecord, error) {
	return s.createIPFn(ctx, subnetID, input)
}

func (s *stubNetworkService) UpdateIP(ctx context.Context, id domain.IPRecordID, input domain.UpdateIPInput) (domain.IPRecord, error) {
	return s.updateIPFn(ctx, id, input)
}

func (s *stubNetworkService) DeleteIP(ctx context.Context, id domain.IPRecordID) error {
	return s.deleteIPFn(ctx, id)
}

func (s *stubNetworkService) ExportIPs(ctx context.Context) ([]domain.IPRecord, error) {
	return s.exportIPsFn(ctx)
}

func (s *stubNetworkService) ImportIPs(ctx context.Context, rows []domain.ImportRow) (domain.ImportReport, error) {
	return s.importIPsFn(ctx, rows)
}

type stubAuthenticator struct {
	authenticateFn func(ctx context.Context, token string) (auth.Principal, error)
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	return s.authenticateFn(ctx, token)
}

type stubCredentialStore struct {
	loginFn          func(ctx context.Context, username, password string) (string, error)
	changePasswordFn func(ctx context.Context, username, current, next string) error
}

func (s *stubCredentialStore) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubCredentialStore) ChangePassword(ctx context.Context, username, current, next string) error {
	return s.changePasswordFn(ctx, username, current, next)
}

type stubHealth struct {
	pingFn func(ctx context.Context) error
}

func (s *stubHealth) Ping(ctx context.Context) error {
	return s.pingFn(ctx)
}

func newTestAPI(service domain.NetworkService) *API {
	return NewAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&stubHealth{pingFn: func(context.Context) error { return nil }},
		service,
		nil,
		&stubCredentialStore{
			loginFn: func(context.Context, string, string) (string, error) {
				return "", auth.ErrBadCredentials
			},
			changePasswordFn: func(context.Context, string, string, string) error {
				return auth.ErrBadCredentials
			},
		},
	)
}

func subnetStub(id int64, name, cidr string) domain.Subnet {
	now := time.Date(2024, 5, 10, 15, 4, 5, 0, time.UTC)
	return domain.Subnet{ID: id, Name: name, CIDR: cidr, CreatedAt: now, UpdatedAt: now}
}

func ipStub(id string, address string, subnetID int64) domain.IPRecord {
	now := time.Date(2024, 5, 10, 15, 4, 5, 0, time.UTC)
	return domain.IPRecord{
		ID:         domain.IPRecordID(id),
		IPAddress:  address,
		SubnetID:   subnetID,
		SubnetName: "Prod",
		SubnetCIDR: "10.0.0.0/16",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestHandleListSubnets(t *testing.T) {
	service := &stubNetworkService{
		listSubnetsFn: func(context.Context) ([]domain.Subnet, error) {
			return []domain.Subnet{subnetStub(1, "Prod", "10.0.0.0/16")}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subnets", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got []SubnetResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Prod" || got[0].CIDR != "10.0.0.0/16" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestHandleCreateSubnet(t *testing.T) {
	var captured domain.CreateSubnetInput
	service := &stubNetworkService{
		createSubnetFn: func(_ context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
			captured = input
			return subnetStub(7, input.Name, input.CIDR), nil
		},
	}

	body := strings.NewReader(`{"name":"Lab","cidr":"192.168.0.0/24","description":"lab gear"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subnets", body)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Lab" || captured.CIDR != "192.168.0.0/24" || captured.Description != "lab gear" {
		t.Fatalf("unexpected input %+v", captured)
	}
	var got SubnetResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("expected id 7 got %d", got.ID)
	}
}

func TestHandleCreateSubnetConflict(t *testing.T) {
	service := &stubNetworkService{
		createSubnetFn: func(context.Context, domain.CreateSubnetInput) (domain.Subnet, error) {
			return domain.Subnet{}, fmt.Errorf("%w: subnet with this cidr already exists", domain.ErrConflict)
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subnets", strings.NewReader(`{"name":"Dup","cidr":"10.0.0.0/16"}`))
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	var got ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(got.Error, "already exists") {
		t.Fatalf("expected conflict message got %q", got.Error)
	}
}

func TestHandleGetSubnetNotFound(t *testing.T) {
	service := &stubNetworkService{
		getSubnetFn: func(context.Context, int64) (domain.Subnet, error) {
			return domain.Subnet{}, fmt.Errorf("%w: subnet not found", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subnets/99", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestHandleGetSubnetBadID(t *testing.T) {
	service := &stubNetworkService{
		getSubnetFn: func(context.Context, int64) (domain.Subnet, error) {
			t.Fatal("service must not be called for a malformed id")
			return domain.Subnet{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subnets/abc", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandleUpdateSubnetPartial(t *testing.T) {
	var captured domain.UpdateSubnetInput
	service := &stubNetworkService{
		updateSubnetFn: func(_ context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
			captured = input
			return subnetStub(id, "Renamed", "10.0.0.0/16"), nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/subnets/1", strings.NewReader(`{"name":"Renamed"}`))
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Name == nil || *captured.Name != "Renamed" {
		t.Fatalf("expected name pointer, got %+v", captured)
	}
	if captured.Description != nil {
		t.Fatal("description must stay nil when absent from the payload")
	}
}

func TestHandleDeleteSubnet(t *testing.T) {
	var deleted int64
	service := &stubNetworkService{
		deleteSubnetFn: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/subnets/3", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rec.Code)
	}
	if deleted != 3 {
		t.Fatalf("expected delete of 3, got %d", deleted)
	}
}

func TestHandleListIPs(t *testing.T) {
	service := &stubNetworkService{
		listIPsFn: func(_ context.Context, subnetID int64) ([]domain.IPRecord, error) {
			if subnetID != 4 {
				t.Fatalf("expected subnet 4 got %d", subnetID)
			}
			return []domain.IPRecord{ipStub("a", "10.0.0.5", 4)}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subnets/4/ips", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var got []IPResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].IPAddress != "10.0.0.5" || got[0].SubnetCIDR != "10.0.0.0/16" {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestHandleCreateIPValidationMessagePassesThrough(t *testing.T) {
	service := &stubNetworkService{
		createIPFn: func(context.Context, int64, domain.CreateIPInput) (domain.IPRecord, error) {
			return domain.IPRecord{}, fmt.Errorf("%w: ip 10.9.9.9 is outside subnet hierarchy", domain.ErrInvalidInput)
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ips", strings.NewReader(`{"ip_address":"10.9.9.9","subnet_id":1}`))
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var got ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(got.Error, "outside subnet hierarchy") {
		t.Fatalf("expected validation reason in body, got %q", got.Error)
	}
}

func TestHandleExportIPs(t *testing.T) {
	service := &stubNetworkService{
		exportIPsFn: func(context.Context) ([]domain.IPRecord, error) {
			rec := ipStub("a", "10.0.0.5", 4)
			rec.DNSName = "web-1"
			rec.Architecture = "VM"
			rec.Function = "webserver"
			return []domain.IPRecord{rec}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/ips", nil)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "ipam_export.csv") {
		t.Fatalf("expected attachment disposition got %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "ip_address,dns_name,architecture,function,subnet_cidr,subnet_name" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "10.0.0.5,web-1,VM,webserver,10.0.0.0/16,Prod" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func multipartCSV(t *testing.T, csv string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleImportIPs(t *testing.T) {
	service := &stubNetworkService{
		importIPsFn: func(_ context.Context, rows []domain.ImportRow) (domain.ImportReport, error) {
			if len(rows) != 2 {
				t.Fatalf("expected 2 parsed rows got %d", len(rows))
			}
			return domain.ImportReport{
				SuccessCount: 1,
				Errors:       []domain.ImportError{{Row: 3, Message: "invalid ip: nope"}},
			}, nil
		},
	}

	body, contentType := multipartCSV(t, "ip_address,dns_name\n10.0.0.5,web-1\nnope,bad\n")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/ips", body)
	req.Header.Set("Content-Type", contentType)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var got ImportResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.SuccessCount != 1 {
		t.Fatalf("expected success count 1 got %d", got.SuccessCount)
	}
	if len(got.Errors) != 1 || got.Errors[0].Row != 3 {
		t.Fatalf("unexpected errors %+v", got.Errors)
	}
}

func TestHandleImportIPsErrorsKeepFileOrder(t *testing.T) {
	service := &stubNetworkService{
		importIPsFn: func(_ context.Context, rows []domain.ImportRow) (domain.ImportReport, error) {
			if len(rows) != 2 {
				t.Fatalf("expected 2 parsed rows got %d", len(rows))
			}
			return domain.ImportReport{
				Errors: []domain.ImportError{
					{Row: 2, Message: "invalid ip: nope"},
					{Row: 4, Message: "invalid ip: also-nope"},
				},
			}, nil
		},
	}

	// Line 3 carries a bare quote, so it is rejected during parsing
	// while lines 2 and 4 are rejected by the service.
	body, contentType := multipartCSV(t, "ip_address,dns_name\nnope,web-1\nbad\"quote,web-x\nalso-nope,web-2\n")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/ips", body)
	req.Header.Set("Content-Type", contentType)
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var got ImportResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Errors) != 3 {
		t.Fatalf("expected 3 errors got %+v", got.Errors)
	}
	for i, want := range []int{2, 3, 4} {
		if got.Errors[i].Row != want {
			t.Fatalf("expected error %d on row %d got %+v", i, want, got.Errors)
		}
	}
}

func TestHandleImportIPsMissingFile(t *testing.T) {
	service := &stubNetworkService{
		importIPsFn: func(context.Context, []domain.ImportRow) (domain.ImportReport, error) {
			t.Fatal("service must not be called without an upload")
			return domain.ImportReport{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/ips", strings.NewReader("not multipart"))
	newTestAPI(service).Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Authenticator = &stubAuthenticator{
		authenticateFn: func(context.Context, string) (auth.Principal, error) {
			return auth.Principal{}, auth.ErrInvalidToken
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subnets", nil)
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthMiddlewareOpenPaths(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Authenticator = &stubAuthenticator{
		authenticateFn: func(context.Context, string) (auth.Principal, error) {
			return auth.Principal{}, auth.ErrInvalidToken
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on open path got %d", rec.Code)
	}
}

func TestAuthMiddlewareAttachesPrincipal(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Authenticator = &stubAuthenticator{
		authenticateFn: func(_ context.Context, token string) (auth.Principal, error) {
			if token != "good-token" {
				return auth.Principal{}, auth.ErrInvalidToken
			}
			return auth.Principal{Subject: "admin"}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var got MeResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Username != "admin" {
		t.Fatalf("expected admin got %q", got.Username)
	}
}

func TestHandleLogin(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Credentials = &stubCredentialStore{
		loginFn: func(_ context.Context, username, password string) (string, error) {
			if username != "admin" || password != "secret" {
				return "", auth.ErrBadCredentials
			}
			return "issued-token", nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var got TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.AccessToken != "issued-token" {
		t.Fatalf("expected issued token got %q", got.AccessToken)
	}
}

func TestHandleLoginBadCredentials(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestHandleChangePassword(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Authenticator = &stubAuthenticator{
		authenticateFn: func(context.Context, string) (auth.Principal, error) {
			return auth.Principal{Subject: "admin"}, nil
		},
	}
	var gotUser, gotCurrent, gotNext string
	api.Credentials = &stubCredentialStore{
		changePasswordFn: func(_ context.Context, username, current, next string) error {
			gotUser, gotCurrent, gotNext = username, current, next
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/change-password", strings.NewReader(`{"current_password":"old","new_password":"new"}`))
	req.Header.Set("Authorization", "Bearer anything")
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUser != "admin" || gotCurrent != "old" || gotNext != "new" {
		t.Fatalf("unexpected call %q %q %q", gotUser, gotCurrent, gotNext)
	}
}

func TestHandleReadyzUnavailable(t *testing.T) {
	api := newTestAPI(&stubNetworkService{})
	api.Health = &stubHealth{pingFn: func(context.Context) error {
		return errors.New("connection refused")
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
