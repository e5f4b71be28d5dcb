// Package client talks to an ipamd server over its JSON API. Reads are
// retried on transient failures; mutations are sent exactly once so a
// timed-out request is never silently replayed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mfreund/ipam-console/internal/domain"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	token   string
	logger  *slog.Logger

	// reads retries idempotent requests, mutate never retries.
	reads  *http.Client
	mutate *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClients(reads, mutate *http.Client) Option {
	return func(c *Client) {
		c.reads = reads
		c.mutate = mutate
	}
}

func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	readClient := retryablehttp.NewClient()
	readClient.RetryMax = 3
	readClient.HTTPClient.Timeout = defaultTimeout
	readClient.Logger = nil

	mutateClient := retryablehttp.NewClient()
	mutateClient.RetryMax = 0
	mutateClient.HTTPClient.Timeout = defaultTimeout
	mutateClient.Logger = nil

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		reads:   readClient.StandardClient(),
		mutate:  mutateClient.StandardClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenPayload
	err := c.do(ctx, c.mutate, http.MethodPost, "/api/v1/auth/login", loginPayload{Username: username, Password: password}, &out)
	if err != nil {
		return "", err
	}
	c.token = out.AccessToken
	return out.AccessToken, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := changePasswordPayload{CurrentPassword: current, NewPassword: next}
	return c.do(ctx, c.mutate, http.MethodPost, "/api/v1/auth/change-password", payload, nil)
}

func (c *Client) Me(ctx context.Context) (string, error) {
	var out mePayload
	if err := c.do(ctx, c.reads, http.MethodGet, "/api/v1/auth/me", nil, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

func (c *Client) ListSubnets(ctx context.Context) ([]domain.Subnet, error) {
	var out []subnetPayload
	if err := c.do(ctx, c.reads, http.MethodGet, "/api/v1/subnets", nil, &out); err != nil {
		return nil, err
	}
	return subnetsToDomain(out), nil
}

func (c *Client) CreateSubnet(ctx context.Context, input domain.CreateSubnetInput) (domain.Subnet, error) {
	payload := createSubnetPayload{
		Name:        input.Name,
		CIDR:        input.CIDR,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	var out subnetPayload
	if err := c.do(ctx, c.mutate, http.MethodPost, "/api/v1/subnets", payload, &out); err != nil {
		return domain.Subnet{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) GetSubnet(ctx context.Context, id int64) (domain.Subnet, error) {
	var out subnetPayload
	if err := c.do(ctx, c.reads, http.MethodGet, fmt.Sprintf("/api/v1/subnets/%d", id), nil, &out); err != nil {
		return domain.Subnet{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateSubnet(ctx context.Context, id int64, input domain.UpdateSubnetInput) (domain.Subnet, error) {
	payload := updateSubnetPayload{Name: input.Name, Description: input.Description}
	var out subnetPayload
	if err := c.do(ctx, c.mutate, http.MethodPatch, fmt.Sprintf("/api/v1/subnets/%d", id), payload, &out); err != nil {
		return domain.Subnet{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) DeleteSubnet(ctx context.Context, id int64) error {
	return c.do(ctx, c.mutate, http.MethodDelete, fmt.Sprintf("/api/v1/subnets/%d", id), nil, nil)
}

func (c *Client) ListIPs(ctx context.Context, subnetID int64) ([]domain.IPRecord, error) {
	var out []ipPayload
	if err := c.do(ctx, c.reads, http.MethodGet, fmt.Sprintf("/api/v1/subnets/%d/ips", subnetID), nil, &out); err != nil {
		return nil, err
	}
	return ipsToDomain(out), nil
}

func (c *Client) CreateIP(ctx context.Context, subnetID int64, input domain.CreateIPInput) (domain.IPRecord, error) {
	payload := createIPPayload{
		IPAddress:    input.IPAddress,
		DNSName:      input.DNSName,
		Architecture: input.Architecture,
		Function:     input.Function,
		SubnetID:     subnetID,
	}
	var out ipPayload
	if err := c.do(ctx, c.mutate, http.MethodPost, "/api/v1/ips", payload, &out); err != nil {
		return domain.IPRecord{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateIP(ctx context.Context, id domain.IPRecordID, input domain.UpdateIPInput) (domain.IPRecord, error) {
	payload := updateIPPayload{DNSName: input.DNSName, Architecture: input.Architecture, Function: input.Function}
	var out ipPayload
	if err := c.do(ctx, c.mutate, http.MethodPatch, "/api/v1/ips/"+string(id), payload, &out); err != nil {
		return domain.IPRecord{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) DeleteIP(ctx context.Context, id domain.IPRecordID) error {
	return c.do(ctx, c.mutate, http.MethodDelete, "/api/v1/ips/"+string(id), nil, nil)
}

// ExportIPs downloads the CSV export verbatim.
func (c *Client) ExportIPs(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/export/ips", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.reads.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export ips: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}

// ImportIPs uploads a CSV file and returns the row-level outcome.
func (c *Client) ImportIPs(ctx context.Context, filename string, file io.Reader) (domain.ImportReport, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.ImportReport{}, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.ImportReport{}, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/import/ips", &body)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.mutate.Do(req)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("import ips: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ImportReport{}, decodeError(resp)
	}

	var out importPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ImportReport{}, fmt.Errorf("decode import report: %w", err)
	}
	return out.toDomain(), nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.DebugContext(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// decodeError maps a non-2xx response back to the domain sentinels so
// callers can branch on error kind while keeping the server's message.
func decodeError(resp *http.Response) error {
	var payload errorPayload
	message := resp.Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil && payload.Error != "" {
		message = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", domain.ErrUnavailable, message)
	default:
		return fmt.Errorf("server error: %s", message)
	}
}
