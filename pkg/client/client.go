// Package client is a Go client for the music school HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/go-resty/resty/v2"
)

const apiPrefix = "/api/v1"

// APIError is returned for any non-2xx response. A 404 matches model.ErrNotFound.
type APIError struct {
	StatusCode  int    `json:"-"`
	Message     string `json:"error"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == model.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Dashboard mirrors GET /api/v1/dashboard.
type Dashboard struct {
	Students        int           `json:"students"`
	Teachers        int           `json:"teachers"`
	Classes         int           `json:"classes"`
	Revenue         float64       `json:"revenue"`
	UpcomingClasses []model.Event `json:"upcoming_classes"`
}

type StudentQuery struct {
	Status string
	Search string
}

type BillQuery struct {
	StudentID int64
	Status    string
}

// Client is a resty-backed API client.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+apiPrefix).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{http: httpClient}
}

func (c *Client) ListStudents(ctx context.Context, q StudentQuery) ([]model.Student, error) {
	params := map[string]string{}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.Search != "" {
		params["q"] = q.Search
	}
	var out []model.Student
	if err := c.do(ctx, http.MethodGet, "/students", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	out := new(model.Student)
	if err := c.do(ctx, http.MethodGet, "/students/"+itoa(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStudent(ctx context.Context, fields model.Student) (*model.Student, error) {
	out := new(model.Student)
	if err := c.do(ctx, http.MethodPost, "/students", nil, fields, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id int64, patch model.StudentPatch) (*model.Student, error) {
	out := new(model.Student)
	if err := c.do(ctx, http.MethodPatch, "/students/"+itoa(id), nil, patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id int64) (*model.Student, error) {
	out := new(model.Student)
	if err := c.do(ctx, http.MethodDelete, "/students/"+itoa(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBills(ctx context.Context, q BillQuery) ([]model.Bill, error) {
	params := map[string]string{}
	if q.StudentID != 0 {
		params["student_id"] = itoa(q.StudentID)
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	var out []model.Bill
	if err := c.do(ctx, http.MethodGet, "/bills", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OverdueBills(ctx context.Context) ([]model.Bill, error) {
	var out []model.Bill
	if err := c.do(ctx, http.MethodGet, "/bills/overdue", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBill(ctx context.Context, id int64) (*model.Bill, error) {
	out := new(model.Bill)
	if err := c.do(ctx, http.MethodGet, "/bills/"+itoa(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBill(ctx context.Context, fields model.Bill) (*model.Bill, error) {
	out := new(model.Bill)
	if err := c.do(ctx, http.MethodPost, "/bills", nil, fields, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBill(ctx context.Context, id int64, patch model.BillPatch) (*model.Bill, error) {
	out := new(model.Bill)
	if err := c.do(ctx, http.MethodPatch, "/bills/"+itoa(id), nil, patch, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteBill(ctx context.Context, id int64) (*model.Bill, error) {
	out := new(model.Bill)
	if err := c.do(ctx, http.MethodDelete, "/bills/"+itoa(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkBillPaid(ctx context.Context, id int64, paymentMethod string) (*model.Bill, error) {
	out := new(model.Bill)
	body := map[string]string{"payment_method": paymentMethod}
	if err := c.do(ctx, http.MethodPost, "/bills/"+itoa(id)+"/pay", nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveReplacement(ctx context.Context, id int64, approvedBy, notes string) (*model.Replacement, error) {
	return c.decide(ctx, id, "approve", approvedBy, notes)
}

func (c *Client) RejectReplacement(ctx context.Context, id int64, approvedBy, notes string) (*model.Replacement, error) {
	return c.decide(ctx, id, "reject", approvedBy, notes)
}

func (c *Client) decide(ctx context.Context, id int64, action, approvedBy, notes string) (*model.Replacement, error) {
	out := new(model.Replacement)
	body := map[string]string{"approved_by": approvedBy, "notes": notes}
	if err := c.do(ctx, http.MethodPost, "/replacements/"+itoa(id)+"/"+action, nil, body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	out := new(Dashboard)
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body, result any) error {
	apiErr := new(APIError)

	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
