package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
)

// ListUsers returns every user
func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []wireUser
	if err := c.do(ctx, token, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return convert(out, (*wireUser).model), nil
}

// ListTags returns the caller's tags
func (c *Client) ListTags(ctx context.Context, token string) ([]models.Tag, error) {
	var out []wireTag
	if err := c.do(ctx, token, http.MethodGet, "/tags", nil, nil, &out); err != nil {
		return nil, err
	}
	return convert(out, (*wireTag).model), nil
}

// CreateTag creates a tag
func (c *Client) CreateTag(ctx context.Context, token string, req *models.TagRequest) (*models.Tag, error) {
	var out wireTag
	if err := c.do(ctx, token, http.MethodPost, "/tags", nil, req, &out); err != nil {
		return nil, err
	}
	t := out.model()
	return &t, nil
}

// UpdateTag updates a tag
func (c *Client) UpdateTag(ctx context.Context, token, id string, req *models.TagRequest) (*models.Tag, error) {
	var out wireTag
	if err := c.do(ctx, token, http.MethodPut, "/tags/"+escape(id), nil, req, &out); err != nil {
		return nil, err
	}
	t := out.model()
	return &t, nil
}

// DeleteTag deletes a tag
func (c *Client) DeleteTag(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/tags/"+escape(id), nil, nil, nil)
}

func pageQuery(p models.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

// decodePage accepts both {<key>: [...], total: n} and a bare array
func decodePage[W any](raw json.RawMessage, key string) ([]W, int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []W
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, err
		}
		return items, len(items), nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, 0, err
	}

	var items []W
	if list, ok := envelope[key]; ok {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, 0, err
		}
	}

	total := len(items)
	if t, ok := envelope["total"]; ok {
		if err := json.Unmarshal(t, &total); err != nil {
			return nil, 0, fmt.Errorf("decode total: %w", err)
		}
	}
	return items, total, nil
}

func invalidResponse() error {
	return &domain.RemoteError{Kind: domain.RemoteServer, Message: "invalid response from document service"}
}

// ListDepartments returns one page of departments
func (c *Client) ListDepartments(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.Department], error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/admin/departments", pageQuery(p), nil, &raw); err != nil {
		return nil, err
	}
	items, total, err := decodePage[wireDepartment](raw, "departments")
	if err != nil {
		return nil, invalidResponse()
	}
	return &models.Page[models.Department]{
		Items: convert(items, (*wireDepartment).model),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

// CreateDepartment creates a department
func (c *Client) CreateDepartment(ctx context.Context, token string, req *models.CreateDepartmentRequest) (*models.Department, error) {
	var out wireDepartment
	if err := c.do(ctx, token, http.MethodPost, "/admin/departments", nil, req, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// UpdateDepartment updates a department's mutable fields
func (c *Client) UpdateDepartment(ctx context.Context, token, id string, req *models.UpdateDepartmentRequest) (*models.Department, error) {
	var out wireDepartment
	if err := c.do(ctx, token, http.MethodPut, "/admin/departments/"+escape(id), nil, req, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// DeleteDepartment deletes a department
func (c *Client) DeleteDepartment(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/admin/departments/"+escape(id), nil, nil, nil)
}

// ListEmployees returns one page of employees
func (c *Client) ListEmployees(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.User], error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/admin/employees", pageQuery(p), nil, &raw); err != nil {
		return nil, err
	}
	items, total, err := decodePage[wireUser](raw, "employees")
	if err != nil {
		return nil, invalidResponse()
	}
	return &models.Page[models.User]{
		Items: convert(items, (*wireUser).model),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

// CreateEmployee creates an employee
func (c *Client) CreateEmployee(ctx context.Context, token string, req *models.CreateEmployeeRequest) (*models.User, error) {
	var out wireUser
	if err := c.do(ctx, token, http.MethodPost, "/admin/employees", nil, req, &out); err != nil {
		return nil, err
	}
	u := out.model()
	return &u, nil
}

// UpdateEmployee updates an employee
func (c *Client) UpdateEmployee(ctx context.Context, token, id string, req *models.UpdateEmployeeRequest) (*models.User, error) {
	var out wireUser
	if err := c.do(ctx, token, http.MethodPut, "/admin/employees/"+escape(id), nil, req, &out); err != nil {
		return nil, err
	}
	u := out.model()
	return &u, nil
}

// DeleteEmployee deletes an employee
func (c *Client) DeleteEmployee(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/admin/employees/"+escape(id), nil, nil, nil)
}
