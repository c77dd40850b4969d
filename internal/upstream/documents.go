package upstream

import (
	"context"
	"net/http"
	"net/url"

	"docshare/internal/domain/models"
)

// documentParams maps a query to the backend's list parameters.
// "mydrives" lists documents outside any folder, so the folder is dropped.
func documentParams(q models.DocumentQuery) url.Values {
	params := url.Values{}
	if q.FolderID != "" {
		params.Set("folder", q.FolderID)
	}
	switch q.Filter {
	case models.FilterStarred:
		params.Set("starred", "true")
	case models.FilterShared:
		params.Set("shared", "true")
	case models.FilterMyDrives:
		params.Set("mydrives", "true")
		params.Del("folder")
	case models.FilterInvoices:
		params.Set("invoices", "true")
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	return params
}

// ListDocuments lists documents matching q
func (c *Client) ListDocuments(ctx context.Context, token string, q models.DocumentQuery) ([]models.Document, error) {
	var out []wireDocument
	if err := c.do(ctx, token, http.MethodGet, "/documents", documentParams(q), nil, &out); err != nil {
		return nil, err
	}
	return convert(out, (*wireDocument).model), nil
}

// GetDocument returns one document
func (c *Client) GetDocument(ctx context.Context, token, id string) (*models.Document, error) {
	var out wireDocument
	if err := c.do(ctx, token, http.MethodGet, "/documents/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// StarDocument sets or clears the star
func (c *Client) StarDocument(ctx context.Context, token, id string, starred bool) (*models.Document, error) {
	body := struct {
		Starred bool `json:"starred"`
	}{Starred: starred}

	var out wireDocument
	if err := c.do(ctx, token, http.MethodPut, "/documents/"+escape(id)+"/star", nil, body, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// DeleteDocument deletes a document
func (c *Client) DeleteDocument(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/documents/"+escape(id), nil, nil, nil)
}

// ShareDocument replaces the document's shares and permission triple
func (c *Client) ShareDocument(ctx context.Context, token, id string, userIDs []string, perms models.Permissions) (*models.Document, error) {
	body := struct {
		UserIDs     []string           `json:"userIds"`
		Permissions models.Permissions `json:"permissions"`
	}{UserIDs: userIDs, Permissions: perms}

	var out wireDocument
	if err := c.do(ctx, token, http.MethodPut, "/documents/"+escape(id)+"/share", nil, body, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// UploadDocument relays a multipart upload. The body is streamed, never buffered.
func (c *Client) UploadDocument(ctx context.Context, token string, upload *models.UploadRequest) (*models.Document, error) {
	req, err := c.newRequest(ctx, token, http.MethodPost, "/documents/upload", nil, upload.Body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", upload.ContentType)
	if upload.ContentLength > 0 {
		req.ContentLength = upload.ContentLength
	}

	resp, err := c.send(c.streamClient, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out wireDocument
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	d := out.model()
	return &d, nil
}

// OpenDocument opens a document for download or inline viewing
func (c *Client) OpenDocument(ctx context.Context, token, id string, mode models.FileMode) (*models.FileStream, error) {
	req, err := c.newRequest(ctx, token, http.MethodGet, "/documents/"+escape(id)+"/"+string(mode), nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(c.streamClient, req)
	if err != nil {
		return nil, err
	}

	return &models.FileStream{
		Body:               resp.Body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentLength:      resp.ContentLength,
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}
