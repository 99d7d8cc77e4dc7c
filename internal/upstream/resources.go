package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"leavepanel/internal/domain/models"
)

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Data []T             `json:"data"`
	Meta models.PageMeta `json:"meta"`
}

// Login exchanges credentials for an access token. The token is opaque to the
// panel; only the leave API interprets it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/login", payload, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("login response missing access_token")
	}
	return out.AccessToken, nil
}

// Register creates an account via the public sign-up endpoint.
func (c *Client) Register(ctx context.Context, fields map[string]string) error {
	return c.postJSON(ctx, "/register", fields, nil)
}

// Me resolves the identity behind the current token.
func (c *Client) Me(ctx context.Context) (models.Identity, error) {
	var out struct {
		User models.Identity `json:"user"`
	}
	if err := c.getJSON(ctx, "/me", nil, &out); err != nil {
		return models.Identity{}, err
	}
	return out.User, nil
}

// List fetches one page of a resource collection. Values should come from
// listview.Query.Values so every screen sends the same parameter set.
func List[T any](ctx context.Context, c *Client, resource string, query url.Values) (Page[T], error) {
	var page Page[T]
	if err := c.getJSON(ctx, "/"+resource, query, &page); err != nil {
		return Page[T]{}, err
	}
	if page.Meta.CurrentPage == 0 {
		page.Meta.CurrentPage = 1
	}
	if page.Meta.LastPage == 0 {
		page.Meta.LastPage = 1
	}
	return page, nil
}

// Get fetches one record by id. Show endpoints wrap the record in a data
// envelope the same way list endpoints do.
func Get[T any](ctx context.Context, c *Client, resource, id string) (T, error) {
	var out struct {
		Data T `json:"data"`
	}
	if err := c.getJSON(ctx, "/"+resource+"/"+id, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out.Data, nil
}

func (c *Client) Create(ctx context.Context, resource string, payload any) error {
	return c.postJSON(ctx, "/"+resource, payload, nil)
}

func (c *Client) Update(ctx context.Context, resource, id string, payload any) error {
	return c.putJSON(ctx, "/"+resource+"/"+id, payload, nil)
}

func (c *Client) Delete(ctx context.Context, resource, id string) error {
	return c.do(ctx, "DELETE", "/"+resource+"/"+id, nil, nil, "", nil)
}

// FilePart is a named file attached to a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// UpdateMultipart updates a resource that carries a file upload. The API only
// accepts multipart on POST, so the method override field is sent instead of
// a real PUT.
func (c *Client) UpdateMultipart(ctx context.Context, resource, id string, fields map[string]string, file *FilePart) error {
	body, contentType, err := encodeMultipart(fields, file, map[string]string{"_method": "PUT"})
	if err != nil {
		return err
	}
	return c.do(ctx, "POST", "/"+resource+"/"+id, nil, body, contentType, nil)
}

// CreateMultipart creates a resource that carries a file upload.
func (c *Client) CreateMultipart(ctx context.Context, resource string, fields map[string]string, file *FilePart) error {
	body, contentType, err := encodeMultipart(fields, file, nil)
	if err != nil {
		return err
	}
	return c.do(ctx, "POST", "/"+resource, nil, body, contentType, nil)
}

// ExportExcel ships the projected rows to the spreadsheet service and returns
// the server-relative path of the generated file.
func (c *Client) ExportExcel(ctx context.Context, rows []map[string]any, filename string) (string, error) {
	var out struct {
		FilePath string `json:"file_path"`
	}
	payload := map[string]any{"data": rows, "filename": filename}
	if err := c.postJSON(ctx, "/excel/export", payload, &out); err != nil {
		return "", err
	}
	if out.FilePath == "" {
		return "", fmt.Errorf("export response missing file_path")
	}
	return out.FilePath, nil
}

// ImportExcel uploads a workbook into the named table. uniqueBy, when set,
// tells the importer which columns identify an existing row.
func (c *Client) ImportExcel(ctx context.Context, file FilePart, table string, uniqueBy []string) error {
	fields := map[string]string{"table": table}
	body, contentType, err := encodeMultipartSlice(fields, &file, "unique_by[]", uniqueBy)
	if err != nil {
		return err
	}
	return c.do(ctx, "POST", "/excel/import", nil, body, contentType, nil)
}

func encodeMultipart(fields map[string]string, file *FilePart, extra map[string]string) (io.Reader, string, error) {
	merged := make(map[string]string, len(fields)+len(extra))
	for k, v := range fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return encodeMultipartSlice(merged, file, "", nil)
}

func encodeMultipartSlice(fields map[string]string, file *FilePart, sliceField string, sliceValues []string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write multipart field %s: %w", k, err)
		}
	}
	for _, v := range sliceValues {
		if err := w.WriteField(sliceField, v); err != nil {
			return nil, "", fmt.Errorf("write multipart field %s: %w", sliceField, err)
		}
	}

	if file != nil {
		field := file.Field
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create multipart file part: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("copy multipart file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
