// Package backend talks to the Ecoleta points API on behalf of the web
// frontend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	webdomain "github.com/ghuser/ecoleta/services/web/domain"
	"github.com/ghuser/ecoleta/services/web/domain/models"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is a points API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client rooted at baseURL, e.g. http://localhost:3333.
func NewClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// ListItems returns the item catalogue.
func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/items", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var items []models.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("backend: decode items: %w", err)
	}
	return items, nil
}

// CreatePoint posts the submission as multipart/form-data with the image in
// the "image" field. image may be nil; the API then rejects the request.
func (c *Client) CreatePoint(ctx context.Context, sub models.Submission, image *models.Image) (*models.CreatedPoint, error) {
	body, contentType, err := encodeSubmission(sub, image)
	if err != nil {
		return nil, fmt.Errorf("backend: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/points", body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var created models.CreatedPoint
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("backend: decode point: %w", err)
	}
	return &created, nil
}

// Ping checks the API health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

// do sends req and turns non-2xx answers into errors. 4xx becomes a
// *webdomain.RejectedError, everything else wraps ErrBackendUnavailable.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", webdomain.ErrBackendUnavailable, req.Method, req.URL.Path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, decodeRejection(resp)
	}
	return nil, fmt.Errorf("%w: %s %s: status %d", webdomain.ErrBackendUnavailable, req.Method, req.URL.Path, resp.StatusCode)
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func decodeRejection(resp *http.Response) error {
	rej := &webdomain.RejectedError{Status: resp.StatusCode}
	var body errorBody
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && json.Unmarshal(data, &body) == nil {
		rej.Message = body.Error
		rej.Fields = body.Fields
	}
	if rej.Message == "" {
		rej.Message = http.StatusText(resp.StatusCode)
	}
	return rej
}

func encodeSubmission(sub models.Submission, image *models.Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", sub.Name},
		{"email", sub.Email},
		{"whatsapp", sub.Whatsapp},
		{"uf", sub.UF},
		{"city", sub.City},
		{"latitude", strconv.FormatFloat(sub.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(sub.Longitude, 'f', -1, 64)},
		{"items", sub.ItemsParam()},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if image != nil && image.Content != nil {
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, image.Filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, image.Content); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
