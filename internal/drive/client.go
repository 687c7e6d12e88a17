// Package drive is a thin REST adapter for the document-store provider.
// It is consumed only through the response shapes used below.
package drive

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lodnet/luach/internal/config"
)

const (
	filesEndpoint  = "https://www.googleapis.com/drive/v3/files"
	sheetsEndpoint = "https://sheets.googleapis.com/v4/spreadsheets"
	docsEndpoint   = "https://docs.googleapis.com/v1/documents"

	MimeDocument    = "application/vnd.google-apps.document"
	MimeSpreadsheet = "application/vnd.google-apps.spreadsheet"
	MimeFolder      = "application/vnd.google-apps.folder"
)

// File is the subset of provider file metadata this service reads.
type File struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	CreatedTime   string `json:"createdTime,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
}

type fileList struct {
	Files []File `json:"files"`
}

type valueRange struct {
	Values [][]string `json:"values"`
}

type Client struct {
	http       *resty.Client
	apiKey     string
	folderID   string
	writeToken string
}

func New(cfg *config.Config) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
		apiKey:     cfg.GoogleAPIKey,
		folderID:   cfg.DriveFolderID,
		writeToken: cfg.DriveWriteToken,
	}
}

// CanWrite reports whether a write credential is configured.
func (c *Client) CanWrite() bool {
	return c.writeToken != ""
}

// ListFiles runs a metadata query against the provider.
func (c *Client) ListFiles(ctx context.Context, query, fields string) ([]File, error) {
	var out fileList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":    c.apiKey,
			"q":      query,
			"fields": fields,
		}).
		SetResult(&out).
		Get(filesEndpoint)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d listing files", resp.StatusCode())
	}
	return out.Files, nil
}

// Docs lists the category documents in the root content folder.
func (c *Client) Docs(ctx context.Context) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", c.folderID, MimeDocument)
	return c.ListFiles(ctx, q, "files(id, name, createdTime)")
}

// DocsIn lists the documents inside a given folder.
func (c *Client) DocsIn(ctx context.Context, folderID string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", folderID, MimeDocument)
	return c.ListFiles(ctx, q, "files(id, name)")
}

// Spreadsheets lists the spreadsheets in the root content folder.
func (c *Client) Spreadsheets(ctx context.Context) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", c.folderID, MimeSpreadsheet)
	return c.ListFiles(ctx, q, "files(id, name)")
}

// FolderContaining finds subfolders whose name contains the given text.
func (c *Client) FolderContaining(ctx context.Context, name string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and name contains '%s' and trashed=false", c.folderID, MimeFolder, name)
	return c.ListFiles(ctx, q, "files(id, name)")
}

// FolderNamed finds the subfolder with exactly the given name.
func (c *Client) FolderNamed(ctx context.Context, name string) (*File, error) {
	q := fmt.Sprintf("'%s' in parents and name='%s' and mimeType='%s' and trashed=false", c.folderID, name, MimeFolder)
	files, err := c.ListFiles(ctx, q, "files(id, name)")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[0], nil
}

// Images lists the image files inside a folder.
func (c *Client) Images(ctx context.Context, folderID string) ([]File, error) {
	q := fmt.Sprintf("'%s' in parents and (mimeType contains 'image/') and trashed=false", folderID)
	return c.ListFiles(ctx, q, "files(id, name, mimeType, thumbnailLink)")
}

// ExportText exports a document as plain text.
func (c *Client) ExportText(ctx context.Context, fileID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":      c.apiKey,
			"mimeType": "text/plain",
		}).
		Get(filesEndpoint + "/" + fileID + "/export")
	if err != nil {
		return "", fmt.Errorf("exporting doc %s: %w", fileID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d exporting doc %s", resp.StatusCode(), fileID)
	}
	return string(resp.Body()), nil
}

// SheetValues reads a cell range from a spreadsheet.
func (c *Client) SheetValues(ctx context.Context, spreadsheetID, cellRange string) ([][]string, error) {
	var out valueRange
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetResult(&out).
		Get(fmt.Sprintf("%s/%s/values/%s", sheetsEndpoint, spreadsheetID, cellRange))
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", spreadsheetID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d reading sheet %s", resp.StatusCode(), spreadsheetID)
	}
	return out.Values, nil
}

// AppendText appends text to the end of a document using the configured
// write credential.
func (c *Client) AppendText(ctx context.Context, docID, text string) error {
	if !c.CanWrite() {
		return fmt.Errorf("no write credential configured")
	}
	body := map[string]any{
		"requests": []map[string]any{
			{
				"insertText": map[string]any{
					"endOfSegmentLocation": map[string]any{},
					"text":                 "\n\n" + text,
				},
			},
		},
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.writeToken).
		SetBody(body).
		Post(docsEndpoint + "/" + docID + ":batchUpdate")
	if err != nil {
		return fmt.Errorf("appending to doc %s: %w", docID, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d appending to doc %s", resp.StatusCode(), docID)
	}
	return nil
}
