package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/srinibas-vastra/backend/internal/config"
)

const (
	baseURL        = "https://api.cloudinary.com/v1_1"
	requestTimeout = 30 * time.Second
)

// Client talks to the media host's REST API with signed requests. Uploads land
// either in a permanent folder or under the staging namespace; staged assets are
// committed (renamed) only when the seller application finalizes.
type Client struct {
	cloudName     string
	apiKey        string
	apiSecret     string
	uploadFolder  string
	stagingFolder string
	httpClient    *http.Client
}

type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	CreatedAt string `json:"created_at"`
}

type resourceList struct {
	Resources  []UploadResult `json:"resources"`
	NextCursor string         `json:"next_cursor"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cloudName:     cfg.CloudinaryCloudName,
		apiKey:        cfg.CloudinaryAPIKey,
		apiSecret:     cfg.CloudinaryAPISecret,
		uploadFolder:  cfg.UploadFolder,
		stagingFolder: cfg.StagingFolder,
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) Configured() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

// Upload pushes an image into folder under the given public ID and returns the
// hosted URL. The caller owns validation; this only signs and ships bytes.
func (c *Client) Upload(ctx context.Context, folder, publicID string, data io.Reader) (*UploadResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("media host is not configured")
	}

	params := map[string]string{
		"folder":    folder,
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.WriteField("api_key", c.apiKey); err != nil {
		return nil, err
	}
	if err := w.WriteField("signature", c.sign(params)); err != nil {
		return nil, err
	}
	part, err := w.CreateFormFile("file", publicID)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	return &result, nil
}

// UploadStaging stages a document under staging/<owner>/ pending commit.
func (c *Client) UploadStaging(ctx context.Context, owner, publicID string, data io.Reader) (*UploadResult, error) {
	return c.Upload(ctx, c.stagingFolder+"/"+owner, publicID, data)
}

// UploadImage stores a product image directly in the permanent folder.
func (c *Client) UploadImage(ctx context.Context, owner, publicID string, data io.Reader) (*UploadResult, error) {
	return c.Upload(ctx, c.uploadFolder+"/"+owner, publicID, data)
}

// Commit promotes a staged document URL into the permanent seller-docs namespace and
// returns the new URL. URLs that do not point into staging pass through untouched,
// which covers re-submissions that reuse previously committed documents.
func (c *Client) Commit(ctx context.Context, rawURL, owner string) (string, error) {
	publicID := PublicIDFromURL(rawURL)
	if publicID == "" || !strings.HasPrefix(publicID, c.stagingFolder+"/") {
		return rawURL, nil
	}

	parts := strings.Split(publicID, "/")
	target := "seller-docs/" + owner + "/" + parts[len(parts)-1]

	params := map[string]string{
		"from_public_id": publicID,
		"to_public_id":   target,
		"timestamp":      strconv.FormatInt(time.Now().Unix(), 10),
	}

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))

	endpoint := fmt.Sprintf("%s/%s/image/rename", baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return "", fmt.Errorf("commit of %s failed: %w", publicID, err)
	}
	return result.SecureURL, nil
}

// SweepStaging deletes staged assets older than maxAge. Abandoned application flows
// leave orphans behind; this is the compensating cleanup.
func (c *Client) SweepStaging(ctx context.Context, maxAge time.Duration) (int, error) {
	if !c.Configured() {
		return 0, nil
	}

	endpoint := fmt.Sprintf("%s/%s/resources/image/upload?prefix=%s/&max_results=100",
		baseURL, c.cloudName, url.QueryEscape(c.stagingFolder))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	var list resourceList
	if err := c.do(req, &list); err != nil {
		return 0, fmt.Errorf("listing staged assets failed: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	var stale []string
	for _, r := range list.Resources {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			continue
		}
		if createdAt.Before(cutoff) {
			stale = append(stale, r.PublicID)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	form := url.Values{}
	for _, id := range stale {
		form.Add("public_ids[]", id)
	}
	delEndpoint := fmt.Sprintf("%s/%s/resources/image/upload", baseURL, c.cloudName)
	delReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, delEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	delReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	delReq.SetBasicAuth(c.apiKey, c.apiSecret)

	if err := c.do(delReq, &struct{}{}); err != nil {
		return 0, fmt.Errorf("deleting staged assets failed: %w", err)
	}
	return len(stale), nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("media host returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return json.Unmarshal(raw, out)
}

// sign produces the API signature: SHA-1 over the sorted k=v pairs plus the secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// PublicIDFromURL recovers the public ID from a hosted delivery URL, i.e. the path
// after the /upload/v<version>/ segment with the file extension stripped.
func PublicIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	uploadIdx := -1
	for i, s := range segments {
		if s == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+1 >= len(segments) {
		return ""
	}

	rest := segments[uploadIdx+1:]
	// skip the version segment (v1234567890) if present
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		if _, err := strconv.Atoi(rest[0][1:]); err == nil {
			rest = rest[1:]
		}
	}
	publicID := strings.Join(rest, "/")
	if dot := strings.LastIndex(publicID, "."); dot > strings.LastIndex(publicID, "/") {
		publicID = publicID[:dot]
	}
	return publicID
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// StartSweep runs the staging sweep on a fixed interval until done is closed.
func StartSweep(client *Client, maxAge time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
				n, err := client.SweepStaging(ctx, maxAge)
				cancel()
				if err != nil {
					slog.Error("staging sweep failed", "error", err)
				} else if n > 0 {
					slog.Info("staging sweep completed", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()
}
