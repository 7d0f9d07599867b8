// Package client is the HTTP implementation of the profile page backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	activityhttp "github.com/janisto/intern-portal/internal/http/v1/activity"
	profilehttp "github.com/janisto/intern-portal/internal/http/v1/profile"
	applog "github.com/janisto/intern-portal/internal/platform/logging"
	activitysvc "github.com/janisto/intern-portal/internal/service/activity"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

const (
	defaultBaseURL = "http://localhost:8080/v1"
	userAgent      = "intern-portal-client"
	acceptHeader   = "application/json"
	avatarField    = "avatar"

	// RecentActivityLimit is the page size requested by FetchRecentActivity.
	RecentActivityLimit = 20
)

// Credential is the bearer ID token of the signed-in user.
type Credential string

// File is an avatar selected for upload.
type File struct {
	Name string
	Data []byte
}

// Client talks to the portal REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root including the version prefix, e.g. https://api.example.com/v1.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a new portal API client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) doRequest(ctx context.Context, cred Credential, method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	if cred == "" {
		return nil, ErrNotAuthenticated
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+string(cred))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}

func (c *Client) decodeResponse(ctx context.Context, resp *http.Response, target any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("%w: decoding response: %w", ErrNetwork, err)
		}
		return nil
	}

	err := errorFromResponse(resp)
	var up *UpstreamError
	if errors.As(err, &up) && errors.Is(err, ErrNetwork) {
		applog.LogWarn(ctx, "portal api request failed",
			zap.Int("status", up.Status),
			zap.String("title", up.Title),
		)
	}
	return err
}

// FetchProfile returns the caller's profile.
func (c *Client) FetchProfile(ctx context.Context, cred Credential) (*profilesvc.Profile, error) {
	resp, err := c.doRequest(ctx, cred, http.MethodGet, "/profile", nil, "", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var wire profilehttp.Profile
	if err := c.decodeResponse(ctx, resp, &wire); err != nil {
		return nil, err
	}
	return fromWireProfile(wire)
}

// UpdatePersonalInfo sends the full editable field set and returns the stored profile,
// or nil when the server acknowledges without one.
func (c *Client) UpdatePersonalInfo(ctx context.Context, cred Credential, info profilesvc.PersonalInfo) (*profilesvc.Profile, error) {
	body, err := json.Marshal(profilehttp.PersonalInfo{
		FullName:       info.FullName,
		Email:          info.Email,
		Phone:          info.Phone,
		University:     info.University,
		Department:     info.Department,
		GraduationYear: info.GraduationYear,
		Bio:            info.Bio,
		Address:        info.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding personal info: %w", err)
	}

	resp, err := c.doRequest(ctx, cred, http.MethodPut, "/profile/personal-info", nil, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	// An acknowledgement without a body leaves merging the sent values to the caller.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	var wire profilehttp.Profile
	if err := c.decodeResponse(ctx, resp, &wire); err != nil {
		if resp.StatusCode < 300 && errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return fromWireProfile(wire)
}

// UploadAvatar uploads file and returns the stored avatar reference.
func (c *Client) UploadAvatar(ctx context.Context, cred Credential, file File) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(avatarField, file.Name)
	if err != nil {
		return "", fmt.Errorf("encoding avatar: %w", err)
	}
	if _, err := fw.Write(file.Data); err != nil {
		return "", fmt.Errorf("encoding avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("encoding avatar: %w", err)
	}

	resp, err := c.doRequest(ctx, cred, http.MethodPut, "/profile/avatar", nil, mw.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var out profilehttp.AvatarUpload
	if err := c.decodeResponse(ctx, resp, &out); err != nil {
		return "", err
	}
	return out.AvatarRef, nil
}

// FetchRecentActivity returns the newest entries of userID's feed.
func (c *Client) FetchRecentActivity(ctx context.Context, cred Credential, userID string) ([]activitysvc.Entry, error) {
	query := url.Values{"limit": {strconv.Itoa(RecentActivityLimit)}}
	resp, err := c.doRequest(ctx, cred, http.MethodGet, "/users/"+url.PathEscape(userID)+"/activity", query, "", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var data activityhttp.ListData
	if err := c.decodeResponse(ctx, resp, &data); err != nil {
		return nil, err
	}

	entries := make([]activitysvc.Entry, 0, len(data.Entries))
	for _, e := range data.Entries {
		typ, err := activitysvc.ParseType(e.Type)
		if err != nil {
			typ = activitysvc.TypeOther
		}
		entries = append(entries, activitysvc.Entry{
			ID:          e.ID,
			UserID:      userID,
			Type:        typ,
			Title:       e.Title,
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Time,
		})
	}
	return entries, nil
}

func fromWireProfile(w profilehttp.Profile) (*profilesvc.Profile, error) {
	role, err := profilesvc.ParseRole(w.Role)
	if err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	p := &profilesvc.Profile{
		ID:             w.ID,
		Email:          w.Email,
		FullName:       w.FullName,
		Role:           role,
		Phone:          w.Phone,
		Address:        w.Address,
		Bio:            w.Bio,
		Avatar:         w.Avatar,
		University:     w.University,
		Department:     w.Department,
		GraduationYear: w.GraduationYear,
		CreatedAt:      w.CreatedAt.Time,
		UpdatedAt:      w.UpdatedAt.Time,
	}
	if w.LastLogin != nil {
		p.LastLogin = w.LastLogin.Time
	}
	return p, nil
}
