package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ochairo/localcert/internal/domain/entities"
	"github.com/ochairo/localcert/internal/domain/interfaces"
)

// redirectPagePattern is the interstitial GitHub serves in place of the binary
var redirectPagePattern = regexp.MustCompile(
	`^<html><body>You are being <a href="(?P<url>.*)">redirected</a>.</body></html>$`,
)

// GitHubGatewayConfig contains configuration for the release gateway
type GitHubGatewayConfig struct {
	ReleaseURL string
	UserAgent  string
	Token      string
	Timeout    time.Duration
}

// HTTPGitHubGateway implements ReleaseGateway using standard HTTP client
type HTTPGitHubGateway struct {
	client     *http.Client
	releaseURL string
	userAgent  string
	token      string
	logger     interfaces.Logger
}

// NewHTTPGitHubGateway creates a new GitHub gateway with HTTP client
func NewHTTPGitHubGateway(config GitHubGatewayConfig, logger interfaces.Logger) *HTTPGitHubGateway {
	if config.ReleaseURL == "" {
		config.ReleaseURL = entities.DefaultReleaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = entities.DefaultUserAgent
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &HTTPGitHubGateway{
		client: &http.Client{
			Timeout: config.Timeout,
			// The asset URL answers with a redirect page whose body we parse,
			// so redirects are never followed here.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		releaseURL: config.ReleaseURL,
		userAgent:  config.UserAgent,
		token:      config.Token,
		logger:     logger,
	}
}

// githubRelease represents the GitHub API release format
type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

// githubAsset represents a GitHub release asset
type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// checkRateLimit checks GitHub API rate limit headers and returns error if exhausted
func (g *HTTPGitHubGateway) checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	remainingInt, err := strconv.Atoi(remaining)
	if err != nil {
		return nil // Invalid header, ignore
	}

	if remainingInt == 0 {
		resetTime := resp.Header.Get("X-RateLimit-Reset")
		if resetTime != "" {
			if resetUnix, err := strconv.ParseInt(resetTime, 10, 64); err == nil {
				resetAt := time.Unix(resetUnix, 0)
				return fmt.Errorf("%w (0 remaining), resets at %s", entities.ErrRateLimited, resetAt.Format(time.RFC3339))
			}
		}
		return fmt.Errorf("%w (0 remaining)", entities.ErrRateLimited)
	}

	if remainingInt <= 10 {
		g.logger.Warn("GitHub API rate limit low", interfaces.F("remaining", remainingInt))
	}

	return nil
}

// FetchLatestRelease retrieves the latest release and its assets
func (g *HTTPGitHubGateway) FetchLatestRelease(ctx context.Context) (*entities.ReleaseMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.releaseURL, nil)
	if err != nil {
		return nil, &entities.ResolutionError{Op: "version", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", g.userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &entities.ResolutionError{Op: "version", Err: fmt.Errorf("failed to get latest release: %w", err)}
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if err := g.checkRateLimit(resp); err != nil {
		return nil, &entities.ResolutionError{Op: "version", Err: err}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.ResolutionError{Op: "version", Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.ResolutionError{Op: "version", Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))}
	}

	var result githubRelease
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &entities.ResolutionError{Op: "version", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	meta := &entities.ReleaseMetadata{
		TagName: result.TagName,
		Assets:  make([]entities.ReleaseAsset, len(result.Assets)),
	}
	for i, a := range result.Assets {
		meta.Assets[i] = entities.ReleaseAsset{
			Name:        a.Name,
			DownloadURL: a.BrowserDownloadURL,
		}
	}

	g.logger.Debug("fetched latest release",
		interfaces.F("tag", meta.TagName),
		interfaces.F("assets", len(meta.Assets)))

	return meta, nil
}

// SelectAsset returns the first asset built for platform
func (g *HTTPGitHubGateway) SelectAsset(meta *entities.ReleaseMetadata, platform entities.PlatformIdentity) (*entities.ReleaseAsset, error) {
	if meta != nil {
		for i := range meta.Assets {
			if platform.MatchesAsset(meta.Assets[i].Name) {
				return &meta.Assets[i], nil
			}
		}
	}
	return nil, &entities.ResolutionError{
		Op:  "version",
		Err: fmt.Errorf("%w: suffix %s", entities.ErrAssetNotFound, platform.AssetSuffix()),
	}
}

// ResolveRedirect fetches the asset's redirect page and returns the binary location it links to
func (g *HTTPGitHubGateway) ResolveRedirect(ctx context.Context, assetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", &entities.ResolutionError{Op: "redirect", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &entities.ResolutionError{Op: "redirect", Err: fmt.Errorf("failed to get redirect page: %w", err)}
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &entities.ResolutionError{Op: "redirect", Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &entities.ResolutionError{Op: "redirect", Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))}
	}

	target, err := ParseRedirectPage(string(body))
	if err != nil {
		return "", &entities.ResolutionError{Op: "redirect", Err: err}
	}

	return target, nil
}

// ParseRedirectPage extracts the href of a GitHub redirect page and undoes its &amp; escaping
func ParseRedirectPage(body string) (string, error) {
	match := redirectPagePattern.FindStringSubmatch(body)
	if match == nil {
		return "", entities.ErrRedirectNotFound
	}

	target := match[redirectPagePattern.SubexpIndex("url")]
	if target == "" {
		return "", entities.ErrRedirectNotFound
	}

	return strings.ReplaceAll(target, "&amp;", "&"), nil
}

// ResolveDownloadURL runs the full lookup: latest release, platform asset, redirect target
func (g *HTTPGitHubGateway) ResolveDownloadURL(ctx context.Context, platform entities.PlatformIdentity) (string, error) {
	meta, err := g.FetchLatestRelease(ctx)
	if err != nil {
		return "", err
	}

	asset, err := g.SelectAsset(meta, platform)
	if err != nil {
		return "", err
	}

	return g.ResolveRedirect(ctx, asset.DownloadURL)
}

