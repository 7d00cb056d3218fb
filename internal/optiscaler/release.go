// Package optiscaler downloads, installs, and removes OptiScaler builds
// for individual games, and keeps a log of what was installed where.
package optiscaler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAPIURL is the OptiScaler releases feed on GitHub.
const DefaultAPIURL = "https://api.github.com/repos/optiscaler/OptiScaler/releases"

// Client fetches OptiScaler builds from a GitHub releases API.
type Client struct {
	APIURL string
	HTTP   *http.Client
}

func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		APIURL: apiURL,
		HTTP:   &http.Client{Timeout: 5 * time.Minute},
	}
}

type release struct {
	TagName    string  `json:"tag_name"`
	Prerelease bool    `json:"prerelease"`
	Assets     []asset `json:"assets"`
}

type asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// DownloadNightly fetches the newest nightly (or prerelease) archive into
// destDir and returns its path. When no nightly exists the latest stable
// release is used instead.
func (c *Client) DownloadNightly(ctx context.Context, destDir string) (string, error) {
	releases, err := c.releases(ctx)
	if err != nil {
		return "", err
	}
	for _, rel := range releases {
		if !rel.Prerelease && rel.TagName != "nightly" {
			continue
		}
		if a, ok := archiveAsset(rel); ok {
			return c.download(ctx, a, destDir)
		}
	}
	if len(releases) > 0 {
		if a, ok := archiveAsset(releases[0]); ok {
			return c.download(ctx, a, destDir)
		}
	}
	return "", fmt.Errorf("no downloadable releases found at %s", c.APIURL)
}

func archiveAsset(rel release) (asset, bool) {
	for _, a := range rel.Assets {
		if strings.HasSuffix(a.Name, ".zip") || strings.HasSuffix(a.Name, ".7z") {
			return a, true
		}
	}
	return asset{}, false
}

func (c *Client) releases(ctx context.Context) ([]release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch releases: unexpected status %s", resp.Status)
	}
	var rels []release
	if err := json.NewDecoder(resp.Body).Decode(&rels); err != nil {
		return nil, fmt.Errorf("decode releases: %w", err)
	}
	return rels, nil
}

func (c *Client) download(ctx context.Context, a asset, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.DownloadURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", a.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", a.Name, resp.Status)
	}

	dest := filepath.Join(destDir, a.Name)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}
	return dest, nil
}
