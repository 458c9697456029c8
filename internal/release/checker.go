// Package release checks GitHub for newer sonoprep releases and replaces
// the running binary with one.
package release

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/mod/semver"
)

const (
	defaultOwner           = "abhisek"
	defaultRepo            = "sonoprep"
	defaultBaseURL         = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultTimeout         = 15 * time.Second
)

// Checker talks to the GitHub releases API.
type Checker struct {
	client          *resty.Client
	baseURL         string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithDownloadBaseURL overrides the host release assets are fetched from.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.downloadBaseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.SetTimeout(d) }
}

// WithRepo points the checker at another GitHub repository.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker returns a Checker for the sonoprep repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/vnd.github+json").
			SetHeader("User-Agent", "sonoprep-release-check"),
		baseURL:         defaultBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           defaultOwner,
		repo:            defaultRepo,
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with input.Version.
// A development build always reports an update as available.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	var rel githubRelease
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&rel).
		ForceContentType("application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode())
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("fetch latest release: response has no tag_name")
	}

	return &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: IsNewer(rel.TagName, input.Version),
	}, nil
}

// IsNewer reports whether latest is a higher semantic version than current.
// Versions without a leading "v" are accepted. An unparseable current
// version counts as older than any valid latest version.
func IsNewer(latest, current string) bool {
	l, cur := canonical(latest), canonical(current)
	if !semver.IsValid(l) {
		return false
	}
	if !semver.IsValid(cur) {
		return true
	}
	return semver.Compare(l, cur) > 0
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
