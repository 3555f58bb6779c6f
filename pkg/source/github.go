package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type githubSource struct {
	owner string
	repo  string
	path  string
	ref   string

	client *github.Client
}

// newGitHub parses github://owner/repo/path/to/file@ref.
func newGitHub(u *url.URL, opts Options) (*githubSource, error) {
	repo, rest := splitFirst(u.Path)
	path, ref, _ := strings.Cut(rest, "@")
	if u.Host == "" || repo == "" || path == "" {
		return nil, fmt.Errorf("github location must be github://owner/repo/path[@ref]")
	}

	httpClient := opts.HTTPClient
	if opts.GitHubToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.GitHubToken})
		ctx := context.Background()
		if opts.HTTPClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
		}
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if opts.GitHubBaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(opts.GitHubBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub base URL: %w", err)
		}
		client.BaseURL = base
	}

	return &githubSource{
		owner:  u.Host,
		repo:   repo,
		path:   path,
		ref:    ref,
		client: client,
	}, nil
}

func (g *githubSource) Name() string {
	name := "github://" + g.owner + "/" + g.repo + "/" + g.path
	if g.ref != "" {
		name += "@" + g.ref
	}
	return name
}

func (g *githubSource) Open(ctx context.Context) (io.ReadCloser, error) {
	opts := &github.RepositoryContentGetOptions{Ref: g.ref}

	file, _, resp, err := g.client.Repositories.GetContents(ctx, g.owner, g.repo, g.path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s not found", g.Name())
		}
		return nil, fmt.Errorf("getting contents: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory", g.Name())
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding contents: %w", err)
	}
	if content == "" && file.GetSize() > 0 {
		// The contents API omits bodies over 1MB
		rc, _, err := g.client.Repositories.DownloadContents(ctx, g.owner, g.repo, g.path, opts)
		if err != nil {
			return nil, fmt.Errorf("downloading contents: %w", err)
		}
		return rc, nil
	}
	return io.NopCloser(strings.NewReader(content)), nil
}
