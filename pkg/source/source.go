// Package source resolves dictionary locations (paths and URIs) into
// dictionary.Source implementations.
//
// Supported forms:
//
//	/path/to/list.txt             local file
//	https://host/list.txt         HTTP(S) GET
//	s3://bucket/key               Amazon S3 or an S3-compatible endpoint
//	azblob://account/container/blob
//	github://owner/repo/path@ref  file contents via the GitHub API
//	redis://host:6379/0?key=set   members of a Redis set
//	sqlite:///path/to/words.db    a database built with "pwmeter dict import"
//
// A ".gz", ".zst" or ".7z" suffix on the final path element is decompressed
// transparently.
package source

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// ErrUnsupportedScheme is returned by Parse for unknown URI schemes.
var ErrUnsupportedScheme = errors.New("unsupported dictionary scheme")

// Options configures remote backends.
type Options struct {
	// HTTPClient is used for http(s) sources. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// GitHubToken authenticates github:// sources. Optional for public repos.
	GitHubToken string
	// GitHubBaseURL overrides the API endpoint (GitHub Enterprise).
	GitHubBaseURL string

	// S3Endpoint overrides the S3 endpoint (MinIO, R2). Path-style
	// addressing is used when set.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	// S3RoleARN is assumed through STS before reading the object.
	S3RoleARN string

	// AzureConnectionString authenticates azblob:// sources. Without it the
	// container must allow anonymous reads.
	AzureConnectionString string

	Logger types.DebugLogger
}

// Parse resolves location into a Source. Plain paths (no scheme) are files.
func Parse(location string, opts Options) (dictionary.Source, error) {
	if location == "" {
		return nil, fmt.Errorf("empty dictionary location")
	}
	if opts.Logger == nil {
		opts.Logger = types.NoopLogger{}
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return withArchive(File(location)), nil
	}

	var src dictionary.Source
	switch u.Scheme {
	case "file":
		src = File(u.Path)
	case "http", "https":
		src = HTTP(location, opts.HTTPClient)
	case "s3":
		src, err = newS3(u, opts)
	case "azblob":
		src, err = newAzure(u, opts)
	case "github":
		src, err = newGitHub(u, opts)
	case "redis", "rediss":
		src, err = newRedis(u)
	case "sqlite":
		src, err = newSQLite(u)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	return withArchive(src), nil
}

// ParseAll resolves every location, failing on the first bad one.
func ParseAll(locations []string, opts Options) ([]dictionary.Source, error) {
	sources := make([]dictionary.Source, 0, len(locations))
	for _, loc := range locations {
		src, err := Parse(loc, opts)
		if err != nil {
			return nil, fmt.Errorf("dictionary %q: %w", loc, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// isWindowsDrive treats "C:" style prefixes as paths rather than schemes.
func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1
}

// redact strips credentials from a URI for log output.
func redact(u *url.URL) string {
	return u.Redacted()
}

// splitFirst splits "a/b/c" into "a" and "b/c".
func splitFirst(p string) (string, string) {
	p = strings.TrimPrefix(p, "/")
	head, tail, _ := strings.Cut(p, "/")
	return head, tail
}
