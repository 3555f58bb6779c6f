package source

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/redis/go-redis/v9"
)

// redisScanCount is the COUNT hint passed to SSCAN.
const redisScanCount = 1000

// setScanner is the part of the Redis client used here.
type setScanner interface {
	SScan(ctx context.Context, key string, cursor uint64, match string, count int64) *redis.ScanCmd
}

type redisSource struct {
	name string
	key  string

	// newClient is replaced in tests.
	newClient func() (setScanner, io.Closer, error)
}

// newRedis parses redis://[user:pass@]host:port[/db]?key=setname. The key
// parameter is consumed here; the rest goes to redis.ParseURL.
func newRedis(u *url.URL) (*redisSource, error) {
	q := u.Query()
	key := q.Get("key")
	if key == "" {
		return nil, fmt.Errorf("redis location needs a ?key= parameter naming the set")
	}
	q.Del("key")

	clean := *u
	clean.RawQuery = q.Encode()
	connURL := clean.String()

	return &redisSource{
		name: redact(u),
		key:  key,
		newClient: func() (setScanner, io.Closer, error) {
			opt, err := redis.ParseURL(connURL) // e.g. rediss://default:<token>@host:port
			if err != nil {
				return nil, nil, err
			}
			rdb := redis.NewClient(opt)
			return rdb, rdb, nil
		},
	}, nil
}

func (r *redisSource) Name() string { return r.name }

// Open streams the set members through a pipe as SSCAN pages arrive.
func (r *redisSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client, closer, err := r.newClient()
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}

	pr, pw := io.Pipe()
	go func() {
		defer closer.Close()
		pw.CloseWithError(r.scan(ctx, client, pw))
	}()
	return pr, nil
}

func (r *redisSource) scan(ctx context.Context, client setScanner, w io.Writer) error {
	var cursor uint64
	for {
		members, next, err := client.SScan(ctx, r.key, cursor, "", redisScanCount).Result()
		if err != nil {
			return fmt.Errorf("scanning %s: %w", r.key, err)
		}
		for _, m := range members {
			if _, err := io.WriteString(w, m+"\n"); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
