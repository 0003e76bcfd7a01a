package cache

import (
	"context"
	"strings"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Open builds a cache from a backend spec:
//
//	none                      NullCache
//	file                      FileCache in defaultDir
//	file:/path/to/dir         FileCache in the given directory
//	redis://host:port/db      RedisCache (rediss:// for TLS)
//
// An empty spec is "file".
func Open(ctx context.Context, spec, defaultDir string) (Cache, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "none" || spec == "off":
		return NewNullCache(), nil
	case spec == "" || spec == "file":
		return openFile(defaultDir)
	case strings.HasPrefix(spec, "file:"):
		return openFile(strings.TrimPrefix(spec, "file:"))
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		c, err := NewRedisCache(ctx, RedisConfig{URL: spec})
		if err != nil {
			return nil, clerrors.Wrap(clerrors.ErrCodeNetwork, err, "open redis cache")
		}
		return c, nil
	default:
		return nil, clerrors.New(clerrors.ErrCodeInvalidInput,
			"unknown cache backend %q (use none, file[:dir] or redis://host:port/db)", spec)
	}
}

func openFile(dir string) (Cache, error) {
	if dir == "" {
		return nil, clerrors.New(clerrors.ErrCodeInvalidPath, "file cache needs a directory")
	}
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, clerrors.Wrap(clerrors.ErrCodeInvalidPath, err, "open file cache %s", dir)
	}
	return c, nil
}
