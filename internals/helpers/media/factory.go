package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fisiocatania_backend/internals/configs"
)

// New picks the backend named by MEDIA_DRIVER.
func New(ctx context.Context, cfg *configs.Config) (Store, error) {
	switch cfg.Media.Driver {
	case "oss":
		return NewOSSStore(cfg.OSS)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	case "memory":
		log.Warn().Msg("media: in-memory store, uploads are lost on restart")
		return NewMemoryStore(), nil
	case "", "none":
		log.Warn().Msg("media: disabled, uploads will be rejected")
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.Media.Driver)
	}
}
