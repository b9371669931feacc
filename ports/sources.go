package ports

import (
	"context"

	"teamcomp/domain/boss"
)

// ImageLookup maps an image filename to a displayable URL. An empty URL
// with a nil error means the service knows no image for the filename.
type ImageLookup interface {
	LookupImage(ctx context.Context, filename string) (string, error)
}

// BossSource fetches the raw table payload behind one page endpoint
type BossSource interface {
	FetchBoss(ctx context.Context, endpoint string) (*boss.Payload, error)
}
