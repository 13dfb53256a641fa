package db

import (
	"context"

	"github.com/BenjaminWie/docu-buddy/types"
)

// DB receives a finished ranking. It never influences the ranking itself.
type DB interface {
	Initialize(ctx context.Context) error
	StoreRanking(ctx context.Context, ranking types.Ranking) error
}
