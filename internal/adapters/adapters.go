package adapters

import (
	"context"

	"cbrrates/internal/domain"
)

type RateClient interface {
	GetDailyXML(ctx context.Context, date domain.DateKey) ([]byte, error)
}
