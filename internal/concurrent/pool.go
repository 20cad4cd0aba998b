package custcon

import (
	"github.com/CE-Thesis-2023/infiniti/internal/logger"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

func New(size int) *ants.Pool {
	pool, err := ants.NewPool(
		size,
		ants.WithPreAlloc(true),
		ants.WithNonblocking(false),
		ants.WithLogger(logger.NewZapToAntsLogger(logger.Logger())),
	)
	if err != nil {
		logger.SFatal("pool.New: create worker pool failed",
			zap.Int("size", size),
			zap.Error(err))
		return nil
	}
	return pool
}
