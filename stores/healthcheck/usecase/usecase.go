package usecase

import (
	"sync"
	"time"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	hcdomain "github.com/x-xyz/market/domain/healthcheck"
)

const defaultTimeout = 2 * time.Second

type impl struct {
	repo    hcdomain.HealthCheckRepo
	timeout time.Duration
}

func New(repo hcdomain.HealthCheckRepo, timeout time.Duration) hcdomain.HealthCheckUsecase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &impl{
		repo:    repo,
		timeout: timeout,
	}
}

// Check pings every dependency in parallel, each bounded by the timeout.
func (im *impl) Check(c ctx.Ctx) *hcdomain.Report {
	names := im.repo.Names()
	res := &hcdomain.Report{Healthy: true, Components: make(map[string]string, len(names))}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			pc, cancel := ctx.WithTimeout(c, im.timeout)
			defer cancel()
			err := im.repo.Ping(pc, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.WithFields(log.Fields{"err": err, "component": name}).Error("ping failed")
				res.Healthy = false
				res.Components[name] = err.Error()
				return
			}
			res.Components[name] = hcdomain.StatusOK
		}(name)
	}
	wg.Wait()
	return res
}
