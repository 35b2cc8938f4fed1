package healthcheck

import (
	"github.com/x-xyz/market/base/ctx"
)

const StatusOK = "ok"

// Report maps every checked dependency to StatusOK or its error.
type Report struct {
	Healthy    bool              `json:"healthy"`
	Components map[string]string `json:"components"`
}

type HealthCheckUsecase interface {
	Check(c ctx.Ctx) *Report
}

// HealthCheckRepo pings one dependency per name.
type HealthCheckRepo interface {
	Names() []string
	Ping(c ctx.Ctx, name string) error
}
