package stage

import "context"

// Health reports whether a stage has what it needs to run.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

func Unhealthy(name, detail string) Health {
	return Health{Name: name, Detail: detail}
}

// CheckAll collects the health of every non-nil handler in order.
func CheckAll(ctx context.Context, handlers ...Handler) []Health {
	out := make([]Health, 0, len(handlers))
	for _, h := range handlers {
		if h == nil {
			continue
		}
		out = append(out, h.HealthCheck(ctx))
	}
	return out
}
