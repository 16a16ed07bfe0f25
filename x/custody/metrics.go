package custody

import (
	"github.com/iov-one/custody/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts engine calls. A nil *Metrics is valid and records nothing.
type Metrics struct {
	spends *prometheus.CounterVec
	nonce  prometheus.Gauge
}

// NewMetrics registers the engine collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		spends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "custody",
			Name:      "spend_total",
			Help:      "Number of spend requests by authorization path and result.",
		}, []string{"path", "result"}),
		nonce: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "custody",
			Name:      "nonce",
			Help:      "Current nonce of joint spends.",
		}),
	}
	for _, c := range []prometheus.Collector{m.spends, m.nonce} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrDuplicate, "register collector: %s", err)
		}
	}
	return m, nil
}

func (m *Metrics) observeSpend(path string, err error) {
	if m == nil {
		return
	}
	m.spends.WithLabelValues(path, resultLabel(err)).Inc()
}

func (m *Metrics) setNonce(n uint64) {
	if m == nil {
		return
	}
	m.nonce.Set(float64(n))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case ErrTransfer.Is(err):
		return "transfer_failed"
	case errors.ErrUnauthorized.Is(err):
		return "unauthorized"
	case ErrRateLimit.Is(err):
		return "rate_limited"
	case errors.ErrSignature.Is(err):
		return "invalid_signature"
	}
	return "invalid"
}
