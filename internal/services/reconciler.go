package services

import (
	"context"
	"log/slog"
	"time"
)

// Reconciler periodically sweeps for transfers the processor accepted whose
// local balance writes never landed, and settles them.
type Reconciler struct {
	payments *PaymentService
	interval time.Duration
	minAge   time.Duration
}

func NewReconciler(p *PaymentService, interval, minAge time.Duration) *Reconciler {
	return &Reconciler{payments: p, interval: interval, minAge: minAge}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.payments.Reconcile(ctx, r.minAge)
			if err != nil {
				slog.Error("reconcile sweep", "err", err)
				continue
			}
			if n > 0 {
				slog.Info("reconcile sweep", "repaired", n)
			}
		}
	}
}
