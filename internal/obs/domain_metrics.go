package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoicesCreatedTotal counts invoices recorded at checkout by payment mode.
	InvoicesCreatedTotal *prometheus.CounterVec
	// InvoiceGrandTotal accumulates billed rupees by payment mode.
	InvoiceGrandTotal *prometheus.CounterVec
	// CreditSettlementsTotal counts credit-book settlements.
	CreditSettlementsTotal prometheus.Counter
	// GSTReportsTotal counts GST report builds by outcome.
	GSTReportsTotal *prometheus.CounterVec
	// ExportsTotal counts CSV/backup exports by entity.
	ExportsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoicesCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Count of invoices created by payment mode.",
		}, []string{"payment_mode"})
		InvoiceGrandTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_grand_total_rupees",
			Help:      "Sum of invoice grand totals in rupees by payment mode.",
		}, []string{"payment_mode"})
		CreditSettlementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_settlements_total",
			Help:      "Count of credit-book settlements recorded.",
		})
		GSTReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gst_reports_total",
			Help:      "Count of GST report builds by result.",
		}, []string{"result"})
		ExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Count of data exports by entity.",
		}, []string{"entity"})

		mustRegisterCollector(reg, InvoicesCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoicesCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, InvoiceGrandTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoiceGrandTotal = v
			}
		})
		mustRegisterCollector(reg, CreditSettlementsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CreditSettlementsTotal = v
			}
		})
		mustRegisterCollector(reg, GSTReportsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				GSTReportsTotal = v
			}
		})
		mustRegisterCollector(reg, ExportsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ExportsTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
