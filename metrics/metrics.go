// Package metrics 收集批量生成标签的 Prometheus 指标。
//
// 指标:
//   - barcoder_records_processed_total{result="succeeded|failed"}: 已处理记录数
//   - barcoder_pages_drawn_total: 已绘制页数（按数量展开后）
//   - barcoder_batches_total{outcome="completed|degraded|cancelled|failed"}: 批次结果
//   - barcoder_save_duration_seconds: 保存 PDF 耗时
//   - barcoder_batch_in_progress: 正在运行的批次数
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector Prometheus 指标收集器，方法均可并发调用。
type Collector struct {
	records    *prometheus.CounterVec
	pages      prometheus.Counter
	batches    *prometheus.CounterVec
	saveTime   prometheus.Histogram
	inProgress prometheus.Gauge

	registry *prometheus.Registry
}

// NewCollector 创建收集器并注册到独立的 Registry。
func NewCollector() *Collector {
	c := &Collector{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barcoder_records_processed_total",
			Help: "Records processed by batch runs, by result",
		}, []string{"result"}),
		pages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barcoder_pages_drawn_total",
			Help: "Label pages drawn",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barcoder_batches_total",
			Help: "Finished batch runs, by outcome",
		}, []string{"outcome"}),
		saveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "barcoder_save_duration_seconds",
			Help:    "Time spent writing the PDF document",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		inProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "barcoder_batch_in_progress",
			Help: "Batch runs currently executing",
		}),
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(c.records, c.pages, c.batches, c.saveTime, c.inProgress)
	return c
}

// Registry 返回收集器使用的 Registry。
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// BatchStarted 记录批次开始。
func (c *Collector) BatchStarted() { c.inProgress.Inc() }

// RecordProcessed 记录一条记录的处理结果及其绘制的页数。
func (c *Collector) RecordProcessed(ok bool, pages int) {
	if ok {
		c.records.WithLabelValues("succeeded").Inc()
	} else {
		c.records.WithLabelValues("failed").Inc()
	}
	if pages > 0 {
		c.pages.Add(float64(pages))
	}
}

// SaveObserved 记录一次保存耗时。
func (c *Collector) SaveObserved(d time.Duration) { c.saveTime.Observe(d.Seconds()) }

// BatchFinished 记录批次结果。
func (c *Collector) BatchFinished(outcome string) {
	c.inProgress.Dec()
	c.batches.WithLabelValues(outcome).Inc()
}

// Handler 返回 /metrics HTTP 处理器。
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
