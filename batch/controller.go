// Package batch 按顺序驱动标签渲染器处理一批记录，负责进度通知、取消与保存。
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ByLCY/barcoder/label"
	"github.com/ByLCY/barcoder/renderer"
)

// ErrBusy 表示控制器已有批次在运行。
var ErrBusy = errors.New("batch: 已有批次在运行")

// Request 描述一次批处理。Records 应只包含完整记录。
type Request struct {
	Records  []label.Record
	Path     string
	Label    label.Label
	Category label.Category // 为零时使用 Label.Category
	Mode     label.QuantityMode
	Fonts    []label.Font
}

// Factory 为一次批处理构造渲染器，字体注册等配置错误应在此返回。
type Factory func(req Request) (renderer.Renderer, error)

// pageCounter 由能报告已绘制页数的渲染器实现，用于指标。
type pageCounter interface {
	PageCount() int
}

// Controller 是批处理状态机: Idle → Running → Completed | Cancelled | Failed。
// 同一时刻只运行一个批次，批次内记录严格按输入顺序串行处理。
type Controller struct {
	factory  Factory
	observer Observer
	logger   *slog.Logger
	recorder Recorder

	mu     sync.Mutex
	state  State
	done   chan struct{}
	result Result

	cancelled atomic.Bool
}

// Option 配置 Controller。
type Option func(*Controller)

// WithObserver 设置通知观察者。
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger 设置日志记录器。
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics 设置指标记录器。
func WithMetrics(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithFactory 替换默认的渲染器工厂。
func WithFactory(f Factory) Option {
	return func(c *Controller) {
		if f != nil {
			c.factory = f
		}
	}
}

// NewController 创建处于 Idle 状态的控制器。
func NewController(opts ...Option) *Controller {
	c := &Controller{
		factory:  DefaultFactory,
		observer: ObserverFuncs{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State 返回当前状态。
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cancel 请求取消当前批次。取消只在记录之间生效，正在绘制的记录会先完成。
func (c *Controller) Cancel() {
	c.cancelled.Store(true)
}

// Start 构造渲染器并在后台开始处理。配置错误同步返回，此时不会启动后台任务。
func (c *Controller) Start(ctx context.Context, req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		return ErrBusy
	}

	if req.Category == 0 {
		req.Category = req.Label.Category
	}
	if req.Category != req.Label.Category {
		return fmt.Errorf("%w: 标签 %q 属于 %s，不能用于 %s", label.ErrConfiguration, req.Label.Name, req.Label.Category, req.Category)
	}
	if req.Mode == 0 {
		req.Mode = label.QuantityShort
	}

	r, err := c.factory(req)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	c.state = StateRunning
	c.result = Result{}
	c.done = make(chan struct{})
	c.cancelled.Store(false)

	go c.run(ctx, runID, req, r, c.done)
	return nil
}

// Wait 阻塞至当前批次结束并返回结果。未启动过批次时立即返回零值。
func (c *Controller) Wait() Result {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return Result{}
	}
	<-done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Run 同步执行一个批次。
func (c *Controller) Run(ctx context.Context, req Request) (Result, error) {
	if err := c.Start(ctx, req); err != nil {
		return Result{}, err
	}
	return c.Wait(), nil
}

func (c *Controller) run(ctx context.Context, runID string, req Request, r renderer.Renderer, done chan struct{}) {
	start := time.Now()
	total := len(req.Records)
	logger := c.logger.With("run", runID, "label", req.Label.Name, "category", req.Category.String())

	if c.recorder != nil {
		c.recorder.BatchStarted()
	}
	logger.Info("batch started", "records", total, "mode", req.Mode.String(), "path", req.Path)
	c.observer.OnStarted(total)

	var p progress
	for _, rec := range req.Records {
		if c.stopRequested(ctx) {
			p.cancelled = true
			break
		}

		p.current = rec
		c.observer.OnProgress(p.snapshot(runID, total))

		before := pages(r)
		err := r.Draw(rec)
		drawn := pages(r) - before
		if err != nil {
			p.failed++
			p.failures = append(p.failures, rec)
			logger.Warn("record skipped", "record", label.Describe(rec), "error", err)
		} else {
			p.succeeded++
		}
		p.processed++
		if c.recorder != nil {
			c.recorder.RecordProcessed(err == nil, drawn)
		}
		c.observer.OnProgress(p.snapshot(runID, total))
	}

	state := StateCompleted
	if p.cancelled {
		state = StateCancelled
		logger.Info("batch cancelled", "processed", p.processed)
	}

	saveStart := time.Now()
	saveErr := r.Save()
	if c.recorder != nil {
		c.recorder.SaveObserved(time.Since(saveStart))
	}
	if saveErr != nil {
		p.fatal = true
		state = StateFailed
		logger.Error("save failed", "error", saveErr)
	}

	res := Result{
		RunID:         runID,
		State:         state,
		Fatal:         p.fatal,
		Total:         total,
		Processed:     p.processed,
		Succeeded:     p.succeeded,
		Failed:        p.failed,
		FailedRecords: p.failures,
		Path:          req.Path,
		Err:           saveErr,
		Duration:      time.Since(start),
	}
	if c.recorder != nil {
		c.recorder.BatchFinished(string(res.Outcome()))
	}
	logger.Info("batch finished",
		"outcome", res.Outcome(),
		"processed", res.Processed,
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"duration", res.Duration,
	)

	c.mu.Lock()
	c.state = state
	c.result = res
	c.mu.Unlock()

	c.observer.OnFinished(res)
	close(done)
}

func (c *Controller) stopRequested(ctx context.Context) bool {
	if c.cancelled.Load() {
		return true
	}
	return ctx.Err() != nil
}

func pages(r renderer.Renderer) int {
	if pc, ok := r.(pageCounter); ok {
		return pc.PageCount()
	}
	return 0
}
