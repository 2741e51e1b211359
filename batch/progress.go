package batch

import (
	"fmt"
	"time"

	"github.com/ByLCY/barcoder/label"
)

// State 是批处理的运行状态。
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal 报告状态是否为终态。
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// Outcome 是面向用户的最终结果分类。
type Outcome string

const (
	OutcomeCompleted Outcome = "completed" // 全部成功
	OutcomeDegraded  Outcome = "degraded"  // 已保存，但部分记录未生成
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed" // 保存失败，输出无效
)

// progress 是控制器独占的可变运行状态。
type progress struct {
	current   label.Record
	processed int
	succeeded int
	failed    int
	failures  []label.Record
	cancelled bool
	fatal     bool
}

// Snapshot 是某一时刻进度的副本，可安全地交给观察者。
type Snapshot struct {
	RunID     string       `json:"runId"`
	Total     int          `json:"total"`
	Current   label.Record `json:"current,omitempty"`
	Processed int          `json:"processed"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Cancelled bool         `json:"cancelled"`
}

// Result 是批处理结束时的汇总。
type Result struct {
	RunID         string         `json:"runId"`
	State         State          `json:"state"`
	Fatal         bool           `json:"fatal"`
	Total         int            `json:"total"`
	Processed     int            `json:"processed"`
	Succeeded     int            `json:"succeeded"`
	Failed        int            `json:"failed"`
	FailedRecords []label.Record `json:"failedRecords,omitempty"`
	Path          string         `json:"path"`
	Err           error          `json:"-"`
	Duration      time.Duration  `json:"duration"`
}

// Outcome 将结果归类为全部成功、部分跳过、取消或保存失败。
func (r Result) Outcome() Outcome {
	switch {
	case r.Fatal || r.State == StateFailed:
		return OutcomeFailed
	case r.State == StateCancelled:
		return OutcomeCancelled
	case r.Failed > 0:
		return OutcomeDegraded
	default:
		return OutcomeCompleted
	}
}

func (p *progress) snapshot(runID string, total int) Snapshot {
	return Snapshot{
		RunID:     runID,
		Total:     total,
		Current:   p.current,
		Processed: p.processed,
		Succeeded: p.succeeded,
		Failed:    p.failed,
		Cancelled: p.cancelled,
	}
}
