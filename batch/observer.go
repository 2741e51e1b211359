package batch

import "time"

// Observer 接收批处理通知。回调在工作 goroutine 中同步调用，
// 宿主环境需要自行切换到 UI 线程；回调中不应长时间阻塞。
type Observer interface {
	OnStarted(total int)
	OnProgress(s Snapshot)
	OnFinished(r Result)
}

// ObserverFuncs 用函数实现 Observer，未设置的回调被忽略。
type ObserverFuncs struct {
	Started  func(total int)
	Progress func(s Snapshot)
	Finished func(r Result)
}

func (o ObserverFuncs) OnStarted(total int) {
	if o.Started != nil {
		o.Started(total)
	}
}

func (o ObserverFuncs) OnProgress(s Snapshot) {
	if o.Progress != nil {
		o.Progress(s)
	}
}

func (o ObserverFuncs) OnFinished(r Result) {
	if o.Finished != nil {
		o.Finished(r)
	}
}

// Recorder 接收批处理指标，metrics.Collector 满足该接口。
type Recorder interface {
	BatchStarted()
	RecordProcessed(ok bool, pages int)
	SaveObserved(d time.Duration)
	BatchFinished(outcome string)
}
