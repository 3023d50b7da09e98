package exporter

// ProgressEvent 导出进度
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// progressReporter 百分比限制在 0..100，只上报递增的值
type progressReporter struct {
	fn   func(ProgressEvent)
	last int
}

func newProgressReporter(fn func(ProgressEvent)) *progressReporter {
	return &progressReporter{fn: fn, last: -1}
}

func (r *progressReporter) report(percent int, stage string) {
	if r.fn == nil {
		return
	}
	percent = min(max(percent, 0), 100)
	if percent <= r.last {
		return
	}
	r.last = percent
	r.fn(ProgressEvent{Percent: percent, Stage: stage})
}
