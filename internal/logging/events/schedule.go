package events

import (
	"time"

	"github.com/atomicstack/uinav/internal/logging"
)

type ScheduleTracer struct{}

var Schedule = ScheduleTracer{}

func (ScheduleTracer) Queue(key string, delay time.Duration, superseded bool) {
	logging.Trace("schedule.queue", map[string]interface{}{
		"key":        key,
		"delayMs":    delay.Milliseconds(),
		"superseded": superseded,
	})
}

func (ScheduleTracer) Cancel(key string) {
	logging.Trace("schedule.cancel", map[string]interface{}{"key": key})
}

func (ScheduleTracer) Fire(key string, late time.Duration) {
	logging.Trace("schedule.fire", map[string]interface{}{"key": key, "lateMs": late.Milliseconds()})
}
