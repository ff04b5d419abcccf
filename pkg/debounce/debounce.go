// Package debounce 合并短时间内的多次触发，只在静默期结束后执行一次。
package debounce

import (
	"sync"
	"time"
)

// Debouncer 尾沿防抖器：每次 Schedule 都会重置计时，静默 delay 后执行 fn
//
// gen 每次 Schedule/Flush 自增；计时器回调只在代数一致时执行，
// 已经开始等锁的过期回调因此不会提前执行 fn。runMu 串行化 fn 的执行。
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
	runMu   sync.Mutex
}

// New 创建防抖器；fn 在独立 goroutine 中执行
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Schedule 登记一次触发，重置计时
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending 是否有尚未执行的触发
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Flush 取消计时，等待正在执行的回调结束后同步执行挂起的触发；没有挂起时只等待
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	run := d.pending
	d.pending = false
	d.mu.Unlock()

	d.runMu.Lock()
	defer d.runMu.Unlock()
	if run {
		d.fn()
	}
}

// Stop 执行挂起的触发后停止，之后的 Schedule 将被忽略
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.Flush()
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	// 持有 mu 时取得 runMu，保证随后的 Flush 一定排在本次执行之后
	d.runMu.Lock()
	d.mu.Unlock()

	defer d.runMu.Unlock()
	d.fn()
}
