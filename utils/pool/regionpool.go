/*
 * Copyright 2024 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package pool provides the region scheduler: tasks touching the same region
// of the world run serially on one worker, different regions run in parallel.
//
// Package pool 提供区域调度器：同一区域的任务在同一个工作者上串行执行，
// 不同区域的任务并行执行。
package pool

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/utils/runtime"
)

var (
	// ErrPoolStopped is returned by RunAt after Stop.
	ErrPoolStopped = errors.New("region pool stopped")
	// ErrQueueFull is returned when a region has QueueSize pending tasks.
	ErrQueueFull = errors.New("region queue is full")
)

const (
	// DefaultRegionShift groups blocks into 16x16 columns.
	DefaultRegionShift = types.DefaultRegionShift
	DefaultQueueSize   = 256
)

// Region identifies a column of the world owned by one worker.
type Region struct {
	World string
	X, Z  int
}

func (r Region) String() string {
	return fmt.Sprintf("%s(%d,%d)", r.World, r.X, r.Z)
}

// RegionPool runs tasks on the worker owning the task's region. Workers are
// created on demand and stopped after MaxIdleWorkerDuration without work.
//
// RegionPool 在拥有任务所在区域的工作者上执行任务。工作者按需创建，
// 空闲超过 MaxIdleWorkerDuration 后停止。
//
// Usage Example:
//
//	pool := &RegionPool{Shift: 4, MaxIdleWorkerDuration: 10 * time.Second}
//	pool.Start()
//	defer pool.Stop()
//
//	err := pool.RunAt(pos, func() {
//	  // touch the block at pos
//	})
type RegionPool struct {
	// Shift is the number of low coordinate bits sharing a region.
	Shift uint
	// MaxIdleWorkerDuration is how long a worker may stay idle. Default 10s.
	MaxIdleWorkerDuration time.Duration
	// QueueSize bounds the pending tasks per region. Default 256.
	QueueSize int
	// Logger reports panicking tasks. Default types.DefaultLogger().
	Logger types.Logger

	lock     sync.Mutex
	workers  map[Region]*regionWorker
	mustStop bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
	startOne sync.Once
}

var _ types.Scheduler = (*RegionPool)(nil)

type regionWorker struct {
	region      Region
	ch          chan func()
	lastUseTime time.Time
	// pending counts queued and running tasks
	pending int32
}

// NewRegionPool creates and starts a pool.
func NewRegionPool(shift uint, logger types.Logger) *RegionPool {
	wp := &RegionPool{Shift: shift, Logger: logger}
	wp.Start()
	return wp
}

// RegionOf returns the region owning pos.
func (wp *RegionPool) RegionOf(pos types.BlockPos) Region {
	return Region{World: pos.World, X: pos.X >> wp.Shift, Z: pos.Z >> wp.Shift}
}

// Start starts the idle worker cleaner. It is safe to call more than once.
func (wp *RegionPool) Start() {
	wp.startOne.Do(func() {
		wp.lock.Lock()
		if wp.workers == nil {
			wp.workers = make(map[Region]*regionWorker)
		}
		if wp.Logger == nil {
			wp.Logger = types.DefaultLogger()
		}
		wp.stopCh = make(chan struct{})
		stopCh := wp.stopCh
		wp.lock.Unlock()

		go func() {
			ticker := time.NewTicker(wp.getMaxIdleWorkerDuration())
			defer ticker.Stop()
			for {
				select {
				case <-stopCh:
					return
				case <-ticker.C:
					wp.clean()
				}
			}
		}()
	})
}

// Stop rejects new tasks and waits for queued tasks to finish.
func (wp *RegionPool) Stop() {
	wp.lock.Lock()
	if wp.mustStop {
		wp.lock.Unlock()
		return
	}
	wp.mustStop = true
	if wp.stopCh != nil {
		close(wp.stopCh)
	}
	for region, w := range wp.workers {
		close(w.ch)
		delete(wp.workers, region)
	}
	wp.lock.Unlock()
	wp.wg.Wait()
}

// RunAt queues task on the worker owning pos. It never blocks.
func (wp *RegionPool) RunAt(pos types.BlockPos, task func()) error {
	if task == nil {
		return nil
	}
	region := wp.RegionOf(pos)

	wp.lock.Lock()
	defer wp.lock.Unlock()
	if wp.mustStop {
		return ErrPoolStopped
	}
	if wp.workers == nil {
		wp.workers = make(map[Region]*regionWorker)
	}
	w, ok := wp.workers[region]
	if !ok {
		w = &regionWorker{region: region, ch: make(chan func(), wp.getQueueSize())}
		wp.workers[region] = w
		wp.wg.Add(1)
		go wp.workerFunc(w)
	}
	select {
	case w.ch <- task:
		atomic.AddInt32(&w.pending, 1)
		w.lastUseTime = time.Now()
		return nil
	default:
		return ErrQueueFull
	}
}

// Len returns the number of live region workers.
func (wp *RegionPool) Len() int {
	wp.lock.Lock()
	defer wp.lock.Unlock()
	return len(wp.workers)
}

func (wp *RegionPool) getMaxIdleWorkerDuration() time.Duration {
	if wp.MaxIdleWorkerDuration <= 0 {
		return 10 * time.Second
	}
	return wp.MaxIdleWorkerDuration
}

func (wp *RegionPool) getQueueSize() int {
	if wp.QueueSize <= 0 {
		return DefaultQueueSize
	}
	return wp.QueueSize
}

// clean stops workers that have no pending task and were idle for longer than
// MaxIdleWorkerDuration. A worker is only dropped while nothing is queued on
// it, so a region never has two workers running at once.
func (wp *RegionPool) clean() {
	criticalTime := time.Now().Add(-wp.getMaxIdleWorkerDuration())
	wp.lock.Lock()
	defer wp.lock.Unlock()
	for region, w := range wp.workers {
		if atomic.LoadInt32(&w.pending) == 0 && criticalTime.After(w.lastUseTime) {
			close(w.ch)
			delete(wp.workers, region)
		}
	}
}

func (wp *RegionPool) workerFunc(w *regionWorker) {
	defer wp.wg.Done()
	for fn := range w.ch {
		wp.run(w.region, fn)
		atomic.AddInt32(&w.pending, -1)
	}
}

func (wp *RegionPool) run(region Region, fn func()) {
	defer func() {
		if e := recover(); e != nil && wp.Logger != nil {
			wp.Logger.Printf("region %s task panic: %v\n%s", region, e, runtime.Stack(2))
		}
	}()
	fn()
}
