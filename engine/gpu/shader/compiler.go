package shader

import (
	"sync"

	"github.com/spaghettifunk/tegrastate/engine/containers"
	"github.com/spaghettifunk/tegrastate/engine/core"
)

// Stage identifies a shader stage for compilation (spec.md §4.6).
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
)

// CompileStatus is the terminal state of a compile job (spec.md §4.6
// "reports success/failure").
type CompileStatus uint8

const (
	CompilePending CompileStatus = iota
	CompileSucceeded
	CompileFailed
)

// Module is a validated host-API shader module, or the failure that
// prevented producing one (spec.md §7 class 3: "Host API failures during
// compilation... captured on the compile task, surfaced as a Failure
// status on the program").
type Module struct {
	Status CompileStatus
	Binary []byte
	Err    error
}

// WaitHandle lets a caller block until a submitted compile finishes
// (spec.md §4.6: "compilation is asynchronous, exposes a wait handle").
type WaitHandle struct {
	done   chan struct{}
	result Module
}

// Wait blocks until the job completes and returns its result. Per
// spec.md §5 "Cancellation and timeouts", there is no timeout: a
// compiling program blocks its first draw by design.
func (w *WaitHandle) Wait() Module {
	<-w.done
	return w.result
}

type compileJob struct {
	stage  Stage
	source string
	handle *WaitHandle
}

// lockPool is the teacher's named-group mutex pool
// (engine/renderer/vulkan/pool.go's VulkanLockPool), trimmed to the one
// group this spec actually needs: the shader-compiler option builder.
type lockPool struct {
	mu    sync.Mutex
	locks map[lockGroup]*sync.Mutex
}

type lockGroup string

const shaderOptionBuilder lockGroup = "shader_option_builder"

func newLockPool() *lockPool {
	return &lockPool{locks: make(map[lockGroup]*sync.Mutex)}
}

func (p *lockPool) lock(group lockGroup) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.locks[group]; !ok {
		p.locks[group] = &sync.Mutex{}
	}
	p.locks[group].Lock()
	return p.locks[group]
}

// safeCall runs fn holding group's mutex, matching VulkanLockPool.SafeCall.
func (p *lockPool) safeCall(group lockGroup, fn func() error) error {
	l := p.lock(group)
	defer l.Unlock()
	return fn()
}

// optionBuilder stands in for the underlying shader-compiler's option
// object (spec.md §4.6, §9: "the underlying compiler's option constructor
// is not internally synchronized"). Construction and disposal are the
// only two operations that require the lock; compilation itself runs
// lock-free once options are captured (spec.md §9 "Concurrency of the
// shader compiler option builder").
type optionBuilder struct {
	locks *lockPool
}

func newOptionBuilder() optionBuilder {
	return optionBuilder{locks: newLockPool()}
}

func (b *optionBuilder) build(stage Stage) func() {
	var dispose func()
	b.locks.safeCall(shaderOptionBuilder, func() error {
		// Constructing the real option object (target profile, optimization
		// level, stage-specific defines) would happen here under the lock.
		dispose = func() {
			b.locks.safeCall(shaderOptionBuilder, func() error {
				// Disposing the real option object would happen here under
				// the same lock.
				return nil
			})
		}
		return nil
	})
	return dispose
}

// Compiler is the Shader Compiler collaborator (spec.md §4.6). It is out
// of scope to implement the actual ISA translation (spec.md §1
// Non-goals); this type only owns the asynchronous job plumbing a real
// compiler backend would be plugged into.
//
// The pending-job queue is the teacher's fixed-capacity ring buffer
// (engine/containers.RingQueue), guarded by its own mutex here since the
// teacher's original was single-threaded and this queue is now fed from
// the draw thread and drained by worker goroutines.
type Compiler struct {
	queueMu sync.Mutex
	queue   *containers.RingQueue
	notify  chan struct{}

	options optionBuilder

	workers  int
	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup

	translate func(stage Stage, source string) ([]byte, error)
}

// NewCompiler starts a worker pool of `workers` goroutines draining a
// queue of at most `queueCapacity` pending jobs. `translate` is the
// actual guest-ISA-to-host-binary backend, supplied by the caller since
// it is out of scope here.
func NewCompiler(workers, queueCapacity int, translate func(stage Stage, source string) ([]byte, error)) *Compiler {
	c := &Compiler{
		queue:     containers.NewRingQueue(queueCapacity),
		notify:    make(chan struct{}, queueCapacity),
		options:   newOptionBuilder(),
		workers:   workers,
		stop:      make(chan struct{}),
		translate: translate,
	}
	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.run()
	}
	return c
}

// Submit enqueues a compile job and returns a handle the caller can wait
// on (spec.md §4.6). Source is assumed already pre-transformed for
// host-API semantic gaps (VertexID→VertexIndex-BaseVertex etc.) by the
// caller, per spec.md §4.6's last sentence.
func (c *Compiler) Submit(stage Stage, source string) *WaitHandle {
	handle := &WaitHandle{done: make(chan struct{})}
	job := compileJob{stage: stage, source: source, handle: handle}

	c.queueMu.Lock()
	err := c.queue.Enqueue(job)
	c.queueMu.Unlock()

	if err != nil {
		// Queue saturated: fail the job immediately rather than block the
		// draw thread that called Submit (spec.md §5 "no suspension points
		// in the hot path" — Submit itself must never block).
		handle.result = Module{Status: CompileFailed, Err: err}
		close(handle.done)
		return handle
	}

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return handle
}

func (c *Compiler) run() {
	defer c.wg.Done()
	for {
		select {
		case <-c.stop:
			return
		case <-c.notify:
		}

		for {
			c.queueMu.Lock()
			raw, err := c.queue.Dequeue()
			c.queueMu.Unlock()
			if err != nil {
				break
			}
			job := raw.(compileJob)
			dispose := c.options.build(job.stage)
			binary, err := c.translate(job.stage, job.source)
			dispose()

			if err != nil {
				core.LogWarn("shader compile failed for stage %d: %v", job.stage, err)
				job.handle.result = Module{Status: CompileFailed, Err: err}
			} else {
				job.handle.result = Module{Status: CompileSucceeded, Binary: binary}
			}
			close(job.handle.done)
		}
	}
}

// Close stops the worker pool and waits for every worker to return. A
// worker that is already draining the queue keeps dequeuing until the
// queue is empty; a worker waiting for work may return without taking
// queued jobs, so jobs still queued after every worker has returned are
// abandoned (their handles never close) — callers are expected to Close
// only at channel teardown.
func (c *Compiler) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}
