package renderer

import (
	"image/color"
	"runtime"
	"sync"
)

// ScanlineTask represents one image row to render
type ScanlineTask struct {
	Row int // Image row, 0 at the top
}

// ScanlineResult contains a rendered row
type ScanlineResult struct {
	Row     int
	Pixels  []color.RGBA
	Samples int
}

// WorkerPool manages parallel scanline rendering.
// Workers share only read-only scene data; each task builds its own sampler.
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting a whole frame never blocks.
func NewWorkerPool(rt *Raytracer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, maxTasks),
		resultQueue: make(chan ScanlineResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   rt,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	view := w.raytracer.renderView()
	integ := w.raytracer.activeIntegrator()

	for task := range w.taskQueue {
		pixels := w.raytracer.renderScanline(view, integ, task.Row)
		w.resultQueue <- ScanlineResult{
			Row:     task.Row,
			Pixels:  pixels,
			Samples: len(pixels) * view.SamplingConfig.SamplesPerPixel,
		}
	}
}
