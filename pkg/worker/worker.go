package worker

import (
	"sync"

	"github.com/ssafuel/station-gateway/pkg/logger"
)

type Handler = func(workerIndex int, job interface{})

// Manager is a fixed-size goroutine pool fed by a buffered job channel.
// Enqueue distributes jobs among the workers; Exit stops all workers after
// the jobs already picked up finish. Jobs still buffered in the channel at
// Exit time are dropped.
type Manager struct {
	bufferSize     int
	jobChannel     chan interface{}
	numberOfWorker int
	stop           chan struct{}
	do             Handler
	waiter         sync.WaitGroup
}

func NewManager(bufferSize, numberOfWorkers int) *Manager {
	return &Manager{
		bufferSize:     bufferSize,
		numberOfWorker: numberOfWorkers,
		jobChannel:     make(chan interface{}, bufferSize),
		stop:           make(chan struct{}),
	}
}

func (w *Manager) SetWorker(handler Handler) {
	w.do = handler
}

func (w *Manager) Pending() int64 {
	return int64(len(w.jobChannel))
}

// Enqueue publishes a job onto the channel. Blocks when the buffer is full,
// which applies backpressure to the producer.
func (w *Manager) Enqueue(job interface{}) {
	w.jobChannel <- job
}

// EnqueueUntil publishes a job, giving up when cancel closes. Returns false
// when the job was not accepted. Producers that must never block past
// shutdown, such as delivery callbacks, use this instead of Enqueue.
func (w *Manager) EnqueueUntil(cancel <-chan struct{}, job interface{}) bool {
	select {
	case w.jobChannel <- job:
		return true
	case <-cancel:
		return false
	}
}

// Start runs the workers and blocks until Exit is called.
func (w *Manager) Start() {
	w.waiter.Add(w.numberOfWorker)
	for i := 0; i < w.numberOfWorker; i++ {
		go func(index int) {
			defer w.waiter.Done()
			for {
				select {
				case job := <-w.jobChannel:
					w.do(index, job)
				case <-w.stop:
					return
				}
			}
		}(i)
	}
	w.waiter.Wait()
}

// Exit stops all workers and waits for in-flight jobs to finish.
func (w *Manager) Exit() {
	logger.Info("worker manager shutting down")
	close(w.stop)
	w.waiter.Wait()
}
