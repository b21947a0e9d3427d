// Package worker runs short background jobs off the request path, mainly
// payment-customer provisioning after signup.
package worker

import "sync"

const queueDepth = 1024

type Job func()

type Pool struct {
	wg   sync.WaitGroup
	jobs chan Job
}

// NewPool starts n workers draining a shared queue. Submit blocks once
// queueDepth jobs are waiting, throttling producers instead of dropping work.
func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan Job, queueDepth)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(j Job) { p.jobs <- j }

// Stop lets queued jobs finish and waits for in-flight ones.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
