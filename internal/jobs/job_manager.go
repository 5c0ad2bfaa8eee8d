package jobs

import (
	"fmt"
)

// scheduledJob is a job JobManager can start and stop.
type scheduledJob interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

type namedJob struct {
	name string
	job  scheduledJob
}

// NewJobManager creates a job manager. A nil job is disabled and skipped.
func NewJobManager(pricingJob *PricingJob, relayJob *OutboxRelayJob) *JobManager {
	jm := &JobManager{}
	if pricingJob != nil {
		jm.jobs = append(jm.jobs, namedJob{name: "pricing", job: pricingJob})
	}
	if relayJob != nil {
		jm.jobs = append(jm.jobs, namedJob{name: "outbox relay", job: relayJob})
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops all started jobs gracefully, in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}

// Len reports how many jobs are enabled.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
