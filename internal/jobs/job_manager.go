package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
}

func NewJobManager() *JobManager {
	return &JobManager{}
}

// Add registers a job. A nil job is ignored, which is how disabled jobs are
// left out.
func (jm *JobManager) Add(name string, job Job) *JobManager {
	if job != nil {
		jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
	}
	return jm
}

// StartAll starts jobs in registration order. If one fails, the jobs already
// started are stopped again.
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

// StopAll stops started jobs in reverse order and waits for running ones.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
