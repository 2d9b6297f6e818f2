package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	names []string
	jobs  []job
}

// NewJobManager takes the retry job and, when retention is configured,
// the purge job. purge may be nil.
func NewJobManager(retry *NotificationRetryJob, purge *PurgeTerminalOrdersJob) *JobManager {
	jm := &JobManager{}
	if retry != nil {
		jm.add("notification retry", retry)
	}
	if purge != nil {
		jm.add("purge terminal orders", purge)
	}
	return jm
}

func (jm *JobManager) add(name string, j job) {
	jm.names = append(jm.names, name)
	jm.jobs = append(jm.jobs, j)
}

// StartAll starts every job. If one fails, the ones already started are
// stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.Stop()
	}
}
