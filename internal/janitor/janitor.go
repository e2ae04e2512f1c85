package janitor

import (
	"os"
	"path"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slidelens/slidelens/internal/core/runner"
	"github.com/slidelens/slidelens/internal/metrics"
	"github.com/slidelens/slidelens/internal/utils/log"
)

// Janitor removes per-request temp directories left behind by requests that
// never finished, e.g. after a crash.
type Janitor struct {
	cron    *cron.Cron
	basedir string
	max_age time.Duration
	now     func() time.Time
}

func New(basedir string, schedule string, max_age time.Duration) (*Janitor, error) {
	j := &Janitor{
		cron:    cron.New(),
		basedir: basedir,
		max_age: max_age,
		now:     time.Now,
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.Sweep() }); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
	log.Info("janitor started, sweeping %s", path.Join(j.basedir, "tmp"))
}

// Stop waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep removes stale temp dirs and returns how many were removed.
func (j *Janitor) Sweep() int {
	root := path.Join(j.basedir, "tmp")
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("janitor: read %s: %v", root, err)
		}
		return 0
	}

	removed := 0
	deadline := j.now().Add(-j.max_age)
	for _, entry := range entries {
		if !entry.IsDir() || !runner.IsTempDirName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(deadline) {
			continue
		}
		if err := os.RemoveAll(path.Join(root, entry.Name())); err != nil {
			log.Warn("janitor: remove %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	if removed > 0 {
		metrics.JanitorRemovedTotal.Add(float64(removed))
		log.Info("janitor removed %d stale temp dirs", removed)
	}
	return removed
}
