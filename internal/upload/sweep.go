package upload

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// staleAfter is how long a staged file may outlive its request before the
// sweeper reaps it. Normal requests delete their own files; this catches
// leftovers from crashed handlers and failed best-effort deletes.
const staleAfter = time.Hour

// StartSweep schedules a periodic sweep of the staging directory and
// returns the running scheduler so the caller can stop it on shutdown.
func (s *Store) StartSweep(interval time.Duration) *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(interval).Do(func() {
		if err := s.Sweep(staleAfter); err != nil {
			log.Printf("upload sweep failed: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("upload sweep job started")

	return scheduler
}
