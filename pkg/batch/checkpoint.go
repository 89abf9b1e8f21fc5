package batch

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds enough state to resume an interrupted batch run:
// which job indices have already been processed and their outcomes,
// adapted from the teacher's pkg/result.Checkpoint (CompletedTarget,
// Rules) turned into the batch domain's (Done, Outcomes) pair.
type Checkpoint struct {
	Done     map[int]bool
	Outcomes []Outcome
}

// SaveCheckpoint writes ckpt to path via gob, the same persistence
// format the teacher's SaveCheckpoint uses.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	if ckpt.Done == nil {
		ckpt.Done = make(map[int]bool)
	}
	return &ckpt, nil
}

// Checkpoint snapshots the pool's current Table into a Checkpoint,
// marking every job index seen so far as done.
func (wp *WorkerPool) Checkpoint() *Checkpoint {
	outcomes := wp.Results.Outcomes()
	done := make(map[int]bool, len(outcomes))
	for _, o := range outcomes {
		done[o.Index] = true
	}
	return &Checkpoint{Done: done, Outcomes: outcomes}
}

// Pending filters jobs down to those not already marked done in ckpt,
// letting a resumed run skip work a prior run already completed.
func Pending(jobs []Job, ckpt *Checkpoint) []Job {
	if ckpt == nil || len(ckpt.Done) == 0 {
		return jobs
	}
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if !ckpt.Done[j.Index] {
			out = append(out, j)
		}
	}
	return out
}
