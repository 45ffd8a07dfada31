package store

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"staffboard/internal/model"
)

// distributeRounds bounds the round-robin loop so the pass terminates even
// with very large capacities.
const distributeRounds = 10

// Result reports the outcome of a distribution pass.
type Result struct {
	Assigned int    `json:"assigned"`
	Eligible int    `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Distribute reallocates eligible workers across eligible areas.
//
// A worker is eligible when it is active and not currently placed in a locked
// (auto_assignable=false) area; such placements are protected and left
// untouched. An area is eligible when auto_assignable is true. Both sets are
// shuffled independently, then workers are dealt round-robin across the
// shuffled area list so allocation spreads evenly before any single area
// fills. Workers left over after the round budget stay unassigned; that is a
// normal outcome, not an error.
func (s *Store) Distribute() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Result{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Worker ids protected by a locked-area placement.
		var protectedIDs []uint
		if err := tx.Model(&model.Assignment{}).
			Where("area_id IN (?)", tx.Model(&model.Area{}).Select("id").Where("auto_assignable = ?", false)).
			Pluck("worker_id", &protectedIDs).Error; err != nil {
			return err
		}
		protected := make(map[uint]bool, len(protectedIDs))
		for _, id := range protectedIDs {
			protected[id] = true
		}

		// Clear placements into eligible areas and unassigned rows; locked
		// placements stay as they are.
		if err := tx.Model(&model.Assignment{}).
			Where("area_id IS NULL OR area_id IN (?)",
				tx.Model(&model.Area{}).Select("id").Where("auto_assignable = ?", true)).
			Update("area_id", nil).Error; err != nil {
			return err
		}

		var activeWorkers []model.Worker
		if err := tx.Where("status = ?", model.StatusActive).Find(&activeWorkers).Error; err != nil {
			return err
		}
		workers := make([]model.Worker, 0, len(activeWorkers))
		for _, w := range activeWorkers {
			if !protected[w.ID] {
				workers = append(workers, w)
			}
		}
		res.Eligible = len(workers)

		var areas []model.Area
		if err := tx.Where("auto_assignable = ?", true).Find(&areas).Error; err != nil {
			return err
		}

		if len(workers) == 0 {
			res.Reason = "no eligible workers to distribute"
			return nil
		}
		if len(areas) == 0 {
			res.Reason = "no areas available for assignment"
			return nil
		}

		rand.Shuffle(len(workers), func(i, j int) { workers[i], workers[j] = workers[j], workers[i] })
		rand.Shuffle(len(areas), func(i, j int) { areas[i], areas[j] = areas[j], areas[i] })

		// Eligible areas were just cleared, so every one starts empty.
		occupancy := make(map[uint]int, len(areas))

		cursor := 0
		now := time.Now()
		for round := 0; round < distributeRounds && cursor < len(workers); round++ {
			for _, area := range areas {
				if cursor >= len(workers) {
					break
				}
				if occupancy[area.ID] >= area.Capacity {
					continue
				}
				worker := workers[cursor]
				if err := tx.Model(&model.Assignment{}).
					Where("worker_id = ?", worker.ID).
					Updates(map[string]interface{}{"area_id": area.ID, "assigned_at": now}).Error; err != nil {
					return err
				}
				occupancy[area.ID]++
				cursor++
				res.Assigned++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
