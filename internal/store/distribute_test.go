package store

import (
	"testing"

	"staffboard/internal/model"
)

func makeWorkers(t *testing.T, s *Store, n int) []*model.Worker {
	t.Helper()
	workers := make([]*model.Worker, n)
	for i := range workers {
		w, err := s.CreateWorker("Worker", "")
		if err != nil {
			t.Fatalf("create worker: %v", err)
		}
		workers[i] = w
	}
	return workers
}

func TestDistribute_Scenario(t *testing.T) {
	s := testStore(t)

	// 3 eligible areas with capacities {2,2,1}, 4 eligible active workers.
	for _, capacity := range []int{2, 2, 1} {
		if _, err := s.CreateArea("Area", capacity); err != nil {
			t.Fatalf("create area: %v", err)
		}
	}
	makeWorkers(t, s, 4)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if res.Assigned != 4 {
		t.Errorf("expected 4 workers assigned, got %d", res.Assigned)
	}
	if res.Eligible != 4 {
		t.Errorf("expected 4 eligible workers, got %d", res.Eligible)
	}

	assertCapacityRespected(t, s)

	var unplaced int64
	s.db.Model(&model.Assignment{}).Where("area_id IS NULL").Count(&unplaced)
	if unplaced != 0 {
		t.Errorf("total capacity covers all workers, yet %d stayed unassigned", unplaced)
	}
}

func TestDistribute_NoAreas(t *testing.T) {
	s := testStore(t)

	w, _ := s.CreateWorker("Alice", "")

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if res.Assigned != 0 {
		t.Errorf("expected 0 assigned, got %d", res.Assigned)
	}
	if res.Reason == "" {
		t.Error("expected an explanatory reason for the no-op pass")
	}

	var assignment model.Assignment
	s.db.Where("worker_id = ?", w.ID).First(&assignment)
	if assignment.AreaID != nil {
		t.Error("no-op pass must not modify assignments")
	}
}

func TestDistribute_NoEligibleWorkers(t *testing.T) {
	s := testStore(t)

	s.CreateArea("Gate", 5)
	w, _ := s.CreateWorker("Alice", "")
	s.SetStatus(w.ID, model.StatusBreak)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if res.Assigned != 0 || res.Eligible != 0 {
		t.Errorf("expected no-op, got assigned=%d eligible=%d", res.Assigned, res.Eligible)
	}
	if res.Reason == "" {
		t.Error("expected an explanatory reason for the no-op pass")
	}
}

func TestDistribute_BreakWorkersSkipped(t *testing.T) {
	s := testStore(t)

	s.CreateArea("Gate", 10)
	active := makeWorkers(t, s, 3)
	resting, _ := s.CreateWorker("Resting", "")
	s.SetStatus(resting.ID, model.StatusBreak)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if res.Assigned != len(active) {
		t.Errorf("expected %d assigned, got %d", len(active), res.Assigned)
	}

	var assignment model.Assignment
	s.db.Where("worker_id = ?", resting.ID).First(&assignment)
	if assignment.AreaID != nil {
		t.Error("workers on break must not be placed")
	}
}

func TestDistribute_ProtectedPlacementUntouched(t *testing.T) {
	s := testStore(t)

	locked, _ := s.CreateArea("Control Room", 3)
	if err := s.SetAreaAutoAssign(locked.ID, false); err != nil {
		t.Fatalf("lock area: %v", err)
	}
	s.CreateArea("Gate", 10)

	protected, _ := s.CreateWorker("Protected", "")
	if err := s.Assign(protected.ID, &locked.ID); err != nil {
		t.Fatalf("assign protected worker: %v", err)
	}
	makeWorkers(t, s, 4)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}

	// The protected worker keeps its placement and is not counted eligible.
	var assignment model.Assignment
	s.db.Where("worker_id = ?", protected.ID).First(&assignment)
	if assignment.AreaID == nil || *assignment.AreaID != locked.ID {
		t.Error("distribution pass must not move a protected worker")
	}
	if res.Eligible != 4 {
		t.Errorf("expected 4 eligible workers, got %d", res.Eligible)
	}

	// The locked area's occupant set is exactly the protected worker.
	var occupants []model.Assignment
	s.db.Where("area_id = ?", locked.ID).Find(&occupants)
	if len(occupants) != 1 || occupants[0].WorkerID != protected.ID {
		t.Errorf("locked area occupant set changed: %+v", occupants)
	}
}

func TestDistribute_LockedAreaNeverTargeted(t *testing.T) {
	s := testStore(t)

	locked, _ := s.CreateArea("Control Room", 10)
	s.SetAreaAutoAssign(locked.ID, false)
	makeWorkers(t, s, 5)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if res.Assigned != 0 {
		t.Errorf("locked area is the only area; expected 0 assigned, got %d", res.Assigned)
	}
	if got := occupancy(t, s, locked.ID); got != 0 {
		t.Errorf("expected locked area to stay empty, got %d occupants", got)
	}
}

func TestDistribute_CapacityRespected(t *testing.T) {
	s := testStore(t)

	for _, capacity := range []int{1, 2, 3} {
		s.CreateArea("Area", capacity)
	}
	makeWorkers(t, s, 20)

	res, err := s.Distribute()
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	// Total capacity is 6; the rest stay unassigned without error.
	if res.Assigned != 6 {
		t.Errorf("expected 6 assigned, got %d", res.Assigned)
	}
	assertCapacityRespected(t, s)

	var unplaced int64
	s.db.Model(&model.Assignment{}).Where("area_id IS NULL").Count(&unplaced)
	if unplaced != 14 {
		t.Errorf("expected 14 unplaced workers, got %d", unplaced)
	}
}

func TestDistribute_RepeatedPassesStayWithinCapacity(t *testing.T) {
	s := testStore(t)

	for _, capacity := range []int{2, 2} {
		s.CreateArea("Area", capacity)
	}
	makeWorkers(t, s, 5)

	for i := 0; i < 5; i++ {
		if _, err := s.Distribute(); err != nil {
			t.Fatalf("distribute pass %d: %v", i, err)
		}
		assertCapacityRespected(t, s)
	}
}

func assertCapacityRespected(t *testing.T, s *Store) {
	t.Helper()
	var areas []model.Area
	if err := s.db.Find(&areas).Error; err != nil {
		t.Fatalf("load areas: %v", err)
	}
	for _, area := range areas {
		if got := occupancy(t, s, area.ID); got > int64(area.Capacity) {
			t.Errorf("area %d over capacity: %d > %d", area.ID, got, area.Capacity)
		}
	}
}
