package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"staffboard/internal/model"
)

// Store is the single mutation authority over the roster. All mutating
// operations serialize on one mutex and run inside one transaction, so a
// capacity check can never interleave with another writer's commit.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// New creates a store over an already-migrated database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Snapshot is the full roster state pushed to observers.
type Snapshot struct {
	Workers     []model.Worker     `json:"workers"`
	Areas       []model.Area       `json:"areas"`
	Assignments []model.Assignment `json:"assignments"`
	Teams       []model.Team       `json:"teams"`
}

// Snapshot reads the full roster state in one read transaction.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Workers:     []model.Worker{},
		Areas:       []model.Area{},
		Assignments: []model.Assignment{},
		Teams:       []model.Team{},
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&snap.Workers).Error; err != nil {
			return err
		}
		if err := tx.Order("id").Find(&snap.Areas).Error; err != nil {
			return err
		}
		if err := tx.Order("id").Find(&snap.Assignments).Error; err != nil {
			return err
		}
		return tx.Order("id").Find(&snap.Teams).Error
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Assign places a worker into an area, or unassigns it when areaID is nil.
// The occupancy check excludes the worker itself, so re-assigning a worker to
// its current area always succeeds.
func (s *Store) Assign(workerID uint, areaID *uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findWorker(tx, workerID); err != nil {
			return err
		}

		if areaID != nil {
			var area model.Area
			if err := tx.First(&area, *areaID).Error; err != nil {
				return notFound(err, ErrAreaNotFound)
			}

			var occupancy int64
			if err := tx.Model(&model.Assignment{}).
				Where("area_id = ? AND worker_id != ?", *areaID, workerID).
				Count(&occupancy).Error; err != nil {
				return err
			}
			if occupancy >= int64(area.Capacity) {
				return &CapacityError{Capacity: area.Capacity}
			}
		}

		return upsertAssignment(tx, workerID, areaID)
	})
}

// SetStatus changes a worker's status. Assignments are untouched.
func (s *Store) SetStatus(workerID uint, status string) error {
	if !model.ValidStatus(status) {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findWorker(tx, workerID); err != nil {
			return err
		}
		return tx.Model(&model.Worker{}).Where("id = ?", workerID).
			Update("status", status).Error
	})
}

// CreateWorker creates a worker and its unassigned Assignment row as one
// unit. A failure on either side rolls back both.
func (s *Store) CreateWorker(name, radio string) (*model.Worker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	worker := &model.Worker{Name: name, Radio: radio, Status: model.StatusActive}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(worker).Error; err != nil {
			return err
		}
		return tx.Create(&model.Assignment{WorkerID: worker.ID, AssignedAt: time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// UpdateWorker edits a worker's name, radio label and status.
func (s *Store) UpdateWorker(workerID uint, name, radio, status string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if !model.ValidStatus(status) {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findWorker(tx, workerID); err != nil {
			return err
		}
		return tx.Model(&model.Worker{}).Where("id = ?", workerID).
			Updates(map[string]interface{}{"name": name, "radio": radio, "status": status}).Error
	})
}

// DeleteWorker removes a worker and its Assignment row in one transaction.
func (s *Store) DeleteWorker(workerID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findWorker(tx, workerID); err != nil {
			return err
		}
		if err := tx.Delete(&model.Worker{}, workerID).Error; err != nil {
			return err
		}
		return tx.Where("worker_id = ?", workerID).Delete(&model.Assignment{}).Error
	})
}

// CreateArea creates an area. Capacity defaults when not positive.
func (s *Store) CreateArea(name string, capacity int) (*model.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if capacity <= 0 {
		capacity = model.DefaultAreaCapacity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	area := &model.Area{Name: name, Capacity: capacity, AutoAssignable: true}
	if err := s.db.Create(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

// UpdateArea edits an area's name and capacity.
func (s *Store) UpdateArea(areaID uint, name string, capacity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if capacity <= 0 {
		capacity = model.DefaultAreaCapacity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findArea(tx, areaID); err != nil {
			return err
		}
		return tx.Model(&model.Area{}).Where("id = ?", areaID).
			Updates(map[string]interface{}{"name": name, "capacity": capacity}).Error
	})
}

// SetAreaAutoAssign toggles whether the fair-distribution pass may touch the area.
func (s *Store) SetAreaAutoAssign(areaID uint, autoAssignable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findArea(tx, areaID); err != nil {
			return err
		}
		return tx.Model(&model.Area{}).Where("id = ?", areaID).
			Update("auto_assignable", autoAssignable).Error
	})
}

// DeleteArea removes an area and nulls every assignment referencing it in the
// same transaction. Workers and their Assignment rows survive.
func (s *Store) DeleteArea(areaID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findArea(tx, areaID); err != nil {
			return err
		}
		if err := tx.Delete(&model.Area{}, areaID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Assignment{}).Where("area_id = ?", areaID).
			Update("area_id", nil).Error
	})
}

// CreateTeam creates a team label.
func (s *Store) CreateTeam(name string) (*model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team := &model.Team{Name: name}
	if err := s.db.Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes a team and clears it from every worker referencing it.
func (s *Store) DeleteTeam(teamID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var team model.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			return notFound(err, ErrTeamNotFound)
		}
		if err := tx.Delete(&model.Team{}, teamID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Worker{}).Where("team_id = ?", teamID).
			Update("team_id", nil).Error
	})
}

// AssignTeam sets or clears a worker's team label.
func (s *Store) AssignTeam(workerID uint, teamID *uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := findWorker(tx, workerID); err != nil {
			return err
		}
		if teamID != nil {
			var team model.Team
			if err := tx.First(&team, *teamID).Error; err != nil {
				return notFound(err, ErrTeamNotFound)
			}
		}
		return tx.Model(&model.Worker{}).Where("id = ?", workerID).
			Update("team_id", teamID).Error
	})
}

// ResetAll unassigns every worker.
func (s *Store) ResetAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Model(&model.Assignment{}).Where("1 = 1").
		Update("area_id", nil).Error
}

// upsertAssignment updates the worker's Assignment row, inserting it if the
// row is somehow missing, and stamps the assignment time.
func upsertAssignment(tx *gorm.DB, workerID uint, areaID *uint) error {
	var assignment model.Assignment
	err := tx.Where("worker_id = ?", workerID).First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.Assignment{
			WorkerID:   workerID,
			AreaID:     areaID,
			AssignedAt: time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&assignment).
		Updates(map[string]interface{}{"area_id": areaID, "assigned_at": time.Now()}).Error
}

func findWorker(tx *gorm.DB, workerID uint) error {
	var worker model.Worker
	if err := tx.First(&worker, workerID).Error; err != nil {
		return notFound(err, ErrWorkerNotFound)
	}
	return nil
}

func findArea(tx *gorm.DB, areaID uint) error {
	var area model.Area
	if err := tx.First(&area, areaID).Error; err != nil {
		return notFound(err, ErrAreaNotFound)
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
