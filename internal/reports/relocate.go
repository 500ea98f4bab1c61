package reports

import (
	"errors"
	"fmt"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"gorm.io/gorm"
)

// ErrRelocationConflict is returned when a selected colonist no longer
// matches the selection at commit time. Nothing is changed.
var ErrRelocationConflict = errors.New("colonist changed since selection")

// RelocationRequest selects colonists living in FromModule younger than
// MaxAge and moves them to ToModule.
type RelocationRequest struct {
	FromModule string
	MaxAge     int
	ToModule   string
}

// Confirmer approves a relocation before anything is written.
type Confirmer interface {
	Confirm(candidates []models.Colonist, target string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(candidates []models.Colonist, target string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(candidates []models.Colonist, target string) (bool, error) {
	return f(candidates, target)
}

// Confirmed is a Confirmer with a fixed answer, for callers that take the
// decision up front (an API flag).
type Confirmed bool

// Confirm implements Confirmer.
func (c Confirmed) Confirm([]models.Colonist, string) (bool, error) {
	return bool(c), nil
}

// Transition records one colonist's move.
type Transition struct {
	ColonistID uint64
	Name       string
	Age        int
	From       string
	To         string
}

// RelocationResult reports what a relocation selected and changed.
// Candidates are the selected colonists as they were read. BeforeCount is
// the number selected in FromModule before the run and AfterCount how many
// of them are still there afterwards.
type RelocationResult struct {
	Candidates  []models.Colonist
	Confirmed   bool
	BeforeCount int
	AfterCount  int
	Transitions []Transition
}

// Changed is the number of colonists moved.
func (r *RelocationResult) Changed() int {
	return len(r.Transitions)
}

// Relocate moves the selected colonists once confirm approves. A nil confirm
// refuses. All moves are committed in one transaction or none are.
func Relocate(db *gorm.DB, req RelocationRequest, confirm Confirmer) (*RelocationResult, error) {
	if req.FromModule == req.ToModule {
		return nil, fmt.Errorf("source and target module are both %q", req.FromModule)
	}

	candidates := []models.Colonist{}
	err := db.Where("address = ?", req.FromModule).
		Where("age < ?", req.MaxAge).
		Order("id").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to select colonists for relocation: %w", err)
	}

	result := &RelocationResult{
		Candidates:  append([]models.Colonist(nil), candidates...),
		BeforeCount: len(candidates),
		AfterCount:  len(candidates),
		Transitions: []Transition{},
	}
	if len(candidates) == 0 {
		return result, nil
	}

	if confirm == nil {
		return result, nil
	}
	ok, err := confirm.Confirm(candidates, req.ToModule)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm relocation: %w", err)
	}
	if !ok {
		return result, nil
	}
	result.Confirmed = true

	transitions := make([]Transition, 0, len(candidates))
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range candidates {
			c := &candidates[i]
			res := tx.Model(c).
				Where("address = ?", req.FromModule).
				Where("age < ?", req.MaxAge).
				Update("address", req.ToModule)
			if res.Error != nil {
				return fmt.Errorf("failed to relocate colonist %d: %w", c.ID, res.Error)
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("%w: colonist %d", ErrRelocationConflict, c.ID)
			}
			transitions = append(transitions, Transition{
				ColonistID: c.ID,
				Name:       c.DisplayName(),
				Age:        c.Age,
				From:       req.FromModule,
				To:         req.ToModule,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Transitions = transitions
	result.AfterCount = result.BeforeCount - len(transitions)
	return result, nil
}
