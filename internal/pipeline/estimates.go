package pipeline

import (
	"math"

	"github.com/theirongolddev/studioplan/internal/model"
)

// TrainerMonth is one trainer's realized volume and cost for a month.
type TrainerMonth struct {
	Trainer      model.Trainer
	Lessons      float64 // realized individual hours
	GroupLessons float64 // realized group hours
	Cost         float64
	GrossRevenue float64 // list-price revenue the trainer's hours bring in
}

// EarningsLabel names what Cost means for the trainer's compensation type.
func (tm TrainerMonth) EarningsLabel() string {
	switch tm.Trainer.Type {
	case model.TrainerSalary:
		return "commission"
	case model.TrainerFreelance:
		return "payout"
	case model.TrainerOwner:
		return "social security"
	}
	return ""
}

// TrainerEstimates returns an unadjusted month for each trainer, in roster
// order.
func TrainerEstimates(sc model.Scenario) []TrainerMonth {
	out := make([]TrainerMonth, 0, len(sc.Trainers))
	for _, t := range sc.Trainers {
		out = append(out, trainerMonth(sc, t, model.Adjustments{}))
	}
	return out
}

// PackageEstimate is the expected monthly package count per stream.
type PackageEstimate struct {
	Individual int
	Group      int
}

// EstimatedPackages rounds the unadjusted monthly sales up to whole
// packages. Display only; the engine keeps fractional sales.
func EstimatedPackages(sc model.Scenario) PackageEstimate {
	var pt, group float64
	for _, tm := range TrainerEstimates(sc) {
		pt += tm.Lessons
		group += tm.GroupLessons
	}
	return PackageEstimate{
		Individual: int(math.Ceil(pt / lessonsPerPackage)),
		Group:      int(math.Ceil(group * sc.Startup.StationCount / lessonsPerPackage)),
	}
}
