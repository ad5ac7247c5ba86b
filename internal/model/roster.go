package model

// Roster helpers. Trainers are plain values keyed by ID: additions append,
// removals filter, edits replace.

// FindTrainer returns the index of the trainer with id, or -1.
func FindTrainer(trainers []Trainer, id string) int {
	for i, t := range trainers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// AddTrainer returns a new roster with t appended.
func AddTrainer(trainers []Trainer, t Trainer) []Trainer {
	out := make([]Trainer, 0, len(trainers)+1)
	out = append(out, trainers...)
	return append(out, t)
}

// RemoveTrainer returns a new roster without the trainer with id.
func RemoveTrainer(trainers []Trainer, id string) []Trainer {
	out := make([]Trainer, 0, len(trainers))
	for _, t := range trainers {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// ReplaceTrainer returns a new roster where the entry sharing t.ID is
// replaced by t. The second result is false if no such entry exists.
func ReplaceTrainer(trainers []Trainer, t Trainer) ([]Trainer, bool) {
	out := append([]Trainer(nil), trainers...)
	i := FindTrainer(out, t.ID)
	if i < 0 {
		return out, false
	}
	out[i] = t
	return out, true
}
