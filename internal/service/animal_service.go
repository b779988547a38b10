package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/store"
)

const (
	msgNoAnimals       = "No animal records found."
	msgAnimalDeleted   = "Animal record deleted successfully."
	msgAnimalIDMissing = "Animal ID not found."
	animalTypeLabel    = "animal type ="
)

// AnimalService handles animal record operations.
type AnimalService struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewAnimalService creates a new animal service.
func NewAnimalService(animalStore store.RecordStore, logger *zap.Logger) *AnimalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalService{store: animalStore, logger: logger}
}

// Add appends an animal record. Duplicate IDs are accepted.
func (s *AnimalService) Add(animal model.Animal) error {
	if err := s.store.Append(animal.Encode()); err != nil {
		return err
	}
	s.logger.Info("animal added", zap.String("id", animal.ID))
	return nil
}

// Find returns the first ID line containing id and every line after it up
// to the next "===" line. Matching is a case-sensitive substring test, so
// "5" also finds "15". A record missing its terminator runs on into the
// next one, the same span Delete removes.
func (s *AnimalService) Find(id string) (Lookup, error) {
	if err := requireKey("animal id", id); err != nil {
		return Lookup{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(msgNoAnimals), nil
	}

	header := block.AnimalSchema.Header()
	lines, found, err := s.store.FindLineRun(func(line string) bool {
		return strings.HasPrefix(line, header) && strings.Contains(line, id)
	}, block.AnimalSentinel.Matches)
	if err != nil {
		return Lookup{}, err
	}
	if !found {
		return notFound("No record found for Animal ID: " + id), nil
	}

	text := joinLines(lines)
	return Lookup{
		Found:   true,
		Count:   1,
		Text:    text,
		Message: "\n Animal Found \n" + text,
	}, nil
}

// Delete removes every animal block whose ID line contains id.
func (s *AnimalService) Delete(id string) (Removal, error) {
	if err := requireKey("animal id", id); err != nil {
		return Removal{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Removal{}, err
	}
	if !exists {
		return Removal{Message: msgNoAnimals}, nil
	}

	header := block.AnimalSchema.Header()
	removed, err := s.store.Rewrite(store.RewriteRule{
		IsTarget: func(line string) bool {
			return strings.HasPrefix(line, header) && strings.Contains(line, id)
		},
		IsEnd: block.AnimalSentinel.Matches,
	})
	if err != nil {
		return Removal{}, err
	}

	if removed == 0 {
		return Removal{Message: msgAnimalIDMissing}, nil
	}
	s.logger.Info("animals deleted", zap.String("id", id), zap.Int("removed", removed))
	return Removal{Removed: removed, Message: msgAnimalDeleted}, nil
}

// ListByType returns every animal whose type line contains typ,
// case-insensitively, in file order.
func (s *AnimalService) ListByType(typ string) (Lookup, error) {
	if err := requireKey("animal type", typ); err != nil {
		return Lookup{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(msgNoAnimals), nil
	}

	matches, err := typeMatches(s.store, animalTypeLabel, typ)
	if err != nil {
		return Lookup{}, err
	}
	if len(matches) == 0 {
		return notFound("No animal records found for type: " + typ), nil
	}

	text, message := renderMatches(matches, "\n--- Animal Record Found ---\n")
	return Lookup{Found: true, Count: len(matches), Text: text, Message: message}, nil
}

// ListAll returns the animal store verbatim.
func (s *AnimalService) ListAll() (Lookup, error) {
	return listAll(s.store, "\nAll Animal Records:\n", msgNoAnimals)
}
