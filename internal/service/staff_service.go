package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/store"
	"github.com/amterp/dairy/internal/util"
)

const (
	msgNoStaff          = "No staff records found."
	msgStaffRemoved     = "Staff record removed successfully."
	msgStaffNameMissing = "Staff name not found."
	staffNameLabel      = "staff name ="
	staffTypeLabel      = "staff type ="
	staffFoundBanner    = "\n--- Staff Record Found ---\n"
)

// StaffService handles staff records and staff self-profiles.
type StaffService struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewStaffService creates a new staff service.
func NewStaffService(staffStore store.RecordStore, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{store: staffStore, logger: logger}
}

// Add appends a staff record. Duplicate names are accepted.
func (s *StaffService) Add(staff model.Staff) error {
	if err := s.store.Append(staff.Encode()); err != nil {
		return err
	}
	s.logger.Info("staff added", zap.String("name", staff.Name))
	return nil
}

// FindByKeyword returns the first line containing keyword, on any field,
// followed by the lines after it up to a dash line or a blank line.
func (s *StaffService) FindByKeyword(keyword string) (Lookup, error) {
	if err := requireKey("keyword", keyword); err != nil {
		return Lookup{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(msgNoStaff), nil
	}

	run, found, err := s.store.FindLineRun(
		func(line string) bool { return util.ContainsFold(line, keyword) },
		func(line string) bool {
			return block.DashSentinel.Matches(line) || strings.TrimSpace(line) == ""
		},
	)
	if err != nil {
		return Lookup{}, err
	}
	if !found {
		return notFound("No staff record found with keyword: " + keyword), nil
	}

	text := joinLines(run)
	return Lookup{Found: true, Count: 1, Text: text, Message: staffFoundBanner + text}, nil
}

// Remove deletes every staff block whose name line contains name,
// case-insensitively. "Amir" removes both "Amir" and "Amirah".
func (s *StaffService) Remove(name string) (Removal, error) {
	if err := requireKey("staff name", name); err != nil {
		return Removal{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Removal{}, err
	}
	if !exists {
		return Removal{Message: msgNoStaff}, nil
	}

	removed, err := s.store.Rewrite(store.RewriteRule{
		IsTarget: func(line string) bool {
			return util.ContainsFold(line, staffNameLabel) && util.ContainsFold(line, name)
		},
		IsEnd: block.DashSentinel.MatchesFull,
	})
	if err != nil {
		return Removal{}, err
	}

	if removed == 0 {
		return Removal{Message: msgStaffNameMissing}, nil
	}
	s.logger.Info("staff removed", zap.String("name", name), zap.Int("removed", removed))
	return Removal{Removed: removed, Message: msgStaffRemoved}, nil
}

// ListByType returns every staff record whose type line contains typ,
// case-insensitively, in file order.
func (s *StaffService) ListByType(typ string) (Lookup, error) {
	if err := requireKey("staff type", typ); err != nil {
		return Lookup{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(msgNoStaff), nil
	}

	matches, err := typeMatches(s.store, staffTypeLabel, typ)
	if err != nil {
		return Lookup{}, err
	}
	if len(matches) == 0 {
		return notFound("No staff records found for type: " + typ), nil
	}

	text, message := renderMatches(matches, staffFoundBanner)
	return Lookup{Found: true, Count: len(matches), Text: text, Message: message}, nil
}

// ListAll returns the staff store verbatim.
func (s *StaffService) ListAll() (Lookup, error) {
	return listAll(s.store, "\nAll Staff Records:\n", msgNoStaff)
}

// ProfileInput holds the fields a staff member fills in about themself.
type ProfileInput struct {
	Username     string
	WorkStatus   string
	WorkingHours string
	Salary       string
	Type         string
}

// AddProfile appends a staff block named after the logged-in user.
func (s *StaffService) AddProfile(input ProfileInput) error {
	if err := requireKey("username", input.Username); err != nil {
		return err
	}
	return s.Add(model.Staff{
		Name:         input.Username,
		WorkStatus:   input.WorkStatus,
		WorkingHours: input.WorkingHours,
		Salary:       input.Salary,
		Type:         input.Type,
	})
}

// Profile returns the first staff block whose name line contains username,
// case-insensitively, including its dash line.
func (s *StaffService) Profile(username string) (Lookup, error) {
	if err := requireKey("username", username); err != nil {
		return Lookup{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Lookup{}, err
	}
	if !exists {
		return notFound(msgNoStaff), nil
	}

	b, found, err := s.store.First(func(b block.Block) bool {
		for _, line := range b.Lines {
			if util.HasPrefixFold(line, staffNameLabel) && util.ContainsFold(line, username) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return Lookup{}, err
	}
	if !found {
		return notFound("No profile found for username: " + username), nil
	}

	text := b.Raw()
	return Lookup{
		Found:   true,
		Count:   1,
		Text:    text,
		Message: "\n--- Your Staff Profile ---\n" + text,
	}, nil
}
