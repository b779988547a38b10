package model

import "github.com/amterp/dairy/internal/block"

// Staff is one employee record.
type Staff struct {
	Name         string `json:"name"`
	WorkStatus   string `json:"work_status"`
	WorkingHours string `json:"working_hours"`
	Salary       string `json:"salary"`
	Type         string `json:"type"`
}

// Fields returns the staff values in store order.
func (s Staff) Fields() []block.Field {
	return block.StaffSchema.Bind(s.Name, s.WorkStatus, s.WorkingHours, s.Salary, s.Type)
}

// Encode serializes the staff member as a store block.
func (s Staff) Encode() string {
	return block.Encode(s.Fields(), block.DashSentinel)
}
