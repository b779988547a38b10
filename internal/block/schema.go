package block

// Schema is the fixed field order of one block kind. Readers that pick
// fields by position go through Index so the positional assumption stays
// in one place.
type Schema struct {
	Name   string
	Fields []string
}

// Index returns the line offset of a field within a block, or -1.
func (s Schema) Index(field string) int {
	for i, f := range s.Fields {
		if f == field {
			return i
		}
	}
	return -1
}

// Header returns the header prefix ("<first field> =") used to recognize
// the start of a block.
func (s Schema) Header() string {
	if len(s.Fields) == 0 {
		return ""
	}
	return s.Fields[0] + " ="
}

// Bind pairs values with the schema's field names, in order. Missing values
// become empty strings; extra values are ignored.
func (s Schema) Bind(values ...string) []Field {
	fields := make([]Field, len(s.Fields))
	for i, name := range s.Fields {
		fields[i].Name = name
		if i < len(values) {
			fields[i].Value = values[i]
		}
	}
	return fields
}

// Field names shared across call sites.
const (
	FieldAnimalID      = "Animal ID"
	FieldAnimalAge     = "Animal Age"
	FieldAnimalGender  = "Animal Gender"
	FieldPurchaseDate  = "Animal Purchase Date"
	FieldFeedType      = "Feed Type"
	FieldTimesPerDay   = "Times per day"
	FieldVaccination   = "Vaccination"
	FieldAnimalType    = "Animal Type"
	FieldStaffName     = "Staff Name"
	FieldWorkStatus    = "Work Status"
	FieldWorkingHours  = "Working Hours"
	FieldSalary        = "Salary"
	FieldStaffType     = "Staff type"
	FieldDate          = "Date"
	FieldMilkQuantity  = "Milk Quantity"
	FieldPricePerLiter = "Price per Liter"
)

var (
	AnimalSchema = Schema{
		Name: "animal",
		Fields: []string{
			FieldAnimalID,
			FieldAnimalAge,
			FieldAnimalGender,
			FieldPurchaseDate,
			FieldFeedType,
			FieldTimesPerDay,
			FieldVaccination,
			FieldAnimalType,
		},
	}

	StaffSchema = Schema{
		Name: "staff",
		Fields: []string{
			FieldStaffName,
			FieldWorkStatus,
			FieldWorkingHours,
			FieldSalary,
			FieldStaffType,
		},
	}

	MilkSchema = Schema{
		Name: "milk",
		Fields: []string{
			FieldDate,
			FieldAnimalID,
			FieldMilkQuantity,
			FieldStaffName,
			FieldPricePerLiter,
		},
	}
)
