package cli

import (
	"os"

	"github.com/amterp/ra"

	"github.com/amterp/dairy/internal/service"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	DataDir        *string
	User           *string
	Role           *string
	JSON           *bool

	// animal command
	AnimalUsed *bool

	AnimalAddUsed         *bool
	AnimalAddID           *string
	AnimalAddAge          *string
	AnimalAddGender       *string
	AnimalAddPurchaseDate *string
	AnimalAddVaccination  *string
	AnimalAddFeedType     *string
	AnimalAddTimesPerDay  *string
	AnimalAddType         *string

	AnimalFindUsed *bool
	AnimalFindID   *string

	AnimalDeleteUsed  *bool
	AnimalDeleteID    *string
	AnimalDeleteForce *bool

	AnimalListUsed *bool
	AnimalListType *string

	// staff command
	StaffUsed *bool

	StaffAddUsed   *bool
	StaffAddName   *string
	StaffAddStatus *string
	StaffAddHours  *string
	StaffAddSalary *string
	StaffAddType   *string

	StaffFindUsed    *bool
	StaffFindKeyword *string

	StaffRemoveUsed  *bool
	StaffRemoveName  *string
	StaffRemoveForce *bool

	StaffListUsed *bool
	StaffListType *string

	StaffProfileUsed *bool

	StaffProfileAddUsed   *bool
	StaffProfileAddStatus *string
	StaffProfileAddHours  *string
	StaffProfileAddSalary *string
	StaffProfileAddType   *string

	StaffProfileShowUsed *bool

	// milk command
	MilkUsed *bool

	MilkAddUsed     *bool
	MilkAddDate     *string
	MilkAddAnimal   *string
	MilkAddQuantity *string
	MilkAddStaff    *string
	MilkAddPrice    *string

	MilkAggregateUsed  *bool
	MilkAggregateDate  *string
	MilkAggregatePrice *string

	MilkAnimalUsed *bool
	MilkAnimalID   *string

	// user command
	UserUsed *bool

	UserSignupUsed     *bool
	UserSignupUsername *string

	UserLoginUsed     *bool
	UserLoginUsername *string

	// serve command
	ServeUsed *bool
	ServePort *int

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("dairy")
	cmd.SetDescription("Flat-file records for a dairy farm")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.DataDir, _ = ra.NewString("data-dir").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Directory holding the record files (default: $DAIRY_DATA_DIR or the working directory)").
		Register(cmd, ra.WithGlobal(true))

	ctx.User, _ = ra.NewString("user").
		SetShort("u").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Log in as this user and apply their role's permissions").
		Register(cmd, ra.WithGlobal(true))

	ctx.Role, _ = ra.NewString("role").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetDefault(string(service.RoleStaff)).
		SetEnumConstraint(service.Roles).
		SetUsage("Role to log in with").
		Register(cmd, ra.WithGlobal(true))

	ctx.JSON, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print results as JSON").
		Register(cmd, ra.WithGlobal(true))

	registerAnimal(cmd, ctx)
	registerStaff(cmd, ctx)
	registerMilk(cmd, ctx)
	registerUser(cmd, ctx)
	registerServe(cmd, ctx)
	registerCompletion(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	executeCommand(ctx, cmd)
}

func (ctx *CommandContext) options() options {
	return options{
		DataDir:        *ctx.DataDir,
		User:           *ctx.User,
		Role:           *ctx.Role,
		NonInteractive: *ctx.NonInteractive,
		JSON:           *ctx.JSON,
	}
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	opts := ctx.options()

	switch {
	case *ctx.AnimalAddUsed:
		runAnimalAdd(opts, animalInput{
			ID:           *ctx.AnimalAddID,
			Age:          *ctx.AnimalAddAge,
			Gender:       *ctx.AnimalAddGender,
			PurchaseDate: *ctx.AnimalAddPurchaseDate,
			Vaccination:  *ctx.AnimalAddVaccination,
			FeedType:     *ctx.AnimalAddFeedType,
			TimesPerDay:  *ctx.AnimalAddTimesPerDay,
			Type:         *ctx.AnimalAddType,
		})

	case *ctx.AnimalFindUsed:
		runAnimalFind(opts, *ctx.AnimalFindID)

	case *ctx.AnimalDeleteUsed:
		runAnimalDelete(opts, *ctx.AnimalDeleteID, *ctx.AnimalDeleteForce)

	case *ctx.AnimalListUsed:
		runAnimalList(opts, *ctx.AnimalListType)

	case *ctx.StaffAddUsed:
		runStaffAdd(opts, staffInput{
			Name:   *ctx.StaffAddName,
			Status: *ctx.StaffAddStatus,
			Hours:  *ctx.StaffAddHours,
			Salary: *ctx.StaffAddSalary,
			Type:   *ctx.StaffAddType,
		})

	case *ctx.StaffFindUsed:
		runStaffFind(opts, *ctx.StaffFindKeyword)

	case *ctx.StaffRemoveUsed:
		runStaffRemove(opts, *ctx.StaffRemoveName, *ctx.StaffRemoveForce)

	case *ctx.StaffListUsed:
		runStaffList(opts, *ctx.StaffListType)

	case *ctx.StaffProfileAddUsed:
		runProfileAdd(opts, staffInput{
			Status: *ctx.StaffProfileAddStatus,
			Hours:  *ctx.StaffProfileAddHours,
			Salary: *ctx.StaffProfileAddSalary,
			Type:   *ctx.StaffProfileAddType,
		})

	case *ctx.StaffProfileShowUsed:
		runProfileShow(opts)

	case *ctx.MilkAddUsed:
		runMilkAdd(opts, milkInput{
			Date:     *ctx.MilkAddDate,
			AnimalID: *ctx.MilkAddAnimal,
			Quantity: *ctx.MilkAddQuantity,
			Staff:    *ctx.MilkAddStaff,
			Price:    *ctx.MilkAddPrice,
		})

	case *ctx.MilkAggregateUsed:
		runMilkAggregate(opts, *ctx.MilkAggregateDate, *ctx.MilkAggregatePrice)

	case *ctx.MilkAnimalUsed:
		runMilkAnimal(opts, *ctx.MilkAnimalID)

	case *ctx.UserSignupUsed:
		runUserSignup(opts, *ctx.UserSignupUsername)

	case *ctx.UserLoginUsed:
		runUserLogin(opts, *ctx.UserLoginUsername)

	case *ctx.ServeUsed:
		runServe(opts, *ctx.ServePort)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
