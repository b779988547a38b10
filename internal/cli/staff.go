package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/service"
)

// staffInput carries the flag values of "staff add" and "staff profile add".
type staffInput struct {
	Name   string
	Status string
	Hours  string
	Salary string
	Type   string
}

func (in *staffInput) fields(withName bool) []field {
	var fields []field
	if withName {
		fields = append(fields, field{Flag: "name", Title: "Staff Name", Value: &in.Name, Required: true})
	}
	return append(fields,
		field{Flag: "status", Title: "Work Status", Value: &in.Status},
		field{Flag: "hours", Title: "Working Hours", Value: &in.Hours},
		field{Flag: "salary", Title: "Salary", Value: &in.Salary},
		field{Flag: "type", Title: "Staff type", Value: &in.Type},
	)
}

func registerStaff(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("staff")
	cmd.SetDescription("Manage staff records")

	// staff add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Add a staff record")

	ctx.StaffAddName = optionalFlag(addCmd, "name", "Staff name")
	ctx.StaffAddStatus = optionalFlag(addCmd, "status", "Work status")
	ctx.StaffAddHours = optionalFlag(addCmd, "hours", "Working hours")
	ctx.StaffAddSalary = optionalFlag(addCmd, "salary", "Salary")
	ctx.StaffAddType = optionalFlag(addCmd, "type", "Staff type")

	ctx.StaffAddUsed, _ = cmd.RegisterCmd(addCmd)

	// staff find
	findCmd := ra.NewCmd("find")
	findCmd.SetDescription("Show the first staff record containing a keyword")

	ctx.StaffFindKeyword, _ = ra.NewString("keyword").
		SetUsage("Text to search for (case-insensitive)").
		Register(findCmd)

	ctx.StaffFindUsed, _ = cmd.RegisterCmd(findCmd)

	// staff remove
	removeCmd := ra.NewCmd("remove")
	removeCmd.SetDescription("Remove every staff record whose name contains the given text")

	ctx.StaffRemoveName, _ = ra.NewString("name").
		SetUsage("Staff name (case-insensitive substring match)").
		SetCompletionFunc(completeStaffNames).
		Register(removeCmd)

	ctx.StaffRemoveForce = forceFlag(removeCmd)

	ctx.StaffRemoveUsed, _ = cmd.RegisterCmd(removeCmd)

	// staff list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List staff records")

	ctx.StaffListType = optionalFlag(listCmd, "type", "Only staff of this type (case-insensitive)")

	ctx.StaffListUsed, _ = cmd.RegisterCmd(listCmd)

	// staff profile
	profileCmd := ra.NewCmd("profile")
	profileCmd.SetDescription("Manage your own staff profile (requires --user)")

	profileAddCmd := ra.NewCmd("add")
	profileAddCmd.SetDescription("Add a staff record named after you")

	ctx.StaffProfileAddStatus = optionalFlag(profileAddCmd, "status", "Work status")
	ctx.StaffProfileAddHours = optionalFlag(profileAddCmd, "hours", "Working hours")
	ctx.StaffProfileAddSalary = optionalFlag(profileAddCmd, "salary", "Salary")
	ctx.StaffProfileAddType = optionalFlag(profileAddCmd, "type", "Staff type")

	ctx.StaffProfileAddUsed, _ = profileCmd.RegisterCmd(profileAddCmd)

	profileShowCmd := ra.NewCmd("show")
	profileShowCmd.SetDescription("Show your staff record")

	ctx.StaffProfileShowUsed, _ = profileCmd.RegisterCmd(profileShowCmd)

	ctx.StaffProfileUsed, _ = cmd.RegisterCmd(profileCmd)

	ctx.StaffUsed, _ = parent.RegisterCmd(cmd)
}

func runStaffAdd(opts options, in staffInput) {
	app := setup(opts, service.ActionAddStaff)

	if err := collect(app.Prompter, opts.NonInteractive, in.fields(true)); err != nil {
		Fatal(err)
	}

	staff := model.Staff{
		Name:         in.Name,
		WorkStatus:   in.Status,
		WorkingHours: in.Hours,
		Salary:       in.Salary,
		Type:         in.Type,
	}
	if err := app.StaffService.Add(staff); err != nil {
		Fatal(err)
	}

	printDone(opts, "Staff record added successfully.")
}

func runStaffFind(opts options, keyword string) {
	app := setup(opts, service.ActionFindStaff)

	lookup, err := app.StaffService.FindByKeyword(keyword)
	if err != nil {
		Fatal(err)
	}
	printLookup(opts, lookup, block.StaffSchema)
}

func runStaffRemove(opts options, name string, force bool) {
	app := setup(opts, service.ActionRemoveStaff)

	ok, err := confirm(app.Prompter, opts.NonInteractive, force,
		fmt.Sprintf("Remove every staff record whose name contains %q?", name))
	if err != nil {
		Fatal(err)
	}
	if !ok {
		PrintInfo("Cancelled")
		return
	}

	removal, err := app.StaffService.Remove(name)
	if err != nil {
		Fatal(err)
	}
	printRemoval(opts, removal)
}

func runStaffList(opts options, typ string) {
	app := setup(opts, service.ActionListStaff)

	var (
		lookup service.Lookup
		err    error
	)
	if typ == "" {
		lookup, err = app.StaffService.ListAll()
	} else {
		lookup, err = app.StaffService.ListByType(typ)
	}
	if err != nil {
		Fatal(err)
	}
	printLookup(opts, lookup, block.StaffSchema)
}

// setupSession builds the App and logs in, failing without --user.
func setupSession(opts options, action service.Action) (*App, *service.Session) {
	app, err := NewApp(opts.DataDir, !opts.NonInteractive)
	if err != nil {
		Fatal(err)
	}
	session, err := app.RequireSession(opts, action)
	if err != nil {
		Fatal(err)
	}
	return app, session
}

func runProfileAdd(opts options, in staffInput) {
	app, session := setupSession(opts, service.ActionManageProfile)

	if err := collect(app.Prompter, opts.NonInteractive, in.fields(false)); err != nil {
		Fatal(err)
	}

	err := app.StaffService.AddProfile(service.ProfileInput{
		Username:     session.Username,
		WorkStatus:   in.Status,
		WorkingHours: in.Hours,
		Salary:       in.Salary,
		Type:         in.Type,
	})
	if err != nil {
		Fatal(err)
	}

	printDone(opts, "Your profile has been added.")
}

func runProfileShow(opts options) {
	app, session := setupSession(opts, service.ActionManageProfile)

	lookup, err := app.StaffService.Profile(session.Username)
	if err != nil {
		Fatal(err)
	}
	printLookup(opts, lookup, block.StaffSchema)
}
