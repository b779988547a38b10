package cli

import (
	"fmt"
	"time"

	"github.com/amterp/ra"

	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/service"
	"github.com/amterp/dairy/internal/util"
)

// milkInput carries the flag values of "milk add".
type milkInput struct {
	Date     string
	AnimalID string
	Quantity string
	Staff    string
	Price    string
}

func registerMilk(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("milk")
	cmd.SetDescription("Record milkings and build milk reports")

	// milk add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Record one milking")

	ctx.MilkAddDate = optionalFlag(addCmd, "date", "Milking date (default: today)")
	ctx.MilkAddAnimal = optionalFlag(addCmd, "animal", "Animal ID")
	ctx.MilkAddQuantity = optionalFlag(addCmd, "quantity", "Quantity in liters")
	ctx.MilkAddStaff = optionalFlag(addCmd, "staff", "Staff name")
	ctx.MilkAddPrice = optionalFlag(addCmd, "price", "Price per liter (default: price_per_liter setting)")

	ctx.MilkAddUsed, _ = cmd.RegisterCmd(addCmd)

	// milk aggregate
	aggregateCmd := ra.NewCmd("aggregate")
	aggregateCmd.SetDescription("Total a day's milk and append a daily summary")

	ctx.MilkAggregateDate, _ = ra.NewString("date").
		SetUsage("Date to total (substring of the date line)").
		Register(aggregateCmd)

	ctx.MilkAggregatePrice = optionalFlag(aggregateCmd, "price", "Price per liter (default: price_per_liter setting)")

	ctx.MilkAggregateUsed, _ = cmd.RegisterCmd(aggregateCmd)

	// milk animal
	animalCmd := ra.NewCmd("animal")
	animalCmd.SetDescription("Report every milking of one animal")

	ctx.MilkAnimalID, _ = ra.NewString("id").
		SetUsage("Animal ID (exact match)").
		SetCompletionFunc(completeAnimalIDs).
		Register(animalCmd)

	ctx.MilkAnimalUsed, _ = cmd.RegisterCmd(animalCmd)

	ctx.MilkUsed, _ = parent.RegisterCmd(cmd)
}

// defaultPrice renders the configured price, or "" when none is set.
func defaultPrice(price float64) string {
	if price <= 0 {
		return ""
	}
	return util.FormatNumber(price)
}

func runMilkAdd(opts options, in milkInput) {
	app := setup(opts, service.ActionAddMilk)

	err := collect(app.Prompter, opts.NonInteractive, []field{
		{Flag: "date", Title: "Date", Value: &in.Date, Default: time.Now().Format(app.Settings.DateLayout)},
		{Flag: "animal", Title: "Animal ID", Value: &in.AnimalID, Required: true},
		{Flag: "quantity", Title: "Milk Quantity (liters)", Value: &in.Quantity, Required: true},
		{Flag: "staff", Title: "Staff Name", Value: &in.Staff, Default: sessionUser(app)},
		{Flag: "price", Title: "Price per Liter", Value: &in.Price, Default: defaultPrice(app.Settings.PricePerLiter)},
	})
	if err != nil {
		Fatal(err)
	}

	entry := model.MilkEntry{
		Date:          in.Date,
		AnimalID:      in.AnimalID,
		Quantity:      in.Quantity,
		StaffName:     in.Staff,
		PricePerLiter: in.Price,
	}
	if err := app.MilkService.Add(entry); err != nil {
		Fatal(err)
	}

	printDone(opts, "Milk record added.")
}

// sessionUser is the logged-in username, used as the default staff name.
func sessionUser(app *App) string {
	if app.Session == nil {
		return ""
	}
	return app.Session.Username
}

func runMilkAggregate(opts options, date, priceArg string) {
	app := setup(opts, service.ActionAggregateMilk)

	err := collect(app.Prompter, opts.NonInteractive, []field{
		{Flag: "price", Title: "Price per Liter", Value: &priceArg, Default: defaultPrice(app.Settings.PricePerLiter), Required: true},
	})
	if err != nil {
		Fatal(err)
	}

	price, err := util.ParseNumber(priceArg)
	if err != nil || price < 0 {
		Fatal(dairyerr.InvalidField("price", "must be a non-negative number"))
	}

	result, err := app.MilkService.Aggregate(date, price)
	if err != nil {
		Fatal(err)
	}

	if opts.JSON {
		if err := printJson(result); err != nil {
			Fatal(err)
		}
		return
	}
	if !result.Appended {
		PrintWarning("%s", result.Message)
		return
	}
	if result.Summary.Skipped > 0 {
		PrintWarning("Skipped %d milk entries with an unreadable quantity", result.Summary.Skipped)
	}
	PrintSuccess("%s", result.Message)
}

func runMilkAnimal(opts options, id string) {
	app := setup(opts, service.ActionMilkByAnimal)

	report, err := app.MilkService.ByAnimalID(id)
	if err != nil {
		Fatal(err)
	}

	if opts.JSON {
		if report.Entries == nil {
			report.Entries = []model.MilkReportEntry{}
		}
		if err := printJson(report); err != nil {
			Fatal(err)
		}
		return
	}
	if !report.Found {
		PrintWarning("%s", report.Message)
		return
	}
	fmt.Print(RenderRecords(report.Message))
	PrintInfo("%s", RenderMuted(fmt.Sprintf("%d milking(s)", len(report.Entries))))
}
