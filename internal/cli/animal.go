package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/service"
)

// animalInput carries the flag values of "animal add".
type animalInput struct {
	ID           string
	Age          string
	Gender       string
	PurchaseDate string
	Vaccination  string
	FeedType     string
	TimesPerDay  string
	Type         string
}

// optionalFlag registers a flag-only string that defaults to empty.
func optionalFlag(cmd *ra.Cmd, name, usage string) *string {
	v, _ := ra.NewString(name).
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage(usage).
		Register(cmd)
	return v
}

func forceFlag(cmd *ra.Cmd) *bool {
	v, _ := ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(cmd)
	return v
}

func registerAnimal(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("animal")
	cmd.SetDescription("Manage animal records")

	// animal add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Add an animal record")

	ctx.AnimalAddID = optionalFlag(addCmd, "id", "Animal ID")
	ctx.AnimalAddAge = optionalFlag(addCmd, "age", "Animal age")
	ctx.AnimalAddGender = optionalFlag(addCmd, "gender", "Animal gender (M/F)")
	ctx.AnimalAddPurchaseDate = optionalFlag(addCmd, "purchase-date", "Purchase date")
	ctx.AnimalAddVaccination = optionalFlag(addCmd, "vaccination", "Vaccinated (Y/N)")
	ctx.AnimalAddFeedType = optionalFlag(addCmd, "feed-type", "Feed type")
	ctx.AnimalAddTimesPerDay = optionalFlag(addCmd, "times-per-day", "Feedings per day")
	ctx.AnimalAddType = optionalFlag(addCmd, "type", "Animal type")

	ctx.AnimalAddUsed, _ = cmd.RegisterCmd(addCmd)

	// animal find
	findCmd := ra.NewCmd("find")
	findCmd.SetDescription("Show the first animal whose ID contains the given text")

	ctx.AnimalFindID, _ = ra.NewString("id").
		SetUsage("Animal ID (substring match)").
		SetCompletionFunc(completeAnimalIDs).
		Register(findCmd)

	ctx.AnimalFindUsed, _ = cmd.RegisterCmd(findCmd)

	// animal delete
	deleteCmd := ra.NewCmd("delete")
	deleteCmd.SetDescription("Delete every animal whose ID contains the given text")

	ctx.AnimalDeleteID, _ = ra.NewString("id").
		SetUsage("Animal ID (substring match)").
		SetCompletionFunc(completeAnimalIDs).
		Register(deleteCmd)

	ctx.AnimalDeleteForce = forceFlag(deleteCmd)

	ctx.AnimalDeleteUsed, _ = cmd.RegisterCmd(deleteCmd)

	// animal list
	listCmd := ra.NewCmd("list")
	listCmd.SetDescription("List animal records")

	ctx.AnimalListType = optionalFlag(listCmd, "type", "Only animals of this type (case-insensitive)")

	ctx.AnimalListUsed, _ = cmd.RegisterCmd(listCmd)

	ctx.AnimalUsed, _ = parent.RegisterCmd(cmd)
}

func runAnimalAdd(opts options, in animalInput) {
	app := setup(opts, service.ActionAddAnimal)

	err := collect(app.Prompter, opts.NonInteractive, []field{
		{Flag: "id", Title: "Animal ID", Value: &in.ID, Required: true},
		{Flag: "age", Title: "Animal Age", Value: &in.Age},
		{Flag: "gender", Title: "Animal Gender", Value: &in.Gender, Options: []string{"M", "F"}},
		{Flag: "purchase-date", Title: "Animal Purchase Date", Value: &in.PurchaseDate},
		{Flag: "vaccination", Title: "Vaccination", Value: &in.Vaccination, Options: []string{"Y", "N"}},
		{Flag: "feed-type", Title: "Feed Type", Value: &in.FeedType},
		{Flag: "times-per-day", Title: "Times per day", Value: &in.TimesPerDay},
		{Flag: "type", Title: "Animal Type", Value: &in.Type},
	})
	if err != nil {
		Fatal(err)
	}

	animal := model.Animal{
		ID:           in.ID,
		Age:          in.Age,
		Gender:       in.Gender,
		PurchaseDate: in.PurchaseDate,
		FeedType:     in.FeedType,
		TimesPerDay:  in.TimesPerDay,
		Vaccination:  in.Vaccination,
		Type:         in.Type,
	}
	if err := app.AnimalService.Add(animal); err != nil {
		Fatal(err)
	}

	printDone(opts, "Animal record added.")
}

func runAnimalFind(opts options, id string) {
	app := setup(opts, service.ActionFindAnimal)

	lookup, err := app.AnimalService.Find(id)
	if err != nil {
		Fatal(err)
	}
	printLookup(opts, lookup, block.AnimalSchema)
}

func runAnimalDelete(opts options, id string, force bool) {
	app := setup(opts, service.ActionDeleteAnimal)

	ok, err := confirm(app.Prompter, opts.NonInteractive, force,
		fmt.Sprintf("Delete every animal whose ID contains %q?", id))
	if err != nil {
		Fatal(err)
	}
	if !ok {
		PrintInfo("Cancelled")
		return
	}

	removal, err := app.AnimalService.Delete(id)
	if err != nil {
		Fatal(err)
	}
	printRemoval(opts, removal)
}

func runAnimalList(opts options, typ string) {
	app := setup(opts, service.ActionListAnimals)

	var (
		lookup service.Lookup
		err    error
	)
	if typ == "" {
		lookup, err = app.AnimalService.ListAll()
	} else {
		lookup, err = app.AnimalService.ListByType(typ)
	}
	if err != nil {
		Fatal(err)
	}
	printLookup(opts, lookup, block.AnimalSchema)
}
