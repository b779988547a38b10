package cli

import (
	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/prompt"
)

// field is one value a command needs, filled from its flag or a prompt.
type field struct {
	Flag     string
	Title    string
	Value    *string
	Default  string
	Options  []string // prompt with a select instead of free text
	Required bool
}

// collect prompts for every empty field. In non-interactive mode empty
// optional fields take their default and empty required fields fail.
func collect(p prompt.Prompter, nonInteractive bool, fields []field) error {
	for _, f := range fields {
		if *f.Value != "" {
			continue
		}

		if nonInteractive {
			if f.Required && f.Default == "" {
				return dairyerr.InvalidField(f.Flag, "is required in non-interactive mode")
			}
			*f.Value = f.Default
			continue
		}

		var (
			v   string
			err error
		)
		if len(f.Options) > 0 {
			v, err = p.Select(f.Title, f.Options)
		} else {
			v, err = p.Input(f.Title, f.Default)
		}
		if err != nil {
			return err
		}
		if f.Required && v == "" {
			return dairyerr.RequiredField(f.Flag)
		}
		*f.Value = v
	}
	return nil
}

// confirm asks before a destructive action unless force is set.
func confirm(p prompt.Prompter, nonInteractive, force bool, question string) (bool, error) {
	if force {
		return true, nil
	}
	if nonInteractive {
		return false, dairyerr.InvalidField("force", "--force is required in non-interactive mode")
	}
	return p.Confirm(question, false)
}
