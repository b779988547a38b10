package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/service"
)

// printLookup shows a query result: the banner and matched text, or the
// not-found notice. Lookups that found nothing exit non-zero.
func printLookup(opts options, lookup service.Lookup, schema block.Schema) {
	if opts.JSON {
		if err := printJson(NewRecordsOutput(lookup, schema)); err != nil {
			Fatal(err)
		}
		return
	}

	if !lookup.Found {
		PrintWarning("%s", lookup.Message)
		return
	}
	fmt.Print(RenderRecords(lookup.Message))
	if !strings.HasSuffix(lookup.Message, "\n") {
		fmt.Println()
	}
	PrintInfo("%s", RenderMuted(fmt.Sprintf("%d record(s)", lookup.Count)))
}

// printRemoval reports the outcome of a delete-rewrite.
func printRemoval(opts options, removal service.Removal) {
	if opts.JSON {
		if err := printJson(removal); err != nil {
			Fatal(err)
		}
		return
	}
	if removal.Removed == 0 {
		PrintWarning("%s", removal.Message)
		return
	}
	PrintSuccess("%s", removal.Message)
}

// printDone reports a successful write.
func printDone(opts options, message string) {
	if opts.JSON {
		if err := printJson(MessageOutput{OK: true, Message: message}); err != nil {
			Fatal(err)
		}
		return
	}
	PrintSuccess("%s", message)
}
