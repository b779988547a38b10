package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/config"
	"github.com/amterp/dairy/internal/store"
)

// completionCtx provides read-only store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so stores are opened directly and nothing is created on disk.
type completionCtx struct {
	once    sync.Once
	animals *store.FileRecordStore
	staff   *store.FileRecordStore
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		paths := config.NewPaths(config.DataDirFromEnv(dataDirFromArgs(os.Args)))
		compCtx.animals = store.NewRecordStore(paths.AnimalStorePath(), store.AnimalKind, nil)
		compCtx.staff = store.NewRecordStore(paths.StaffStorePath(), store.StaffKind, nil)
	})
}

// completeAnimalIDs returns stored animal IDs matching the given prefix.
func completeAnimalIDs(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	return completeField(compCtx.animals, block.FieldAnimalID, toComplete), ra.CompletionDirectiveNoFileComp
}

// completeStaffNames returns stored staff names matching the given prefix.
func completeStaffNames(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	return completeField(compCtx.staff, block.FieldStaffName, toComplete), ra.CompletionDirectiveNoFileComp
}

// completeField collects distinct values of name across blocks. Errors
// yield no completions.
func completeField(st store.RecordStore, name, toComplete string) []string {
	seen := make(map[string]bool)
	var result []string
	err := st.Scan(func(b block.Block) bool {
		v, ok := b.Value(name)
		if ok && v != "" && !seen[v] && strings.HasPrefix(v, toComplete) {
			seen[v] = true
			result = append(result, v)
		}
		return true
	})
	if err != nil {
		return nil
	}
	return result
}

// dataDirFromArgs scans the argument list for an explicit --data-dir value.
func dataDirFromArgs(args []string) string {
	for i, arg := range args {
		// --data-dir=value (skip empty values so fallback logic runs)
		if strings.HasPrefix(arg, "--data-dir=") {
			if v := strings.TrimPrefix(arg, "--data-dir="); v != "" {
				return v
			}
		}
		// --data-dir value
		if arg == "--data-dir" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "dairy completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
