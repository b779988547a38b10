package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/dairy/internal/service"
)

func registerUser(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("user")
	cmd.SetDescription("Manage logins")

	// user signup
	signupCmd := ra.NewCmd("signup")
	signupCmd.SetDescription("Create a staff login")

	ctx.UserSignupUsername, _ = ra.NewString("username").
		SetUsage("Username for the new login").
		Register(signupCmd)

	ctx.UserSignupUsed, _ = cmd.RegisterCmd(signupCmd)

	// user login
	loginCmd := ra.NewCmd("login")
	loginCmd.SetDescription("Check a login and show what its role may do")

	ctx.UserLoginUsername, _ = ra.NewString("username").
		SetUsage("Username to log in as").
		Register(loginCmd)

	ctx.UserLoginUsed, _ = cmd.RegisterCmd(loginCmd)

	ctx.UserUsed, _ = parent.RegisterCmd(cmd)
}

// readPassword takes the password from $DAIRY_PASSWORD or a prompt.
func readPassword(app *App, title string) (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}
	return app.Prompter.Password(title)
}

func runUserSignup(opts options, username string) {
	app, err := NewApp(opts.DataDir, !opts.NonInteractive)
	if err != nil {
		Fatal(err)
	}

	password, err := readPassword(app, fmt.Sprintf("Password for %s", username))
	if err != nil {
		Fatal(err)
	}

	if err := app.AuthService.SignUp(username, password); err != nil {
		Fatal(err)
	}

	printDone(opts, "Sign up successfully! Please login now.")
}

func runUserLogin(opts options, username string) {
	app, err := NewApp(opts.DataDir, !opts.NonInteractive)
	if err != nil {
		Fatal(err)
	}

	opts.User = username
	session, err := app.Login(opts)
	if err != nil {
		Fatal(err)
	}

	if opts.JSON {
		out := struct {
			Username string   `json:"username"`
			Role     string   `json:"role"`
			Actions  []string `json:"actions"`
		}{session.Username, string(session.Role), actionNames(session.Role)}
		if err := printJson(out); err != nil {
			Fatal(err)
		}
		return
	}

	PrintSuccess("Login successful!")
	fmt.Println(LabelValue("User", RenderID(session.Username), 6))
	fmt.Println(LabelValue("Role", string(session.Role), 6))
	fmt.Println(Box(strings.Join(actionNames(session.Role), "\n")))
}

func actionNames(role service.Role) []string {
	actions := role.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
