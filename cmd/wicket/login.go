package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/wicket"
)

// Toy credential table. The login flow is an example consumer, not a
// security surface.
var demoUsers = map[string]string{
	"ada":   "mainframe",
	"guest": "guest",
}

const resultDenied = "access denied"

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Run the toy login flow (visible username, hidden password)",
	RunE:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	_, opts, err := sessionSetup(cmd)
	if err != nil {
		return err
	}

	for {
		nameEngine := wicket.New(append(opts, wicket.WithStaticPrompt("login: "))...)
		name, err := nameEngine.Run(cmd.Context(), nameHandler{})
		if err != nil {
			return err
		}
		if s, ok := name.(wicket.Sentinel); ok {
			fmt.Println(s)
			return nil
		}

		passEngine := wicket.New(append(opts, wicket.WithInputMode(wicket.ModeHidden))...)
		result, err := passEngine.Run(cmd.Context(), passwordHandler{
			user:    name.(string),
			secrets: demoUsers,
		})
		if err != nil {
			return err
		}

		// Restarting the whole flow on failure is this consumer's choice,
		// not engine behavior.
		if result == resultDenied {
			fmt.Println("Login incorrect.")
			continue
		}
		fmt.Println(result)
		return nil
	}
}

// nameHandler reads a non-empty username and exits with it as the result.
type nameHandler struct{}

func (nameHandler) Init(args []string) wicket.InitResult {
	return wicket.InitOk(nil)
}

func (nameHandler) HandleCommand(command string, state any) wicket.Verdict {
	if command == "" {
		return wicket.Continue(state)
	}
	return wicket.Exit(command, state)
}

// passwordHandler gives the user three attempts at the password.
// State is the number of attempts left.
type passwordHandler struct {
	user    string
	secrets map[string]string
}

func (passwordHandler) Init(args []string) wicket.InitResult {
	return wicket.InitOk(3)
}

func (h passwordHandler) PromptText(state any) []string {
	return []string{h.user, "'s password: "}
}

func (h passwordHandler) HandleCommand(command string, state any) wicket.Verdict {
	if secret, ok := h.secrets[h.user]; ok && secret == command {
		return wicket.Exit("welcome, "+h.user, state)
	}
	left := state.(int) - 1
	if left <= 0 {
		return wicket.Exit(resultDenied, state)
	}
	return wicket.Continue(left)
}
