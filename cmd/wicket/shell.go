package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/wicket"
	"github.com/aretw0/wicket/internal/presentation/tui"
	"github.com/aretw0/wicket/pkg/lineio"
)

var shellCmd = &cobra.Command{
	Use:   "shell [user]",
	Short: "Run the toy countdown/whoami shell",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `# wicket shell

| Command | Effect |
|---|---|
| ` + "`countdown [n]`" + ` | count down from n (default 5) |
| ` + "`whoami`" + ` | print the session user |
| ` + "`help`" + ` | this text |
| ` + "`exit`" + ` | leave the shell |
`

func runShell(cmd *cobra.Command, args []string) error {
	_, opts, err := sessionSetup(cmd)
	if err != nil {
		return err
	}

	tui.PrintBanner()

	src, err := lineio.NewReadline(lineio.ReadlineConfig{
		Prompt:      "> ",
		HistoryFile: historyPath(),
		Words:       []string{"countdown", "whoami", "help", "exit"},
	})
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer src.Close()

	h := &shellHandler{out: os.Stdout, render: tui.NewRenderer()}

	result, err := wicket.New(append(opts, wicket.WithSource(src))...).Run(cmd.Context(), h, args...)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

type shellState struct {
	user     string
	commands int
}

type shellHandler struct {
	out    io.Writer
	render func(string) (string, error)
}

// Init resolves the session user lazily: the intermediate state carries
// whatever the command line provided, and the continuation fills in the
// OS user when nothing was given.
func (h *shellHandler) Init(args []string) wicket.InitResult {
	st := shellState{}
	if len(args) > 0 {
		st.user = args[0]
	}
	return wicket.InitContinue(st, func(s any) any {
		st := s.(shellState)
		if st.user == "" {
			if u, err := user.Current(); err == nil {
				st.user = u.Username
			} else {
				st.user = "anonymous"
			}
		}
		return st
	})
}

func (h *shellHandler) PromptText(state any) []string {
	st := state.(shellState)
	return []string{st.user, "[", strconv.Itoa(st.commands), "]> "}
}

func (h *shellHandler) HandleCommand(command string, state any) wicket.Verdict {
	st := state.(shellState)
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return wicket.Continue(st)
	}

	switch fields[0] {
	case "exit", "quit":
		return wicket.Exit("bye", st)
	case "whoami":
		fmt.Fprintln(h.out, st.user)
	case "countdown":
		h.countdown(fields[1:])
	case "help":
		if text, err := h.render(shellHelp); err == nil {
			fmt.Fprint(h.out, text)
		}
	default:
		fmt.Fprintf(h.out, "unknown command: %s\n", fields[0])
	}

	st.commands++
	return wicket.Continue(st)
}

func (h *shellHandler) countdown(args []string) {
	n := 5
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
			n = v
		}
	}
	for i := n; i > 0; i-- {
		fmt.Fprintf(h.out, "%d...\n", i)
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Fprintln(h.out, "liftoff")
}
