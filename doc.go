/*
Package wicket is a small framework for interactive, line-oriented command
prompts: the engine reads user input (visible or masked), dispatches it to
caller-defined command logic, and loops until the logic signals exit or a
read times out.

# Concept

The engine owns the read-eval loop and nothing else. Consumers supply a
Handler with two required capabilities (Init, HandleCommand) and one optional
one (PromptText); command state is an opaque value the engine threads from
one iteration to the next without ever inspecting or sharing it. Input
acquisition lives behind a single seam (pkg/lineio), which is where all
terminal-specific configuration belongs.

# Key Guarantees

  - Reads and dispatches strictly alternate; no two HandleCommand calls ever
    run concurrently within a session.
  - A read that completes after the session timeout fired is discarded, never
    delivered.
  - Read-time faults are absorbed at the engine boundary and normalized to
    ResultCommandError; only Init errors surface verbatim.
  - State never advances across a faulty read.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/wicket"
	)

	type echo struct{}

	func (echo) Init(args []string) wicket.InitResult {
		return wicket.InitOk(0)
	}

	func (echo) HandleCommand(command string, state any) wicket.Verdict {
		if command == "exit" {
			return wicket.Exit("bye", state)
		}
		fmt.Println(command)
		return wicket.Continue(state.(int) + 1)
	}

	func main() {
		eng := wicket.New(wicket.WithStaticPrompt("> "))
		result, err := eng.Run(context.Background(), echo{})
		if err != nil {
			panic(err)
		}
		fmt.Println(result)
	}

Run returns exactly one of three shapes: the result carried by the handler's
Exit verdict, wicket.ResultTimeout, or wicket.ResultCommandError.
*/
package wicket
