package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/session"
)

func main() {
	output := flag.String("output", "", "output file for the submitted record (stdout if empty)")
	format := flag.String("format", "json", "output format: json or pretty")
	delay := flag.Duration("delay", session.DefaultDelay, "simulated submission round-trip delay")
	flag.Parse()

	ctx := context.Background()

	// One driver for both prompts and dialogs, so everything shares the
	// terminal session.
	driver := tui.NewSurveyDriver()

	sess, err := session.New(
		session.WithSubmitter(session.NewSimulated(*delay)),
		session.WithDialogs(tui.NewDialogPresenter(driver)),
	)
	if err != nil {
		log.Fatalf("Failed to build session: %v", err)
	}

	runner, err := tui.New(sess,
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
	)
	if err != nil {
		log.Fatalf("Failed to build runner: %v", err)
	}

	payload, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Registration aborted: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Record written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}
