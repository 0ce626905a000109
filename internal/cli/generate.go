package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"cardtrail"
	"cardtrail/internal/config"
	"cardtrail/internal/presentation/tui"
	"golang.org/x/term"
)

// RunGenerate executes the generate command: resolve the board id, fetch the
// board history and print the SankeyMATIC payload to stdout.
func RunGenerate(opts Options) error {
	logger := createLogger(opts.Debug)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gen, err := NewGenerator(cfg, opts, logger)
	if err != nil {
		return err
	}

	tui.PrintBanner(cardtrail.Version)

	boardID, err := resolveBoardID(opts.BoardID)
	if err != nil {
		return err
	}

	res, err := gen.Generate(context.Background(), boardID)
	if err != nil {
		return err
	}

	if res.Empty() {
		tui.PrintNotice("No card movements found on board %s.", boardID)
		return nil
	}

	fmt.Println("--- SankeyMATIC Format Data ---")
	fmt.Println(res.Output())
	fmt.Println()
	fmt.Println("--- Copy the above data to sankeymatic.com ---")

	if opts.Summary {
		fmt.Print(tui.RenderMarkdown(res.SummaryMarkdown()))
	}
	return nil
}

// resolveBoardID returns the board id from the argument, or prompts for it
// when the command runs interactively.
func resolveBoardID(arg string) (string, error) {
	if id := strings.TrimSpace(arg); id != "" {
		return id, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("board id is required (pass it as an argument)")
	}

	fmt.Print("Enter your Trello board ID: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read board id: %w", err)
	}

	id := strings.TrimSpace(line)
	if id == "" {
		return "", fmt.Errorf("board id is required")
	}
	return id, nil
}
