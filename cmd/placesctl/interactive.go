package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"places-proxy/internal/autocomplete"
	"places-proxy/internal/gateway"
	"places-proxy/internal/models"

	"github.com/spf13/cobra"
)

func interactiveCmd(opts *options) *cobra.Command {
	var debounce = autocomplete.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Type queries line by line and pick from live suggestions",
		Long: `Each input line replaces the current query. Suggestions are printed
once the debounced search completes.

Commands:
  :N       select suggestion N
  :submit  select the first suggestion, or search and take the best match
  :health  check the proxy
  :quit    exit
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := opts.client()
			out := &syncWriter{w: cmd.OutOrStdout()}
			c := opts.coordinator(gw,
				autocomplete.WithDebounce(debounce),
				autocomplete.WithOnChange(suggestionPrinter(out)),
			)
			defer c.Close()

			if !gw.Configured() {
				fmt.Fprintln(out, alertError(gateway.ErrNotConfigured))
			}
			return runInteractive(cmd.Context(), c, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", autocomplete.DefaultDebounce, "Quiet period before a search is sent")
	return cmd
}

// runInteractive drives c from line-oriented input until EOF, :quit or ctx is done.
func runInteractive(ctx context.Context, c *autocomplete.Coordinator, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "proxy: %s\n", c.CheckHealth(ctx))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()

		if !strings.HasPrefix(line, ":") {
			c.SetQuery(line)
			continue
		}

		switch cmd := strings.TrimSpace(line[1:]); cmd {
		case "quit", "q":
			return nil
		case "health":
			fmt.Fprintf(out, "proxy: %s\n", c.CheckHealth(ctx))
		case "submit":
			loc, err := c.Submit(ctx)
			if err != nil {
				fmt.Fprintln(out, alertError(err))
				continue
			}
			printLocation(out, loc)
		default:
			n, err := strconv.Atoi(cmd)
			suggestions := c.Snapshot().Suggestions
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Fprintf(out, "unknown command %q\n", line)
				continue
			}
			loc, err := c.Select(ctx, suggestions[n-1])
			if err != nil {
				fmt.Fprintln(out, alertError(err))
				continue
			}
			printLocation(out, loc)
		}
	}
	return scanner.Err()
}

// suggestionPrinter prints the suggestion list whenever it settles on a new value.
func suggestionPrinter(out io.Writer) func(autocomplete.State) {
	var (
		mu   sync.Mutex
		last []models.Suggestion
	)
	return func(s autocomplete.State) {
		mu.Lock()
		defer mu.Unlock()
		if s.IsSuggesting || slices.Equal(s.Suggestions, last) {
			return
		}
		last = s.Suggestions
		if len(s.Suggestions) == 0 {
			fmt.Fprintln(out, "  (no suggestions)")
			return
		}
		for i, sg := range s.Suggestions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, sg.Name)
		}
	}
}

// syncWriter serialises writes from the input loop and timer callbacks.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
