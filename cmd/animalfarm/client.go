package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
	"github.com/Strob0t/animalfarm/internal/service"
)

const defaultAddr = "http://localhost:3000"

func isClientCommand(name string) bool {
	switch name {
	case "list", "summary", "remove", "help", "--help":
		return true
	}
	return false
}

// runClient dispatches client subcommands that talk to a running server.
func runClient(cmd string, args []string) error {
	switch cmd {
	case "list":
		return runList(args)
	case "summary":
		return runSummary(args)
	case "remove":
		return runRemove(args)
	default:
		printClientHelp()
		return nil
	}
}

func printClientHelp() {
	fmt.Fprintf(os.Stderr, `Usage: animalfarm [flags]            start the server
       animalfarm <command> [options]  query a running server

Commands:
  list      List all animals
  summary   Show farm counters
  remove    Remove an animal by name
  help      Show this help message

Examples:
  animalfarm --port 8080 --nats-url nats://localhost:4222
  animalfarm list --addr http://localhost:3000
  animalfarm remove --name Rex --yes
`)
}

// farmClient is a minimal JSON client for the farm API.
type farmClient struct {
	base string
	http *http.Client
}

func newFarmClient(addr string) *farmClient {
	return &farmClient{
		base: strings.TrimRight(addr, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *farmClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return fmt.Errorf("%s %s: %s", method, path, resp.Status)
		}
		return errors.New(e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func clientFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addr := defaultAddr
	if v := os.Getenv("ANIMALFARM_ADDR"); v != "" {
		addr = v
	}
	return fs, fs.String("addr", addr, "server base URL")
}

func runList(args []string) error {
	fs, addr := clientFlags("list")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var resp struct {
		Count   int             `json:"count"`
		Animals []animal.Status `json:"animals"`
	}
	if err := newFarmClient(*addr).do(context.Background(), http.MethodGet, "/animals", &resp); err != nil {
		return fmt.Errorf("list animals: %w", err)
	}
	if *asJSON || !isTerminal(os.Stdout) {
		return writeJSONTo(os.Stdout, resp.Animals)
	}
	return printAnimals(os.Stdout, resp.Animals)
}

func runSummary(args []string) error {
	fs, addr := clientFlags("summary")
	asJSON := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var sum service.Summary
	if err := newFarmClient(*addr).do(context.Background(), http.MethodGet, "/metrics", &sum); err != nil {
		return fmt.Errorf("farm summary: %w", err)
	}
	if *asJSON || !isTerminal(os.Stdout) {
		return writeJSONTo(os.Stdout, sum)
	}
	return printSummary(os.Stdout, sum)
}

func runRemove(args []string) error {
	fs, addr := clientFlags("remove")
	name := fs.String("name", "", "animal name (required)")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	if !*yes && isTerminal(os.Stdin) {
		ok, err := confirm(os.Stdin, os.Stderr, fmt.Sprintf("Remove %s from the farm? [y/N] ", *name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	var resp struct {
		Message string `json:"message"`
	}
	path := "/animals/" + url.PathEscape(*name)
	if err := newFarmClient(*addr).do(context.Background(), http.MethodDelete, path, &resp); err != nil {
		return fmt.Errorf("remove animal: %w", err)
	}
	fmt.Fprintln(os.Stderr, resp.Message)
	return nil
}

func printAnimals(out io.Writer, animals []animal.Status) error {
	if len(animals) == 0 {
		_, err := fmt.Fprintln(out, "No animals on the farm.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tLEGS\tHUNGRY\tSLEEPY\tDUTY\tACTION\tACTIONS")
	for i := range animals {
		a := &animals[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%t\t%s\t%s\t%s\n",
			a.Name, a.Type, a.Legs, a.IsHungry, a.IsSleepy,
			orDash(a.CurrentDuty), orDash(a.CurrentAction), strings.Join(a.AvailableActions, ","))
	}
	return w.Flush()
}

func printSummary(out io.Writer, sum service.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total\t%d\n", sum.TotalAnimals)
	_, _ = fmt.Fprintf(w, "Birds\t%d\n", sum.Birds)
	_, _ = fmt.Fprintf(w, "Dogs\t%d\n", sum.Dogs)
	_, _ = fmt.Fprintf(w, "Hungry\t%d\n", sum.HungryAnimals)
	_, _ = fmt.Fprintf(w, "Sleepy\t%d\n", sum.SleepyAnimals)
	_, _ = fmt.Fprintf(w, "With duty\t%d\n", sum.AnimalsWithDuties)
	_, _ = fmt.Fprintf(w, "With action\t%d\n", sum.AnimalsWithActions)
	return w.Flush()
}

func writeJSONTo(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm prompts on out and reads a yes/no answer from in.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
