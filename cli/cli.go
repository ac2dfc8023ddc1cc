package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"apiprobe/tester"
	"apiprobe/toolkit"
)

var rootCommand = &cobra.Command{
	Use:   "apiprobe",
	Short: "Black-box tester for HTTP CRUD APIs",
	Long:  "apiprobe exercises a REST resource endpoint with a full CRUD lifecycle or a file of declarative test cases, records PASS/FAIL outcomes against expected status codes, and exports a JSON report.",
	Run:   func(cmd *cobra.Command, args []string) { _ = cmd.Help() },
}

var (
	flagCreateJSON string
	flagUpdateJSON string
	flagPatchJSON  string
	flagFields     []string
	flagOut        string
)

var crudCommand = &cobra.Command{
	Use:   "crud [base_url]",
	Short: "Runs the full CRUD lifecycle against a resource endpoint",
	Long:  "Runs create, list, fetch, full update plus verification, partial update plus verification, delete plus verify-gone, and edge cases against the given base URL. Test failures are data, not errors: the command only exits non-zero on configuration problems.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := toolkit.LoadConfig()
		baseURL := resolveBaseURL(args, cfg)

		exec, err := newExecutor(cfg)
		if err != nil {
			fatal(err)
		}

		lc := tester.NewLifecycle(exec, baseURL)
		if err := applyPayloadFlags(lc); err != nil {
			fatal(err)
		}
		lc.ExpectedFields = flagFields

		run := tester.NewRun()
		log.Printf("cli.crud: starting base=%s run=%s", baseURL, run.ID)
		lc.Run(run)
		finishRun(run, baseURL, cfg, nil)
	},
}

var casesCommand = &cobra.Command{
	Use:   "cases [base_url] [case_file]",
	Short: "Replays a JSON or YAML file of declarative test cases",
	Long:  "Reads an ordered list of test cases (method, endpoint, data, expected_status, description, category) from the given file and executes each independently against the base URL. Case files may be hand-written or produced by a generator.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := toolkit.LoadConfig()
		baseURL := args[0]
		if !toolkit.IsAbsoluteURL(baseURL) {
			fatal(fmt.Errorf("base URL must be absolute, got %q", baseURL))
		}

		cases, err := toolkit.LoadCases(args[1])
		if err != nil {
			fatal(err)
		}

		exec, err := newExecutor(cfg)
		if err != nil {
			fatal(err)
		}

		run := tester.NewRun()
		log.Printf("cli.cases: starting base=%s cases=%d run=%s", baseURL, len(cases), run.ID)
		tester.RunCases(exec, baseURL, cases, run)
		finishRun(run, baseURL, cfg, tester.TallyCategories(cases))
	},
}

func resolveBaseURL(args []string, cfg toolkit.Config) string {
	baseURL := cfg.BaseURL
	if len(args) > 0 {
		baseURL = args[0]
	}
	if !toolkit.IsAbsoluteURL(baseURL) {
		fatal(fmt.Errorf("base URL must be absolute, got %q (pass it as an argument or set APIPROBE_BASE_URL)", baseURL))
	}
	return baseURL
}

func newExecutor(cfg toolkit.Config) (*tester.Executor, error) {
	headers := map[string]string{}
	token, err := cfg.BearerToken()
	if err != nil {
		return nil, err
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return tester.NewExecutor(headers), nil
}

func applyPayloadFlags(lc *tester.Lifecycle) error {
	if flagCreateJSON != "" {
		if err := json.Unmarshal([]byte(flagCreateJSON), &lc.CreateData); err != nil {
			return fmt.Errorf("parse --create payload: %w", err)
		}
	}
	if flagUpdateJSON != "" {
		if err := json.Unmarshal([]byte(flagUpdateJSON), &lc.UpdateData); err != nil {
			return fmt.Errorf("parse --update payload: %w", err)
		}
	}
	if flagPatchJSON != "" {
		if err := json.Unmarshal([]byte(flagPatchJSON), &lc.PatchData); err != nil {
			return fmt.Errorf("parse --patch payload: %w", err)
		}
	}
	return nil
}

func finishRun(run *tester.Run, baseURL string, cfg toolkit.Config, categories map[string]int) {
	rep := tester.BuildReport(run, baseURL, categories)
	renderSummary(os.Stdout, rep)

	out := flagOut
	if out == "" {
		out = cfg.ReportPath
	}
	if out == "" {
		out = tester.DefaultReportPath(time.Now())
	}
	if err := tester.WriteReport(out, rep); err != nil {
		fatal(err)
	}
	fmt.Printf("Test results saved to: %s\n", out)
}

func fatal(err error) {
	log.Printf("cli: fatal error=%v", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func init() { // runs automatically at start (go thing)
	crudCommand.Flags().StringVar(&flagCreateJSON, "create", "", "JSON object to POST as the create payload")
	crudCommand.Flags().StringVar(&flagUpdateJSON, "update", "", "JSON object to PUT as the full-update payload")
	crudCommand.Flags().StringVar(&flagPatchJSON, "patch", "", "JSON object to PATCH as the partial-update payload")
	crudCommand.Flags().StringSliceVar(&flagFields, "fields", nil, "expected field paths to validate on create/fetch responses (dotted for nesting)")

	for _, cmd := range []*cobra.Command{crudCommand, casesCommand} {
		cmd.Flags().StringVar(&flagOut, "out", "", "report output path (default api_test_results_<timestamp>.json)")
	}

	rootCommand.AddCommand(crudCommand)
	rootCommand.AddCommand(casesCommand)
}

func Execute() {
	log.Printf("cli.execute: running root command")
	if err := rootCommand.Execute(); err != nil {
		log.Printf("cli.execute: root command failed error=%v", err)
		fmt.Fprintf(os.Stderr, "An error occurred initializing main CLI execution.")
		os.Exit(1)
	}
	log.Printf("cli.execute: root command completed")
}
