package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/infra/workspacefinder"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"example", false},
		{"example.yaml", false},
		{"./example.yaml", true},
		{"lists/example.yaml", true},
		{"/abs/path/example.hcl", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists_True(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	writeFile(t, p, "hi")
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
}

func TestFileExists_False(t *testing.T) {
	tmp := t.TempDir()
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
	if fileExists(tmp) {
		t.Error("expected fileExists=false for a directory")
	}
}

// --- printReport ---

func sampleReport() domain.Report {
	return domain.Report{
		Policy: domain.PolicySkip,
		Results: []domain.ListResult{
			{Name: "first", Sum: domain.SumResult{Total: domain.IntValue(15), Count: 5}},
			{Name: "second", Source: "lists/example.yaml", Sum: domain.SumResult{Total: domain.IntValue(12), Count: 4, Skipped: []int{2}}},
			{Name: "floats", Sum: domain.SumResult{Total: domain.FloatValue(4), Count: 2, Skipped: []int{0, 3}}},
		},
	}
}

func TestPrintReport_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The sum of the list is: 15\n" +
		"The sum of the list is: 12 (skipped 1 element)\n" +
		"The sum of the list is: 4.0 (skipped 2 elements)\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintReport_EmptyFormat_IsPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, domain.Report{}, ""); err != nil {
		t.Fatalf("empty format should behave like pretty, got error: %v", err)
	}
}

func TestPrintReport_JSON_ValidOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Policy  string `json:"policy"`
		Count   int    `json:"count"`
		Skipped int    `json:"skipped"`
		Results []struct {
			Name    string          `json:"name"`
			Source  string          `json:"source"`
			Sum     json.RawMessage `json:"sum"`
			Kind    string          `json:"kind"`
			Count   int             `json:"count"`
			Skipped []int           `json:"skipped"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload.Policy != "skip" {
		t.Errorf("expected policy=skip, got %q", payload.Policy)
	}
	if payload.Count != 11 || payload.Skipped != 3 {
		t.Errorf("expected report count=11 skipped=3, got count=%d skipped=%d", payload.Count, payload.Skipped)
	}
	if len(payload.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(payload.Results))
	}
	if string(payload.Results[0].Sum) != "15" || payload.Results[0].Kind != "int" {
		t.Errorf("unexpected first result: %+v", payload.Results[0])
	}
	if payload.Results[0].Skipped == nil || len(payload.Results[0].Skipped) != 0 {
		t.Errorf("expected empty skipped array, got %v", payload.Results[0].Skipped)
	}
	if payload.Results[1].Source != "lists/example.yaml" || payload.Results[1].Skipped[0] != 2 {
		t.Errorf("unexpected second result: %+v", payload.Results[1])
	}
	if string(payload.Results[2].Sum) != "4.0" || payload.Results[2].Kind != "float" {
		t.Errorf("expected float sum 4.0, got %s (%s)", payload.Results[2].Sum, payload.Results[2].Kind)
	}
}

func TestPrintReport_JSON_NonFiniteIsString(t *testing.T) {
	r := domain.Report{Results: []domain.ListResult{
		{Name: "x", Sum: domain.SumResult{Total: domain.FloatValue(math.Inf(1))}},
	}}
	var buf bytes.Buffer
	if err := printReport(&buf, r, "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"sum": "inf"`) {
		t.Errorf("expected inf as a string, got:\n%s", buf.String())
	}
}

func TestPrintReport_UnknownFormat_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	err := printReport(&buf, domain.Report{}, "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected error to mention format, got: %v", err)
	}
}

// --- error rendering ---

func TestUserMessage_IncompatibleElement(t *testing.T) {
	err := fmt.Errorf("list %q: %w", "second", &domain.OpError{
		Op:   "domain.sum",
		Kind: domain.KindIncompatibleType,
		Err:  &domain.ElementError{Index: 2, Element: domain.InvalidValue("str", "3"), Accumulator: domain.IntValue(3)},
	})
	want := "unsupported operand type(s) for +=: 'int' and 'str' (element 2: '3')"
	if got := userMessage(err); got != want {
		t.Errorf("userMessage = %q, want %q", got, want)
	}
}

func TestUserMessage_Kinds(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindNotFound}, "Workspace not found"},
		{&domain.OpError{Op: "cli.select_list", Kind: domain.KindNotFound}, "List not found"},
		{&domain.OpError{Op: "cli.resolve_list", Kind: domain.KindNotFound}, "List file not found"},
		{&domain.OpError{Op: "domain.sum", Kind: domain.KindOverflow}, "Integer overflow"},
		{&domain.OpError{Op: "workspacefinder.loadconfig", Kind: domain.KindInvalidConfig, Path: "/w/sumlist.yaml", Err: errors.New("yaml: line 3: did not find expected key")}, "Invalid config at sumlist.yaml line 3"},
		{&domain.OpError{Op: "yamllist.load", Kind: domain.KindInvalidInput, Path: "/w/lists/a.yaml"}, "Invalid list at a.yaml"},
		{errors.New("boom"), "Unexpected error"},
	}
	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("userMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestRenderError_WritesMessageAndDetail(t *testing.T) {
	var buf bytes.Buffer
	renderError(&buf, &domain.OpError{Op: "cli.resolve_list", Kind: domain.KindNotFound, Path: "lists"})
	out := buf.String()
	if !strings.HasPrefix(out, "error: List file not found\n") {
		t.Errorf("unexpected first line:\n%s", out)
	}
	if !strings.Contains(out, "cli.resolve_list: not_found") {
		t.Errorf("expected detail line, got:\n%s", out)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"demo", "sum", "run", "lists", "init", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, flag := range []string{"workspace", "policy", "format", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected --%s persistent flag", flag)
		}
	}
}

func TestRunCmd_Flags(t *testing.T) {
	cmd := runCmd(&globalFlags{})
	for _, flag := range []string{"list", "jsonpath"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on run command", flag)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag on init command")
	}
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- end to end ---

func TestRoot_DemoPrintsFirstSumThenFails(t *testing.T) {
	out, err := execute(t, "-w", t.TempDir())
	if out != "The sum of the list is: 15\n" {
		t.Errorf("unexpected output:\n%s", out)
	}
	if err == nil {
		t.Fatal("expected error for the mixed list")
	}
	if !domain.IsKind(err, domain.KindIncompatibleType) {
		t.Errorf("expected incompatible_type, got %v", err)
	}
	if !strings.Contains(err.Error(), "'int' and 'str'") {
		t.Errorf("expected operand types in error, got %v", err)
	}
}

func TestDemo_SkipPolicy(t *testing.T) {
	out, err := execute(t, "demo", "-w", t.TempDir(), "--policy", "skip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The sum of the list is: 15\nThe sum of the list is: 12 (skipped 1 element)\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestDemo_InvalidPolicy(t *testing.T) {
	_, err := execute(t, "demo", "-w", t.TempDir(), "--policy", "coerce")
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDemo_JSONPrintsCompletedListsOnFailure(t *testing.T) {
	out, err := execute(t, "demo", "-w", t.TempDir(), "--format", "json")
	if err == nil {
		t.Fatal("expected error for the mixed list")
	}
	var payload map[string]any
	if jerr := json.Unmarshal([]byte(out), &payload); jerr != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", jerr, out)
	}
	results, _ := payload["results"].([]any)
	if len(results) != 1 {
		t.Errorf("expected 1 completed result, got %d", len(results))
	}
}

func TestDemo_InvalidFormatFlagFailsBeforeSumming(t *testing.T) {
	out, err := execute(t, "demo", "-w", t.TempDir(), "--format", "xml")
	if out != "" {
		t.Errorf("expected no output, got:\n%s", out)
	}
	if !errors.Is(err, domain.ErrInvalidConfig) || !strings.Contains(err.Error(), "xml") {
		t.Errorf("expected invalid format error, got %v", err)
	}
}

func TestDemo_InvalidConfiguredFormatFailsBeforeSumming(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "sumlist.yaml"), "sumlist:\n  defaults:\n    format: xml\n")

	out, err := execute(t, "-w", ws)
	if out != "" {
		t.Errorf("expected no output, got:\n%s", out)
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Errorf("expected invalid_config from sumlist.yaml, got %v", err)
	}
}

func TestDemo_FormatFlagOverridesConfig(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "sumlist.yaml"), "sumlist:\n  defaults:\n    format: json\n")

	out, err := execute(t, "-w", ws, "--format", "pretty")
	if out != "The sum of the list is: 15\n" {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !domain.IsKind(err, domain.KindIncompatibleType) {
		t.Errorf("expected incompatible_type, got %v", err)
	}
}

func TestSum_Literals(t *testing.T) {
	out, err := execute(t, "sum", "-w", t.TempDir(), "[1, 2.5, 3]", "[]", "[10, -4]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The sum of the list is: 6.5\nThe sum of the list is: 0\nThe sum of the list is: 6\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestSum_BadLiteral(t *testing.T) {
	_, err := execute(t, "sum", "-w", t.TempDir(), "[1, 2")
	if err == nil || !strings.Contains(err.Error(), "argument 1") {
		t.Errorf("expected error naming the argument, got %v", err)
	}
}

func TestRun_WorkspaceFormats(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "lists", "nums.yaml"), "[1, 2, 3]\n")
	writeFile(t, filepath.Join(ws, "lists", "orders.json"), `{"orders":[{"total":1},{"total":2.5}]}`)
	writeFile(t, filepath.Join(ws, "lists", "blocks.hcl"), "list \"a\" {\n  values = [1, 2, \"x\"]\n}\n")

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"run", "nums", "-w", ws}, "The sum of the list is: 6\n"},
		{[]string{"run", "orders.json", "-w", ws, "--jsonpath", "$.orders[*].total"}, "The sum of the list is: 3.5\n"},
		{[]string{"run", "blocks", "-w", ws, "--policy", "skip"}, "The sum of the list is: 3 (skipped 1 element)\n"},
		{[]string{"run", filepath.Join(ws, "lists", "nums.yaml")}, "The sum of the list is: 6\n"},
	}
	for _, c := range cases {
		out, err := execute(t, c.args...)
		if err != nil {
			t.Errorf("%v: unexpected error: %v", c.args, err)
			continue
		}
		if out != c.want {
			t.Errorf("%v: got %q, want %q", c.args, out, c.want)
		}
	}
}

func TestRun_ListFilter(t *testing.T) {
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "lists", "example.yaml"),
		"lists:\n  - name: first\n    values: [1, 2, 3, 4, 5]\n  - name: second\n    values: [1, 2, '3', 4, 5]\n")

	out, err := execute(t, "run", "example", "-w", ws, "--list", "FIRST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "The sum of the list is: 15\n" {
		t.Errorf("unexpected output: %q", out)
	}

	_, err = execute(t, "run", "example", "-w", ws, "--list", "third")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, err := execute(t, "run", "nope", "-w", t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestInit_ThenRunExample(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, "init", "--path", ws)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Initialized sumlist workspace") {
		t.Errorf("unexpected init output: %q", out)
	}
	for _, p := range []string{"sumlist.yaml", filepath.Join("lists", "example.yaml"), filepath.Join(".sumlist", "logs")} {
		if _, err := os.Stat(filepath.Join(ws, p)); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	out, err = execute(t, "run", "example", "-w", ws, "--policy", "skip")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "The sum of the list is: 15\nThe sum of the list is: 12 (skipped 1 element)\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}

	out, err = execute(t, "lists", "-w", ws)
	if err != nil {
		t.Fatalf("lists failed: %v", err)
	}
	if !strings.Contains(out, "example.yaml  (first, second)") {
		t.Errorf("unexpected lists output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "sumlist ") {
		t.Errorf("unexpected version output: %q", out)
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

type stubLocator struct {
	root string
	err  error
}

func (s stubLocator) FindRoot(string) (string, error) { return s.root, s.err }

func TestResolveWorkspaceRoot_UsesLocator(t *testing.T) {
	got, err := resolveWorkspaceRoot(stubLocator{root: "/ws"}, "")
	if err != nil || got != "/ws" {
		t.Fatalf("expected /ws, got %q (%v)", got, err)
	}

	notFound := &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	got, err = resolveWorkspaceRoot(stubLocator{err: notFound}, "")
	if err != nil || got != "" {
		t.Fatalf("expected no workspace and no error, got %q (%v)", got, err)
	}
}

func TestDebug_PrintsLogPath(t *testing.T) {
	ws := t.TempDir()
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs([]string{"sum", "-w", ws, "--debug", "[1, 2]"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(ws, ".sumlist", "logs", "sumlist.log")
	if !strings.Contains(errb.String(), "debug log: "+want) {
		t.Errorf("expected log path on stderr, got:\n%s", errb.String())
	}
	if out.String() != "The sum of the list is: 3\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}
