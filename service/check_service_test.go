package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/protoscan/domain"
	"github.com/ludo-technologies/protoscan/internal/config"
	"github.com/ludo-technologies/protoscan/internal/testutil"
	"go.uber.org/zap/zaptest"
)

func TestCheckService_Check(t *testing.T) {
	dir := t.TempDir()
	store := testutil.WriteFile(t, dir, "Store.swift", testutil.ProtocolSource("Store", "load(id: String)", "save(item: Item)"))
	tags := testutil.WriteFile(t, dir, "Tags.swift", testutil.ProtocolSource("Tagger", "tag(a: Int, b: Int, c: Int, d: Int)"))
	impl := testutil.WriteFile(t, dir, "Manager.swift", "func run() {\n    guard ok else { return }\n}\n")

	service := NewCheckService(config.DefaultConfig(), zaptest.NewLogger(t))
	report, err := service.Check(context.Background(), domain.CheckRequest{
		DefinitionPaths:     []string{store, tags},
		ImplementationPaths: []string{impl},
	})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 2, len(report.Interfaces))
	testutil.AssertEqual(t, "Store", report.Interfaces[0].Definition.Name)
	testutil.AssertEqual(t, "Tagger", report.Interfaces[1].Definition.Name)
	testutil.AssertEqual(t, 1, len(report.Implementations))
	testutil.AssertEqual(t, 1, report.Implementations[0].Keywords.Guard)
	testutil.AssertFalse(t, report.AllPassed, "four parameters should fail the run")
}

func TestCheckService_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := testutil.WriteFile(t, dir, "Defs.swift", testutil.ProtocolSource("P", "a()"))
	missing := filepath.Join(dir, "Nope.swift")

	service := NewCheckService(config.DefaultConfig(), zaptest.NewLogger(t))
	report, err := service.Check(context.Background(), domain.CheckRequest{
		DefinitionPaths:     []string{missing, present},
		ImplementationPaths: []string{filepath.Join(dir, "Gone.swift")},
	})
	testutil.AssertNoError(t, err)

	notFound := report.IssuesOf(domain.IssueSourceNotFound)
	testutil.AssertEqual(t, 2, len(notFound))
	testutil.AssertEqual(t, missing, notFound[0].Source)
	testutil.AssertEqual(t, "file does not exist", notFound[0].Message)
	testutil.AssertEqual(t, 1, report.EvaluatedDefinitions())
	testutil.AssertTrue(t, report.AllPassed, "missing files must not fail the run")
}

func TestCheckService_DirectoryIsNotReadable(t *testing.T) {
	dir := t.TempDir()

	service := NewCheckService(config.DefaultConfig(), zaptest.NewLogger(t))
	report, err := service.Check(context.Background(), domain.CheckRequest{DefinitionPaths: []string{dir}})
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, 0, report.EvaluatedDefinitions())
	testutil.AssertEqual(t, 1, len(report.IssuesOf(domain.IssueSourceNotFound)))
}

func TestCheckService_NoDefinitions(t *testing.T) {
	service := NewCheckService(config.DefaultConfig(), nil)

	_, err := service.Check(context.Background(), domain.CheckRequest{})

	testutil.AssertError(t, err)
	testutil.AssertEqual(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}

func TestCheckService_ImplementationDisabled(t *testing.T) {
	dir := t.TempDir()
	defs := testutil.WriteFile(t, dir, "Defs.swift", testutil.ProtocolSource("P", "a()"))
	impl := testutil.WriteFile(t, dir, "Impl.swift", strings.Repeat("if a {}\n", 30))

	cfg := config.DefaultConfig()
	cfg.Implementation.Enabled = false

	report, err := NewCheckService(cfg, zaptest.NewLogger(t)).Check(context.Background(), domain.CheckRequest{
		DefinitionPaths:     []string{defs},
		ImplementationPaths: []string{impl},
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, 0, len(report.Implementations))
}

func TestCheckService_CustomThresholds(t *testing.T) {
	dir := t.TempDir()
	defs := testutil.WriteFile(t, dir, "Defs.swift", testutil.ProtocolSource("P", "a(x: Int, y: Int)"))

	cfg := config.DefaultConfig()
	cfg.Protocols.MaxParameters = 1

	report, err := NewCheckService(cfg, zaptest.NewLogger(t)).Check(context.Background(), domain.CheckRequest{
		DefinitionPaths: []string{defs},
	})
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, report.Interfaces[0].Operations[0].Verdict.Passed, "two parameters should exceed a budget of one")
}

func TestCheckService_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"E", "D", "C", "B", "A"} {
		paths = append(paths, testutil.WriteFile(t, dir, name+".swift", testutil.ProtocolSource(name, "run()")))
	}

	cfg := config.DefaultConfig()
	cfg.Performance.MaxGoroutines = 5
	service := NewCheckService(cfg, zaptest.NewLogger(t))

	for i := 0; i < 5; i++ {
		report, err := service.Check(context.Background(), domain.CheckRequest{DefinitionPaths: paths})
		testutil.AssertNoError(t, err)

		var names []string
		for _, iface := range report.Interfaces {
			names = append(names, iface.Definition.Name)
		}
		testutil.AssertEqual(t, "E,D,C,B,A", strings.Join(names, ","))
	}
}

func TestCheckService_Cancelled(t *testing.T) {
	dir := t.TempDir()
	defs := testutil.WriteFile(t, dir, "Defs.swift", testutil.ProtocolSource("P", "a()"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCheckService(config.DefaultConfig(), zaptest.NewLogger(t)).Check(ctx, domain.CheckRequest{
		DefinitionPaths: []string{defs},
	})

	testutil.AssertError(t, err)
	testutil.AssertEqual(t, domain.ErrCodeAnalysisError, domain.ErrorCode(err))
}
