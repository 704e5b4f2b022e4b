package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/repositories/abilities"
)

func main() {
	var strict bool
	flag.BoolVar(&strict, "strict", false, "treat warnings as errors")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ability-audit [-strict] [file or directory ...]\n")
		fmt.Fprintf(flag.CommandLine.Output(), "audits the embedded ability set when no paths are given\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run(context.Background(), flag.Args(), strict, os.Stdout))
}

// run audits the definitions in paths and returns the exit code
func run(ctx context.Context, paths []string, strict bool, out io.Writer) int {
	var (
		defs []*ability.Definition
		err  error
	)
	if len(paths) == 0 {
		defs, err = abilities.LoadEmbedded(ctx)
	} else {
		defs, err = abilities.LoadFiles(ctx, paths...)
	}
	if abilerr.IsValidation(err) {
		fmt.Fprintf(out, "invalid ability data: %v\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(out, "failed to load: %v\n", err)
		return 2
	}

	findings := audit(defs)
	for _, f := range findings {
		fmt.Fprintln(out, f)
	}

	errs, warns := 0, 0
	for _, f := range findings {
		if f.Severity == ability.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	fmt.Fprintf(out, "%d abilities, %d errors, %d warnings\n", len(defs), errs, warns)

	if errs > 0 || (strict && warns > 0) {
		return 1
	}
	return 0
}

// audit runs the catalog checks plus the ones that need the engine
func audit(defs []*ability.Definition) []ability.Finding {
	findings := ability.Audit(defs)

	if _, err := abilities.NewInMemoryRepository(defs...); err != nil {
		findings = append(findings, ability.Finding{Ability: ability.NoAbility, Severity: ability.SeverityError, Message: err.Error()})
	}

	for _, def := range defs {
		for _, lim := range def.Limitations {
			if lim.Type != ability.LimitExpression {
				continue
			}
			if err := engine.CompileLimitation(lim.Expr); err != nil {
				findings = append(findings, ability.Finding{Ability: def.ID, Severity: ability.SeverityError, Message: err.Error()})
			}
		}
	}
	return findings
}
