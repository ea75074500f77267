package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/zephyrtronium/exprtree"
	"github.com/zephyrtronium/exprtree/internal/batch"
	"github.com/zephyrtronium/exprtree/internal/watch"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb  string
		batchname     string
		echo, lenient bool
		watching      bool
		prec          int
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.BoolVar(&echo, "echo", false, "print in-order and post-order renderings")
	flag.BoolVar(&lenient, "lenient", false, "accept malformed expressions the way the legacy parser did")
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (0 for float64)")
	flag.StringVar(&batchname, "batch", "", "YAML file of cases to check")
	flag.BoolVar(&watching, "watch", false, "rerun the batch file whenever it changes")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}
	if watching && batchname == "" {
		log.Fatal("-watch requires -batch")
	}

	if batchname != "" {
		runBatch(batchname, watching)
		return
	}

	var opts []exprtree.ParseOption
	if lenient {
		opts = append(opts, exprtree.Lenient())
	}
	srcs, err := inputs(inname, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	ev := evaluator(uint(prec))
	verb += "\n"
	status := 0
	for _, src := range srcs {
		a, err := exprtree.Parse(src, opts...)
		if err != nil {
			fmt.Println(err)
			status = 1
			continue
		}
		if echo {
			fmt.Printf("%s : %s : ", render(a, exprtree.InOrder), render(a, exprtree.PostOrder))
		}
		r, err := ev(a)
		if err != nil {
			fmt.Println(err)
			status = 1
			continue
		}
		fmt.Printf(verb, r)
	}
	os.Exit(status)
}

// evaluator returns a function evaluating trees at the given precision.
func evaluator(prec uint) func(*exprtree.Tree) (any, error) {
	if prec == 0 {
		return func(a *exprtree.Tree) (any, error) {
			return exprtree.Eval(a)
		}
	}
	ctx := exprtree.NewContext(exprtree.Prec(prec))
	return func(a *exprtree.Tree) (any, error) {
		r := ctx.Eval(a)
		if r == nil {
			return nil, ctx.Err()
		}
		return r, nil
	}
}

func render(a *exprtree.Tree, order exprtree.Order) string {
	var b strings.Builder
	for s := range exprtree.Render(a, order) {
		if b.Len() != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return b.String()
}

// inputs collects expressions from arguments, then from the input file or
// stdin. Blank lines are skipped.
func inputs(inname string, args []string) ([]string, error) {
	srcs := append([]string(nil), args...)
	f, err := infile(inname, len(args) == 0)
	if err != nil || f == nil {
		return srcs, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	return srcs, sc.Err()
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

func runBatch(name string, watching bool) {
	run := func() error {
		f, err := batch.LoadFile(name)
		if err != nil {
			return err
		}
		failed, err := batch.WriteReport(os.Stdout, f.Run())
		if err != nil {
			return err
		}
		if failed != 0 {
			return fmt.Errorf("%d cases failed", failed)
		}
		return nil
	}
	err := run()
	if !watching {
		if err != nil {
			log.Fatal(err)
		}
		return
	}
	if err != nil {
		log.Print(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watch.Watch(ctx, name, log.Default(), run); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
