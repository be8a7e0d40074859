/*
Command analyze segments text read from stdin, one sentence per line.

	analyze -dict ipadic.dict -matrix matrix.def [-config morph.toml] < text.txt

For every token it prints the surface form, its left-context id and its cost
(word cost plus connection cost to the following token), separated by tabs.
A line "EOS <total cost>" ends each sentence.
*/
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/morph"
	"github.com/npillmayer/morph/internal/config"
	"github.com/npillmayer/morph/internal/logger"
	"github.com/npillmayer/morph/matrix"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal("analyze failed", "err", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("analyze", flag.ContinueOnError)
	configPath := flags.String("config", "", "TOML configuration file")
	dictPath := flags.String("dict", "", "dictionary file built by mkdict")
	matrixPath := flags.String("matrix", "", "connection cost matrix")
	debugMode := flags.Bool("d", false, "Toggle debug mode")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *dictPath == "" || *matrixPath == "" {
		flags.Usage()
		return fmt.Errorf("both -dict and -matrix are required")
	}
	conf, err := config.LoadConfigOrDefault(*configPath)
	if err != nil {
		return err
	}
	if *debugMode {
		conf.Log.Level = "debug"
	}
	logr := logger.Setup("analyze", conf.LogLevel())

	dict, err := morph.OpenDictionary(*dictPath)
	if err != nil {
		return err
	}
	m, err := loadMatrix(*matrixPath)
	if err != nil {
		return err
	}
	logr.Debug("ready", "entries", dict.Count(), "matrix", fmt.Sprintf("%dx%d", m.Height, m.Width))
	fb := conf.Fallback()

	w := bufio.NewWriter(stdout)
	defer w.Flush()
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		result, err := morph.AnalyzeString(strings.TrimSpace(scanner.Text()), dict, m, fb)
		if errors.Is(err, morph.ErrNoSegmentation) {
			fmt.Fprintln(w, "EOS")
			continue
		} else if err != nil {
			return err
		}
		for tok := range result.All() {
			fmt.Fprintf(w, "%s\t%d\t%d\n", tok.Text(), tok.LeftID, tok.Cost)
		}
		fmt.Fprintf(w, "EOS\t%d\n", result.Cost)
	}
	return scanner.Err()
}

func loadMatrix(path string) (*matrix.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := matrix.Load(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
