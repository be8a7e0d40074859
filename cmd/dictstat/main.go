/*
Command dictstat prints statistics about a dictionary file and optionally
checks that every word of a word list is present in it.

	dictstat -dict ipadic.dict [-verify ipadic.csv]
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/morph"
	"github.com/npillmayer/morph/internal/logger"
	"github.com/npillmayer/morph/lexicon"
	"github.com/npillmayer/morph/unit"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal("dictstat failed", "err", err)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("dictstat", flag.ContinueOnError)
	dictPath := flags.String("dict", "", "dictionary file built by mkdict")
	verifyPath := flags.String("verify", "", "CSV word list whose surfaces must all be present")
	debugMode := flags.Bool("d", false, "Toggle debug mode")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *dictPath == "" {
		flags.Usage()
		return fmt.Errorf("-dict is required")
	}
	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
	}
	logr := logger.Setup("dictstat", level)

	dict, err := morph.OpenDictionary(*dictPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "backend\t%s\n", dict.Backend)
	fmt.Fprintf(stdout, "entries\t%d\n", dict.Count())
	if st, ok := dict.Stats(); ok {
		fmt.Fprintf(stdout, "slots\t%d\n", st.TotalSlots)
		fmt.Fprintf(stdout, "used\t%d\n", st.UsedSlots)
		fmt.Fprintf(stdout, "fill\t%.4f\n", st.FillRatio())
		fmt.Fprintf(stdout, "max-state\t%d\n", st.MaxState)
	}
	if *verifyPath == "" {
		return nil
	}
	f, err := os.Open(*verifyPath)
	if err != nil {
		return err
	}
	defer f.Close()
	found, missing := 0, 0
	r := lexicon.NewReader(f)
	for {
		surface, _, err := r.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("%s: %w", *verifyPath, err)
		}
		if _, ok := dict.Get(unit.Encode[uint16](surface)); ok {
			found++
			continue
		}
		missing++
		logr.Warn("word not in dictionary", "surface", surface)
	}
	fmt.Fprintf(stdout, "verified\t%d\n", found)
	if missing > 0 {
		return fmt.Errorf("%d of %d words missing from %s", missing, found+missing, *dictPath)
	}
	return nil
}
