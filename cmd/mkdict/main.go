/*
Command mkdict builds a dictionary file from a CSV word list.

	mkdict -words ipadic.csv -out ipadic.dict [-backend staged] [-strategy bits] [-config morph.toml]

Each line of the word list holds "surface,left_id,right_id,cost"; further
columns are ignored. Use "-" to read the word list from stdin. After writing,
the file is read back and its entry count compared.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/morph"
	"github.com/npillmayer/morph/internal/config"
	"github.com/npillmayer/morph/internal/logger"
	"github.com/npillmayer/morph/lexicon"
)

func main() {
	if err := run(os.Args[1:], os.Stdin); err != nil {
		log.Fatal("mkdict failed", "err", err)
	}
}

func run(args []string, stdin io.Reader) error {
	flags := flag.NewFlagSet("mkdict", flag.ContinueOnError)
	configPath := flags.String("config", "", "TOML configuration file")
	words := flags.String("words", "", "CSV word list, - for stdin")
	out := flags.String("out", "", "dictionary file to write")
	backend := flags.String("backend", "", "dictionary backend: array, staged, hash or trie (overrides config)")
	strategy := flags.String("strategy", "", "search cache strategy: none, bool, bits or links (overrides config)")
	verify := flags.Bool("verify-cache", false, "cross-check the search cache while building (slow)")
	debugMode := flags.Bool("d", false, "Toggle debug mode")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *words == "" || *out == "" {
		flags.Usage()
		return fmt.Errorf("both -words and -out are required")
	}
	conf, err := config.LoadConfigOrDefault(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		conf.Build.Backend = *backend
	}
	if *strategy != "" {
		conf.Build.Strategy = *strategy
	}
	if *verify {
		conf.Build.VerifyCache = true
	}
	if *debugMode {
		conf.Log.Level = "debug"
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	logr := logger.Setup("mkdict", conf.LogLevel())

	b, _ := conf.Backend()
	opts, _ := conf.DatOptions()
	dict, err := morph.NewDictionary(b, opts)
	if err != nil {
		return err
	}
	src := stdin
	if *words != "-" {
		f, err := os.Open(*words)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	start := time.Now()
	n, err := lexicon.Load(dict, src)
	if err != nil {
		return fmt.Errorf("%s: %w", *words, err)
	}
	logr.Info("loaded word list", "entries", n, "backend", b, "strategy", opts.Strategy, "took", time.Since(start))
	if err := dict.SaveFile(*out); err != nil {
		return err
	}
	if st, ok := dict.Stats(); ok {
		logr.Info("double array", "slots", st.TotalSlots, "used", st.UsedSlots,
			"fill", fmt.Sprintf("%.2f", st.FillRatio()))
	}
	loaded, err := morph.OpenDictionary(*out)
	if err != nil {
		return fmt.Errorf("reading back %s: %w", *out, err)
	}
	if loaded.Count() != dict.Count() {
		return fmt.Errorf("%s holds %d entries, expected %d", *out, loaded.Count(), dict.Count())
	}
	logr.Info("wrote dictionary", "file", *out, "entries", loaded.Count(), "took", time.Since(start))
	return nil
}
