package main

import (
	"errors"
	"flag"
	"io"
	"time"
)

type AppFlags struct {
	Domain     string
	ConfigFile string
	OutputFile string
	Timeout    time.Duration
	Serve      string
	Types      string
}

// ParseFlags parses args (without the program name). Exactly one of -domain and
// -serve must be given.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("assetscout", flag.ContinueOnError)
	fs.SetOutput(output)

	domain := fs.String("domain", "", "Domain to crawl, e.g. example.com")
	domainAlias := fs.String("d", "", "Alias for -domain")

	configFile := fs.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := fs.String("c", "", "Alias for -config")

	outputFile := fs.String("output", "", "Write the JSON result to this file instead of stdout")
	outputFileAlias := fs.String("o", "", "Alias for -output")

	timeout := fs.Duration("timeout", 0, "Upper bound for one crawl, e.g. 30s (0 means no limit)")
	timeoutAlias := fs.Duration("t", 0, "Alias for -timeout")

	serve := fs.String("serve", "", "Serve the HTTP API on this address instead of crawling once, e.g. 127.0.0.1:8080")
	serveAlias := fs.String("s", "", "Alias for -serve")

	types := fs.String("type", "", "Comma-separated asset types to keep in the output, e.g. image,video")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		Domain:     firstSet(*domain, *domainAlias),
		ConfigFile: firstSet(*configFile, *configFileAlias),
		OutputFile: firstSet(*outputFile, *outputFileAlias),
		Serve:      firstSet(*serve, *serveAlias),
		Types:      *types,
		Timeout:    *timeout,
	}
	if flags.Timeout == 0 {
		flags.Timeout = *timeoutAlias
	}
	if flags.Domain == "" && fs.NArg() > 0 {
		flags.Domain = fs.Arg(0)
	}

	switch {
	case flags.Domain == "" && flags.Serve == "":
		return flags, errors.New("-domain or -serve is required")
	case flags.Domain != "" && flags.Serve != "":
		return flags, errors.New("-domain and -serve cannot be combined")
	case flags.Timeout < 0:
		return flags, errors.New("-timeout must not be negative")
	}
	return flags, nil
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
