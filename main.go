package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sendrequest/api-contract-tests/apiclient"
	"github.com/sendrequest/api-contract-tests/apitests"
	"github.com/sendrequest/api-contract-tests/framework"
	"github.com/sendrequest/api-contract-tests/internal/servicetwin"
)

func main() {
	os.Exit(run())
}

func run() int {
	var params commandParams
	if !params.Read(os.Args) {
		return 1
	}
	if !params.seedSet {
		params.seed = time.Now().UnixNano()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	var baseURL, insecureBaseURL string
	var extraOptions []apiclient.ClientOption
	if params.twin {
		twin, err := servicetwin.Start(servicetwin.Config{
			RandomSeed: params.seed,
			Locales:    cfg.Locales,
			Logger:     mainDebugLogger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not start service twin: %s\n", err)
			return 1
		}
		defer twin.Close()
		baseURL, insecureBaseURL = twin.URL(), twin.InsecureURL()
		extraOptions = append(extraOptions, apiclient.WithRootCAs(twin.CertPool()))
		fmt.Printf("Running against service twin at %s\n", baseURL)
	}

	suiteConfig, err := cfg.suiteConfig(baseURL, insecureBaseURL, params.seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	suiteConfig.ClientOptions = append(suiteConfig.ClientOptions, extraOptions...)

	checkClient := apiclient.New(suiteConfig.CompaniesURL, suiteConfig.ClientOptions...)
	if err := awaitService(checkClient, serviceCheckTimeout, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, params.marks)

	fmt.Printf("Running test suite against %s (seed %d)\n", suiteConfig.CompaniesURL, params.seed)

	testLogger := ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(suiteConfig, params.filters.AsFilter, params.marks, testLogger)

	fmt.Println()
	if params.selectedNothing(results) {
		fmt.Fprintln(os.Stderr, "The filter parameters did not select any tests")
		return 1
	}
	framework.PrintResults(results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun the failed tests:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		return 1
	}
	return 0
}
