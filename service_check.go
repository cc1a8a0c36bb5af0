package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sendrequest/api-contract-tests/apiclient"

	"github.com/pkg/errors"
)

const serviceCheckTimeout = 10 * time.Second

// awaitService polls the companies resource until it answers with any status, so that an
// unreachable service is reported once instead of as a failure of every test.
func awaitService(client *apiclient.Client, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", client.BaseURL())

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get("")
		if err == nil {
			fmt.Fprintf(output, " status %d\n", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return errors.Wrap(err, "service did not respond")
		}
		time.Sleep(time.Millisecond * 100)
	}
}
