package main

import (
	"fmt"
	"io"

	"github.com/gs1/barcode-engine/pkg/encoder"
)

// selftestCase is one fixed scenario exercised by `gs1encode selftest`
// (plain linear, linear with a '|'-linked composite secondary, and one
// standalone symbol per composite variant).
type selftestCase struct {
	name string
	req  encoder.Request
}

var selftestCases = []selftestCase{
	{
		name: "rss-expanded general",
		req:  encoder.Request{Variant: encoder.VariantRSSExpanded, Payload: "0112345678901231"},
	},
	{
		name: "rss-expanded with CC-A secondary",
		req: encoder.Request{
			Variant:          encoder.VariantRSSExpanded,
			Payload:          "0112345678901231|21SERIAL1",
			SecondaryVariant: encoder.VariantCCA,
		},
	},
	{
		name: "standalone CC-A",
		req:  encoder.Request{Variant: encoder.VariantCCA, Payload: "21SERIAL1"},
	},
	{
		name: "standalone CC-B",
		req:  encoder.Request{Variant: encoder.VariantCCB, Payload: "21SERIAL1", CCBCols: 4},
	},
	{
		name: "standalone CC-C",
		req:  encoder.Request{Variant: encoder.VariantCCC, Payload: "21SERIAL1"},
	},
}

// runSelftest runs every selftestCase through Encode and reports
// pass/fail to w, returning an error if any case fails -- the smoke test
// `gs1encode selftest` exposes for a quick "did the build come out
// usable" check without feeding it a real payload file.
func runSelftest(w io.Writer) error {
	failures := 0
	for _, c := range selftestCases {
		_, res, err := encoder.Encode(c.req)
		if err != nil {
			failures++
			fmt.Fprintf(w, "FAIL %-32s %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(w, "OK   %-32s %d rows\n", c.name, len(res.Rows()))
	}
	if failures > 0 {
		return fmt.Errorf("selftest: %d of %d cases failed", failures, len(selftestCases))
	}
	return nil
}
