// Package encoder is the orchestrator (spec.md §4.K): it accepts a
// request, runs the compaction automaton and method selector, sizes and
// pads the bit stream, dispatches to the right codeword packer and row
// layout, and returns the finished element-width rows. It is the only
// package that knows the control-flow order E -> F -> G -> (H | I | J)
// spec.md §2 describes; every package it calls is a leaf with no
// knowledge of the others.
//
// Per spec.md §9's re-architecture note, all per-call state lives on a
// Context value instead of file-scope globals, and errors are surfaced
// both as a Go error return (idiomatic) and as a sticky flag on the
// Context (Err()), mirroring the original's errFlag/errMsg globals.
package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gs1/barcode-engine/pkg/compact"
	"github.com/gs1/barcode-engine/pkg/driver"
)

// Variant identifies which symbology a Request targets.
type Variant int

const (
	VariantRSSExpanded Variant = iota
	VariantCCA
	VariantCCB
	VariantCCC
)

func (v Variant) String() string {
	switch v {
	case VariantRSSExpanded:
		return "RSS-Expanded"
	case VariantCCA:
		return "CC-A"
	case VariantCCB:
		return "CC-B"
	case VariantCCC:
		return "CC-C"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// SymbolTypeAI records which of the two "symbol type" AIs (if any)
// triggered a special compaction path, part of the Encoder context data
// model in spec.md §3.
type SymbolTypeAI int

const (
	SymNone SymbolTypeAI = iota
	SymAI21
	SymAI8004
)

// Context holds all per-call encoder state (spec.md §3's "Encoder
// context"). A Context is created fresh by Encode and never reused
// across calls, per spec.md §5's sharing model.
type Context struct {
	Variant    Variant
	LinFlag    int // +1 linear, 0 2D CC-A/B, -1 2D CC-C, per spec.md §3
	SymbolType SymbolTypeAI
	CCBCols    int // data-column count (2, 3, or 4) for a CC-B request

	err error
}

// Err returns the sticky error set by the first failing pipeline step,
// or nil if the encode completed cleanly -- the Go-idiomatic read of
// spec.md §7's "single error flag plus a text message" surface.
func (c *Context) Err() error { return c.err }

func (c *Context) fail(err error) error {
	if c.err == nil {
		c.err = err
	}
	return err
}

// Request describes one symbol to encode.
type Request struct {
	// Payload is the GS1 AI data string. A '|' splits a linear primary
	// from its 2D composite secondary (spec.md §3); only meaningful
	// when Variant is VariantRSSExpanded and SecondaryVariant is set.
	Payload string
	Variant Variant
	// SecondaryVariant selects the 2D component's symbology (CC-A/B/C)
	// when Payload contains a secondary component. Ignored otherwise.
	SecondaryVariant Variant
	// CCBCols is the CC-B data-column count (2, 3, or 4); required
	// whenever a CC-B component (primary or secondary) is requested.
	CCBCols int
	// PixMult and SepHeight are pixel-sizing hints, out of the core's
	// scope per spec.md §1. Encode multiplies each row's Height by
	// PixMult; it does not read SepHeight.
	PixMult, SepHeight int
}

// Result is the row output of one Encode call, split into its composite
// and linear components so a caller can space and render them
// independently (or concatenate them with a separator, as EncodeToSink
// does).
type Result struct {
	Composite []driver.Row // empty for a standalone linear request
	Linear    []driver.Row // empty for a standalone CC-A/B/C request
}

// Rows concatenates Composite and Linear when both are present, with one
// separator row between them: a copy of the last composite row with
// Guards set. No checkered (alternating-module) pattern is generated.
func (r Result) Rows() []driver.Row {
	if len(r.Composite) == 0 {
		return r.Linear
	}
	if len(r.Linear) == 0 {
		return r.Composite
	}
	out := make([]driver.Row, 0, len(r.Composite)+len(r.Linear)+1)
	out = append(out, r.Composite...)
	sep := r.Composite[len(r.Composite)-1]
	sep.Guards = true
	out = append(out, sep)
	out = append(out, r.Linear...)
	return out
}

// Encode runs the full pipeline for req and returns its rows, or an
// error if any stage fails. The returned error is identical to the one
// Context.Err() would report; Encode returns a *Context too so callers
// that want the sticky-flag view (or want to feed Result.Rows() to a
// driver.Sink) can do so without re-running anything.
func Encode(req Request) (*Context, Result, error) {
	ctx := &Context{Variant: req.Variant, CCBCols: req.CCBCols}

	primary, secondary, hasSecondary := splitPayload(req.Payload)

	switch req.Variant {
	case VariantRSSExpanded:
		ctx.LinFlag = 1
		linRows, err := ctx.encodeLinear([]byte(primary), hasSecondary, req.PixMult)
		if err != nil {
			return ctx, Result{}, ctx.fail(err)
		}
		res := Result{Linear: linRows}
		if hasSecondary {
			secCtx := &Context{Variant: req.SecondaryVariant, CCBCols: req.CCBCols}
			compRows, err := secCtx.encodeComposite([]byte(secondary), req.PixMult)
			if err != nil {
				return ctx, Result{}, ctx.fail(fmt.Errorf("encoder: secondary component: %w", err))
			}
			res.Composite = compRows
		}
		return ctx, res, nil

	case VariantCCA, VariantCCB, VariantCCC:
		if hasSecondary {
			return ctx, Result{}, ctx.fail(fmt.Errorf("encoder: a standalone 2D request cannot carry a '|'-linked secondary"))
		}
		ctx.LinFlag = 0
		if req.Variant == VariantCCC {
			ctx.LinFlag = -1
		}
		rows, err := ctx.encodeComposite([]byte(primary), req.PixMult)
		if err != nil {
			return ctx, Result{}, ctx.fail(err)
		}
		return ctx, Result{Composite: rows}, nil

	default:
		return ctx, Result{}, ctx.fail(fmt.Errorf("encoder: unknown variant %v", req.Variant))
	}
}

// EncodeToSink runs Encode and streams the combined result to sink.
func EncodeToSink(req Request, sink driver.Sink) error {
	_, res, err := Encode(req)
	if err != nil {
		return err
	}
	return driver.Run(sink, res.Rows())
}

// splitPayload divides a data string on its first '|' into a linear
// primary and a 2D secondary. Per spec.md §9's anti-mutation note, this
// never modifies req.Payload; it only slices it.
func splitPayload(payload string) (primary, secondary string, hasSecondary bool) {
	if i := strings.IndexByte(payload, '|'); i >= 0 {
		return payload[:i], payload[i+1:], true
	}
	return payload, "", false
}

// parseDigits converts a decimal digit string to an int, wrapping any
// error with enough context to locate the offending AI value.
func parseDigits(ai, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("encoder: AI %s value %q is not numeric: %w", ai, value, err)
	}
	return n, nil
}

// validatePayload runs the lexical character-class check (spec.md §4.K
// step 1) ahead of any compaction.
func validatePayload(data []byte, allowCaret bool) error {
	return compact.Validate(data, allowCaret)
}
