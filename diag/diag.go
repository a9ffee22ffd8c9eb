// Package diag holds the small ambient diagnostics stack shared by the
// compiler and vm packages: a package-level structured logger for internal
// invariant violations, and a batch-error aggregator for CLI/test-fixture
// use. Grounded directly on acaada3d_rami3l-golox's own bare, unwrapped use
// of logrus and go-multierror — no facade is built on top of either here,
// matching that directness.
package diag

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Log is the shared logger for DeveloperError-class failures: internal
// invariant violations that are bugs in this program, not in the source
// being processed. Stages log here before returning the error to their
// caller.
var Log = logrus.New()

// Collect aggregates independent failures across a batch of otherwise
// unrelated inputs (several files handed to one CLI invocation, or several
// fixtures in one test table) into a single error. It must never be used
// inside a single lex/parse/compile of one program — those stages are
// first-error-only by design (see SPEC_FULL.md §7).
type Collect struct {
	errs *multierror.Error
}

func (c *Collect) Add(err error) {
	if err == nil {
		return
	}
	c.errs = multierror.Append(c.errs, err)
}

// Err returns nil if nothing was added, else the aggregated error.
func (c *Collect) Err() error {
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}
