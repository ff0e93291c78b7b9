// Package netexerrors provides the error type returned by the netexval library.
//
// Import path: github.com/erraggy/netexval/netexerrors
//
// Validation findings are never errors: grammar, structural and business-rule
// problems are reported as issues in a report. Errors are reserved for conditions
// that prevent a report from being produced, and come in exactly two kinds:
//
//   - Fatal: malformed or unreadable input streams, missing or invalid
//     configuration, and caller protocol violations such as querying a report id
//     that was never initialized or was already cleaned up.
//   - Retryable: transient conditions where the caller may safely re-invoke the
//     same operation, such as a report file locked by another process.
//
// # Usage with errors.Is
//
//	rep, err := v.Validate("FLB", "report-1", "line.xml", data)
//	if errors.Is(err, netexerrors.ErrRetryable) {
//	    // back off and try again
//	}
//	if errors.Is(err, netexerrors.ErrUnknownReport) {
//	    // report id was never started or already cleaned up
//	}
//
// # Usage with errors.As
//
//	var nerr *netexerrors.Error
//	if errors.As(err, &nerr) {
//	    fmt.Println(nerr.Kind, nerr.Op)
//	}
package netexerrors
