// Package errs holds the error types shared by the dispatch domain and its
// adapters.
//
// Every type wraps one of the sentinel values below, so callers classify
// failures with errors.Is and read details with errors.As:
//
//	var nf *errs.ObjectNotFoundError
//	if errors.As(err, &nf) {
//	    log.Warn("missing", "param", nf.ParamName, "id", nf.ID)
//	}
package errs
