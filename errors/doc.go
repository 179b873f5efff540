/*
Package errors implements custom error interfaces for treasury.

The idea is to reuse as many errors from this package as possible and define custom package
errors when absolutely necessary. Ledger, exchange and gate error kinds are declared here as well,
because they are matched across packages (the gate surfaces ledger errors of the action it
executes).

If you want to register a custom error - use Register(code, description).
For reusing errors - use Errxxx.New and Errxxx.Newf, or Wrap and Wrapf.
Code stands for ABCI error code, which allows to distinguish types of errors
on the client side and act accordingly.

Ensure you create the custom error using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of creation to attach a stacktrace. If you wrap multiple times, only the first wrap records
the stacktrace. Use %+v to print it.
*/
package errors
