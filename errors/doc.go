/*
Package errors implements the error handling used by the custody engine and
its extensions.

Every failure returned to a caller wraps one of the registered root errors.
Root errors carry a numeric code that is unique within the process, which
allows the command line and any other client to distinguish failure kinds
without parsing messages.

Use Register(code, description) to declare a root error. Extensions should
declare their own codes only when none of the errors declared here fits.
To create an instance, use ErrXyz.New, ErrXyz.Newf or Wrap(ErrXyz, "...") at
the point of failure so that a stack trace is attached. Only the most inner
wrap records the stack trace.

Once you have an error, use fmt to get more context

	%s is just the error message
	%+v is the full stack trace
*/
package errors
