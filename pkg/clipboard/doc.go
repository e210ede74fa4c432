// Package clipboard copies handle suggestions to a clipboard.
//
// A Writer is anything that can place text on a clipboard. System returns the
// operating system clipboard (backed by github.com/atotto/clipboard), Memory
// keeps the last value in process, and WriterFunc adapts a plain function.
//
// Copier sits on top of a Writer and tracks whether the last copy succeeded.
// Failures are swallowed on purpose: a failed write simply leaves the Copier
// in the "not copied" state, nothing is retried and no error reaches the
// caller. This mirrors a copy button whose label flips to "Copied" and back.
//
//	c := clipboard.NewCopier(clipboard.System(), clipboard.WithTimeout(time.Second))
//	if c.CopyHandle(ctx, "@lunarlabs") {
//		fmt.Println("copied", c.Value()) // copied lunarlabs
//	}
//
// CopyHandle copies the bare identifier; the "@" shown next to suggestions is
// display decoration and is stripped before writing.
package clipboard
