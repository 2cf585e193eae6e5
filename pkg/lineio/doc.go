/*
Package lineio provides line-oriented input sources for the wicket engine.

A Source yields one logical line per call, already decoded and stripped of its
trailing line terminator. It is the single seam where terminal-specific
configuration lives (echo suppression, completion, history), insulating the
engine loop from the host terminal.

Three implementations are provided:

  - VisibleSource: plain echoed input from any io.Reader.
  - HiddenSource: unechoed input, using the terminal's no-echo mode when the
    reader is a real terminal and falling back to a plain read otherwise.
  - ReadlineSource: echoed input with tab completion and history, backed by
    a readline instance.

Sources are built for a single session: reads are served by one background
pump goroutine, and a line completed after the caller's context has expired
is parked and never delivered. Close tears the pump down.
*/
package lineio
