/*
Package tracing provides lightweight request and load tracing.

A Tracer hands out spans that carry a trace id and a parent span id through
context. Finished spans are submitted to a buffered collector which logs
them: debug level for successes, warn level for spans that recorded an
error.

# Usage

	tracer := tracing.New("preview", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "preview.load")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("url", url)

A nil *Tracer and a nil *Span are valid and record nothing, so tracing can
be left unconfigured.

# Propagation

Incoming X-Trace-ID and X-Span-ID headers continue an existing trace; the
ids of the request span are written back on the response.
*/
package tracing
