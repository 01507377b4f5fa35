package tracing

import (
	"github.com/gin-gonic/gin"
)

// HTTPMiddleware traces every request, continuing a trace passed in the
// X-Trace-ID and X-Span-ID headers and echoing the ids back.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithTrace(c.Request.Context(),
			TraceID(c.GetHeader(TraceHeader)),
			SpanID(c.GetHeader(SpanHeader)))

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		c.Request = c.Request.WithContext(ctx)
		if span != nil {
			c.Header(TraceHeader, string(span.TraceID))
			c.Header(SpanHeader, string(span.SpanID))
		}

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}
		span.Finish()
		tracer.Submit(span)
	}
}
