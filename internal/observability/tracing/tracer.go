package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is shared by the whole application; spans created through it are
// attributed to the "bookmap" instrumentation scope.
var tracer = otel.Tracer("bookmap")

// GetTracer exposes the application tracer for manual spans:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "directory.refresh")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
