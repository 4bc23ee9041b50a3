// Package metrics provides observability hooks for manifest builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites.
// The preview server swaps in a PrometheusRecorder bound to its registry:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	builder := design.NewBuilder(design.WithRecorder(rec))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
