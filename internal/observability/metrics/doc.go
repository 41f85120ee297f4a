// Package metrics holds the Prometheus metric definitions shared by the api
// and worker binaries, plus recorder helpers for the business events: upstream
// directory fetches, snapshot rebuilds, searches, and database queries.
//
// Everything registers on the default registry via promauto and is served by
// the /metrics endpoint.
package metrics
