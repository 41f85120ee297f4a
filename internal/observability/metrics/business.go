package metrics

import (
	"time"
)

// RecordDirectoryFetch records the result of a directory API page fetch.
// Count is the number of records received; zero on failure.
func RecordDirectoryFetch(count int, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	DirectoryFetchTotal.WithLabelValues(result).Inc()
	if count > 0 {
		DirectoryRecordsFetched.Add(float64(count))
	}
}

// RecordDirectoryFetchDuration records the time taken to fetch a directory page.
func RecordDirectoryFetchDuration(duration time.Duration) {
	DirectoryFetchDuration.Observe(duration.Seconds())
}

// RecordSnapshotRefresh records a completed snapshot rebuild: how long it
// took and how many bookstores the new snapshot holds.
func RecordSnapshotRefresh(duration time.Duration, size int) {
	SnapshotRefreshDuration.Observe(duration.Seconds())
	SnapshotSize.Set(float64(size))
	SnapshotAge.Set(0)
}

// UpdateSnapshotAge updates the age of the current snapshot.
// This gauge should be updated periodically so staleness is visible
// even when refreshes stop firing.
func UpdateSnapshotAge(age time.Duration) {
	SnapshotAge.Set(age.Seconds())
}

// RecordSearch records a directory search request.
func RecordSearch() {
	SearchRequestsTotal.Inc()
}

// UpdateUserBookstoresTotal updates the total count of user-registered
// bookstores. This gauge should be updated periodically to reflect the
// current state.
func UpdateUserBookstoresTotal(count int) {
	UserBookstoresTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_bookstores", "insert_bookstore").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
