package metrics

import "time"

// RecordConferencesLoaded records the number of conference records loaded
// from a source. This tracks upstream data volume per schema.
func RecordConferencesLoaded(source string, count int) {
	ConferencesLoadedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordRecordSkipped records a malformed conference record that was
// skipped during loading.
func RecordRecordSkipped(source string) {
	ConferenceRecordsSkippedTotal.WithLabelValues(source).Inc()
}

// RecordDeadlinesExtracted records deadline events that resolved to an
// absolute instant during extraction.
func RecordDeadlinesExtracted(source string, count int) {
	DeadlinesExtractedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordDeadlinesDropped records deadline entries dropped as unparseable.
// Dropped entries never abort processing; this counter is the only signal
// they existed.
func RecordDeadlinesDropped(source string, count int) {
	if count > 0 {
		DeadlinesDroppedTotal.WithLabelValues(source).Add(float64(count))
	}
}

// RecordDigestRun records the outcome and duration of one digest batch run.
// Status should be "sent", "empty", or "error".
func RecordDigestRun(status string, duration time.Duration) {
	DigestRunsTotal.WithLabelValues(status).Inc()
	DigestRunDuration.Observe(duration.Seconds())
}

// UpdateUpcomingDeadlines updates the gauge of deadlines inside the window.
func UpdateUpcomingDeadlines(count int) {
	UpcomingDeadlines.Set(float64(count))
}

// RecordNotificationSent records a notification attempt for a channel.
func RecordNotificationSent(channel string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	NotificationsSentTotal.WithLabelValues(channel, status).Inc()
}

// RecordUpstreamFetch records one upstream fetch attempt.
func RecordUpstreamFetch(source string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	UpstreamFetchTotal.WithLabelValues(source, status).Inc()
	UpstreamFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordDataFileUpdate records the result of one data-file save operation.
func RecordDataFileUpdate(file string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	DataFileUpdatesTotal.WithLabelValues(file, status).Inc()
}
