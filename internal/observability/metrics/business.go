package metrics

import "time"

// RecordVerification records a completed verification with its verdict, the
// classification tier that produced it, and the pipeline duration.
//
// Parameters:
//   - verdict: the final verdict string (true, misleading, needs review)
//   - tier: which classifier produced the verdict (zero-shot, llm, fallback)
//   - duration: end-to-end pipeline duration
func RecordVerification(verdict, tier string, duration time.Duration) {
	VerificationsTotal.WithLabelValues(verdict, tier).Inc()
	VerificationDuration.Observe(duration.Seconds())
}

// RecordCitations records how many citations a verification returned.
func RecordCitations(n int) {
	CitationsReturned.Observe(float64(n))
}

// RecordExternalCall records an outbound call to an external service.
//
// Parameters:
//   - service: logical service name (classifier, openai, claude, factcheck,
//     translate, feed, pubmed, article-fetch)
//   - status: "success" or "error"
//   - duration: wall-clock call duration
func RecordExternalCall(service, status string, duration time.Duration) {
	ExternalCallsTotal.WithLabelValues(service, status).Inc()
	ExternalCallDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordNewsCacheHit records a news cache hit.
func RecordNewsCacheHit() {
	NewsCacheEventsTotal.WithLabelValues("hit").Inc()
}

// RecordNewsCacheMiss records a news cache miss.
func RecordNewsCacheMiss() {
	NewsCacheEventsTotal.WithLabelValues("miss").Inc()
}

// RecordNewsFetched records articles fetched from one upstream source.
func RecordNewsFetched(source string, count int) {
	NewsArticlesFetchedTotal.WithLabelValues(source).Add(float64(count))
}
