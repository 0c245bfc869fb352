// Package resilience provides the fault tolerance building blocks used
// around every outbound call the verification pipeline makes: circuit
// breakers for the classifier, LLM, translation and fact-check APIs and
// for feed and article fetching, plus retry logic with exponential
// backoff and jitter.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ClassifierAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callClassifier()
//	})
//
//	err := retry.WithBackoff(ctx, retry.AIAPIConfig(), func() error {
//	    return performCall()
//	})
package resilience
