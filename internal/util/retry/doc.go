// Package retry provides bounded, schedule-driven retry logic.
//
// Unlike formula-based exponential backoff, [WithSchedule] walks a literal
// ordered list of wait durations. One attempt follows each wait, the loop
// stops on first success, and the schedule length bounds the total number
// of attempts. Used for service-account key creation after an organization
// policy is lifted, where propagation time is unpredictable but finite.
package retry
