package backend

import "time"

// record is the durable entry layout shared by the persistent backends.
//
// Timestamps are float64 seconds since the Unix epoch; ExpiresAt nil (JSON
// null or absent) means the entry never expires. The value payload is stored
// as base64 text so arbitrary bytes survive the trip through JSON untouched.
// Readers must tolerate malformed records by treating them as a miss.
type record struct {
	Value     []byte   `json:"value"`
	CreatedAt float64  `json:"created_at"`
	ExpiresAt *float64 `json:"expires_at"`
}

// expired reports whether the record's expiry has passed at time now.
func (r *record) expired(now time.Time) bool {
	return r.ExpiresAt != nil && unixSeconds(now) > *r.ExpiresAt
}

// newRecord builds a record for value created at now, expiring after ttl.
// A ttl <= 0 means the record never expires.
func newRecord(value []byte, now time.Time, ttl time.Duration) record {
	rec := record{
		Value:     value,
		CreatedAt: unixSeconds(now),
	}
	if ttl > 0 {
		expiresAt := unixSeconds(now.Add(ttl))
		rec.ExpiresAt = &expiresAt
	}
	return rec
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
