// Package scheduler runs registered jobs on a cron schedule.
//
// Specs use the standard 5-field cron syntax, an optional leading seconds
// field, or descriptors like "@daily" and "@every 6h", evaluated in the
// configured IANA timezone. Config changes applied at runtime restart the
// cron loop in place; job registrations survive restarts.
package scheduler
