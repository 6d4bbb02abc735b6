// Package events streams part changes to HTTP clients over Server-Sent
// Events. The Hub fans out events published by the parts service to
// subscribers, optionally filtered by category.
package events
