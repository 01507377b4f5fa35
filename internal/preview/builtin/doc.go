// Package builtin holds the strategies registered ahead of the external
// page strategy: direct image links and embeddable videos.
package builtin
