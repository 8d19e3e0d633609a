// Package config provides configuration structures and utilities for passat.
// It defines the audit options populated from CLI flags, the category
// dictionary loader, and the XDG directory helpers for the stats database.
package config
