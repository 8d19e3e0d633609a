// Package log provides slog handler utilities for passat.
//
// The tool handles plaintext passwords by design, and verbose runs log
// per-record detail. MaskingHandler makes sure those plaintext values never
// reach log output by default: attributes under password-bearing keys are
// replaced with a masked marker before the wrapped handler sees them.
// Audit logs routinely end up in tickets and chat, so masking is opt-out
// (--show-passwords), not opt-in.
package log
