// Package ui renders the human-facing reports of kalias (stats, explain,
// check) using Lip Gloss. Generated aliases never go through this package;
// they are plain text meant to be sourced by a shell.
//
// Colors are ANSI codes for broad terminal compatibility. Use
// DisableColors() for monochrome output (--no-color).
package ui
