// Package process terminates headless browser process trees left behind by
// a render that failed or timed out.
package process
