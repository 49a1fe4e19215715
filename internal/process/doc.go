// Package process terminates the headless browser started for PDF export,
// together with the helper processes it forks.
package process
