//go:build !robots_no_content_signal

package robots

// ContentSignalSupported reports whether the Content-Signal extension is
// compiled in. Build with -tags robots_no_content_signal to remove it.
const ContentSignalSupported = true
