// Command libprobekit builds the probekit native diagnostics core as a
// C-callable shared library:
//
//	go build -buildmode=c-shared -o libprobekit.so ./cmd/libprobekit
//
// The stable surface is declared in probekit.h; every export lives in
// exports.go and routes through the pkg/probekit boundary package, which
// guarantees that no panic and no Go-owned memory ever crosses into the
// host process.
package main

func main() {}
