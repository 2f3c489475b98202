// Package probe classifies Internet reachability from a campus network.
//
// Three reference hosts are probed by resolving them and opening a TCP
// connection: a home host inside the campus, a host reachable with a
// CERNET-free session, and a host reachable only with a global session.
// Name resolution uses the system resolver, or queries a configured
// nameserver directly with miekg/dns.
package probe
