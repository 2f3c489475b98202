// Package ddns keeps a dynamic DNS record in sync with a local interface address.
//
// LocalIP reads the IPv4 address of a network interface using the platform's
// native facility. Updater submits an address to the configured provider using
// the dyndns2 protocol and records the outcome in the status store.
package ddns
