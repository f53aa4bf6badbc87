// Package groupcart is the shared basket that several people fill through a
// join code before its host converts it into a single order.
package groupcart
