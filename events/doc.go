/*
Package events publishes the events of committed transactions to external
systems.

Publishing happens after the state is committed. A sink failure never
affects the state, the host only reports it.
*/
package events
